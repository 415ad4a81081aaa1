package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load decodes one contract document from r. The decode is strict:
// unknown fields are rejected so typos surface here instead of being
// silently dropped. A decode failure is an I/O-level error, not a lint
// finding — the lint engine never sees a document that failed to load.
func Load(r io.Reader) (*Contract, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read contract: %w", err)
	}
	return Parse(data)
}

// Parse decodes one contract document from raw JSON bytes.
func Parse(data []byte) (*Contract, error) {
	var c Contract
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode contract: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode contract tree: %w", err)
	}
	c.Raw = raw
	return &c, nil
}

// LoadFile reads and decodes a contract JSON file.
func LoadFile(path string) (*Contract, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open contract: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// EnsureRaw backfills the untyped tree for contracts constructed in
// memory (e.g. by the scaffold) rather than decoded from a file.
func (c *Contract) EnsureRaw() error {
	if c.Raw != nil {
		return nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal contract: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode contract tree: %w", err)
	}
	c.Raw = raw
	return nil
}
