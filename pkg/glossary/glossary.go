// Package glossary loads the external controlled vocabulary checked
// by the lint engine's glossary policy.
package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy selects how missing glossary terms are reported.
type Policy string

const (
	PolicyStrict Policy = "strict" // missing term is an error
	PolicyWarn   Policy = "warn"   // missing term is a warning
	PolicyOff    Policy = "off"    // check disabled
)

// ParsePolicy validates a policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyStrict, PolicyWarn, PolicyOff:
		return Policy(s), nil
	}
	return "", fmt.Errorf("invalid glossary policy %q: must be strict, warn or off", s)
}

// Set is a flat term set. Lookup is exact-match.
type Set map[string]struct{}

// NewSet builds a set from a term list.
func NewSet(terms []string) Set {
	s := make(Set, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports whether the term is in the glossary.
func (s Set) Contains(term string) bool {
	_, ok := s[term]
	return ok
}

// Terms returns the terms in unspecified order.
func (s Set) Terms() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	return out
}

// termsFile matches both the bare-list and the wrapped file layouts:
// either ["a","b"] / - a\n- b, or {"terms": [...]}.
type termsFile struct {
	Terms []string `json:"terms" yaml:"terms"`
}

// LoadFile reads a glossary term list from a .json or .yaml/.yml file.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		var terms []string
		if err := json.Unmarshal(data, &terms); err == nil {
			return NewSet(terms), nil
		}
		var wrapped termsFile
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode glossary %s: %w", path, err)
		}
		return NewSet(wrapped.Terms), nil
	case ".yaml", ".yml":
		var terms []string
		if err := yaml.Unmarshal(data, &terms); err == nil {
			return NewSet(terms), nil
		}
		var wrapped termsFile
		if err := yaml.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode glossary %s: %w", path, err)
		}
		return NewSet(wrapped.Terms), nil
	default:
		return nil, fmt.Errorf("unsupported glossary format %q: use .json or .yaml", ext)
	}
}
