package glossary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSONList(t *testing.T) {
	path := writeFile(t, "terms.json", `["strength", "mask", "tone_map"]`)
	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, s.Contains("mask"))
	assert.False(t, s.Contains("Mask"), "lookup is exact-match")
	assert.Len(t, s.Terms(), 3)
}

func TestLoadJSONWrapped(t *testing.T) {
	path := writeFile(t, "terms.json", `{"terms": ["strength", "mask"]}`)
	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, s.Contains("strength"))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "terms.yaml", "- strength\n- mask\n")
	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, s.Contains("mask"))

	path = writeFile(t, "wrapped.yml", "terms:\n  - tone_map\n")
	s, err = LoadFile(path)
	require.NoError(t, err)
	assert.True(t, s.Contains("tone_map"))
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "terms.txt", "strength")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported glossary format")
}

func TestParsePolicy(t *testing.T) {
	for _, valid := range []string{"strict", "warn", "off"} {
		p, err := ParsePolicy(valid)
		require.NoError(t, err)
		assert.Equal(t, Policy(valid), p)
	}
	_, err := ParsePolicy("lenient")
	require.Error(t, err)
}
