package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
)

func sampleContract() *contract.Contract {
	return &contract.Contract{
		ModuleAbbr: "TONE",
		IOContract: contract.IOContract{
			Inputs:  []contract.IOArtifact{{ArtifactID: "input_data"}},
			Outputs: []contract.IOArtifact{{ArtifactID: "mask"}},
		},
		Algorithm: contract.Algorithm{
			Steps: []contract.Step{
				{ID: "S001", Name: "load_input", Type: "load", Uses: []string{"input_data"}, Produces: []string{"loaded"}},
				{ID: "S002", Name: "make_mask", Type: "mask", Uses: []string{"loaded"}, Produces: []string{"mask"}},
			},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	out, err := Generate(sampleContract(), FormatMermaid)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "flowchart TD\n"))
	assert.Contains(t, out, "START -->|input_data| S001")
	assert.Contains(t, out, "S001 -->|loaded| S002")
	assert.Contains(t, out, "S002 -->|mask| END")
}

func TestGenerateASCII(t *testing.T) {
	out, err := Generate(sampleContract(), FormatASCII)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, out, "S001 load_input (load)")
	assert.Contains(t, out, "S002 make_mask (mask)")
	// All box borders share one width.
	var borders []string
	for _, l := range lines {
		if strings.HasPrefix(l, "+") {
			borders = append(borders, l)
		}
	}
	require.NotEmpty(t, borders)
	for _, b := range borders {
		assert.Equal(t, len(borders[0]), len(b))
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	_, err := Generate(sampleContract(), "svg")
	require.Error(t, err)

	_, err = Generate(nil, FormatMermaid)
	require.Error(t, err)
}

func TestGenerateEmptyAlgorithm(t *testing.T) {
	out, err := Generate(&contract.Contract{}, FormatMermaid)
	require.NoError(t, err)
	assert.Equal(t, "flowchart TD\n", out)

	out, err = Generate(&contract.Contract{}, FormatASCII)
	require.NoError(t, err)
	assert.Empty(t, out)
}
