package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NympoBrutty/m-painting-system-m/pkg/lint"
)

func sampleResult() *Result {
	return Collect([]DocumentResult{
		{
			Path: "a.json",
			Report: &lint.Report{
				ModuleID: "A-V-1",
				Findings: []lint.Finding{
					{Code: "W081", Severity: lint.SeverityWarning, Location: "test_cases", Message: "no warning-type test case"},
				},
				Score:  95,
				Status: lint.StatusExcellent,
			},
		},
		{
			Path: "b.json",
			Report: &lint.Report{
				ModuleID: "A-V-2",
				Findings: []lint.Finding{
					{Code: "E031", Severity: lint.SeverityError, Location: "constraints[0].error_code", Message: "error code \"E099\" is not declared in error_codes"},
				},
				Score:  50,
				Status: lint.StatusNeedsWork,
			},
		},
		{Path: "c.json", Err: errors.New("open contract: no such file")},
	})
}

func TestCollectCounts(t *testing.T) {
	r := sampleResult()
	assert.Equal(t, 1, r.Passed)
	assert.Equal(t, 2, r.Failed)
	assert.False(t, r.Ok())

	warningsOnly := Collect([]DocumentResult{{
		Path:   "w.json",
		Report: &lint.Report{Score: 95, Status: lint.StatusExcellent, Findings: []lint.Finding{{Code: "W020", Severity: lint.SeverityWarning}}},
	}})
	assert.True(t, warningsOnly.Ok(), "warnings alone never fail the run")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "✓ a.json — score 95 (Excellent)")
	assert.Contains(t, out, "✗ b.json — score 50 (Needs-work)")
	assert.Contains(t, out, "[E031] ERROR at constraints[0].error_code")
	assert.Contains(t, out, "✗ c.json: open contract")
	assert.Contains(t, out, "1 passed, 2 failed")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var decoded Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Documents, 3)
	assert.Equal(t, "a.json", decoded.Documents[0].Path)
	assert.Equal(t, 95, decoded.Documents[0].Report.Score)
	assert.Equal(t, "open contract: no such file", decoded.Documents[2].Error)
}

func TestWriteSARIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSARIF(&buf, sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "2.1.0")
	assert.Contains(t, out, "contractlint")
	assert.Contains(t, out, "E031")
	assert.Contains(t, out, "W081")
	// SARIF levels derive from finding severity.
	assert.True(t, strings.Contains(out, `"error"`) && strings.Contains(out, `"warning"`))
}
