package lint

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
	"github.com/NympoBrutty/m-painting-system-m/pkg/glossary"
)

// loadValid decodes the reference fixture, optionally mutating the
// document tree before the typed decode.
func loadValid(t *testing.T, mutate func(doc map[string]any)) *contract.Contract {
	t.Helper()
	data, err := os.ReadFile("testdata/valid_contract.json")
	require.NoError(t, err)
	if mutate != nil {
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		mutate(doc)
		data, err = json.Marshal(doc)
		require.NoError(t, err)
	}
	c, err := contract.Parse(data)
	require.NoError(t, err)
	return c
}

func findingsWithCode(fs []Finding, code string) []Finding {
	var out []Finding
	for _, f := range fs {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

func TestValidContractScoresExcellent(t *testing.T) {
	// Three error codes, two valid constraints, one step producing the
	// sole public output, three test cases without a warning case: the
	// only finding is the missing warning case.
	c := loadValid(t, nil)
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	assert.False(t, rep.HasErrors(), "unexpected errors: %+v", rep.Findings)
	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CodeNoWarningCase, rep.Findings[0].Code)
	assert.Equal(t, 95, rep.Score)
	assert.Equal(t, StatusExcellent, rep.Status)
	assert.Equal(t, "A-V-1", rep.ModuleID)
}

func TestMissingTopLevelFields(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		delete(doc, "description")
		delete(doc, "relations")
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	assert.Len(t, findingsWithCode(rep.Findings, CodeMissingTopField), 2)
	// Validation proceeded to completion: the coverage warning from the
	// unmutated sections is still present.
	assert.Len(t, findingsWithCode(rep.Findings, CodeNoWarningCase), 1)
}

func TestUndeclaredConstraintErrorCode(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		constraints := doc["constraints"].([]any)
		constraints[1].(map[string]any)["error_code"] = "E099"
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	refs := findingsWithCode(rep.Findings, CodeConstraintRef)
	require.Len(t, refs, 1)
	assert.Equal(t, "constraints[1].error_code", refs[0].Location)
	assert.LessOrEqual(t, rep.Score, 50)
	assert.Equal(t, StatusNeedsWork, rep.Status)
}

func TestOutputNeverProduced(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		algo := doc["algorithm"].(map[string]any)
		registry := algo["artifact_registry"].([]any)
		algo["artifact_registry"] = append(registry, map[string]any{"artifact_id": "mask2", "scope": "public"})
		io := doc["io_contract"].(map[string]any)
		outputs := io["outputs"].([]any)
		io["outputs"] = append(outputs, map[string]any{
			"artifact_id": "mask2", "type": "json", "scope": "public", "description": "second mask",
		})
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	assert.Len(t, findingsWithCode(rep.Findings, CodeOutputNotProduced), 1)
	assert.Empty(t, findingsWithCode(rep.Findings, CodeOutputNotRegistered))
}

func TestOutputScopeAndRegistry(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		algo := doc["algorithm"].(map[string]any)
		algo["artifact_registry"] = []any{map[string]any{"artifact_id": "mask", "scope": "internal"}}
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)
	assert.Len(t, findingsWithCode(rep.Findings, CodeOutputScope), 1)

	c = loadValid(t, func(doc map[string]any) {
		algo := doc["algorithm"].(map[string]any)
		algo["artifact_registry"] = []any{}
	})
	rep, err = New(Options{}).Run(c)
	require.NoError(t, err)
	assert.Len(t, findingsWithCode(rep.Findings, CodeOutputNotRegistered), 1)
}

func TestStepUsesUndeclaredArtifact(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		algo := doc["algorithm"].(map[string]any)
		steps := algo["steps"].([]any)
		step := steps[0].(map[string]any)
		step["uses"] = []any{"input_data", "not_yet_produced"}
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	uses := findingsWithCode(rep.Findings, CodeStepUsesUnknown)
	require.Len(t, uses, 1)
	assert.Contains(t, uses[0].Message, "not_yet_produced")
}

func TestStepOrderMatters(t *testing.T) {
	// The consumer step precedes the producer, so the artifact is not
	// yet available at its declaration position.
	c := loadValid(t, func(doc map[string]any) {
		algo := doc["algorithm"].(map[string]any)
		algo["steps"] = []any{
			map[string]any{
				"id": "S001", "name": "export_early", "type": "export",
				"uses": []any{"mask"}, "produces": []any{"final"},
				"description": "Uses mask before it exists.",
			},
			map[string]any{
				"id": "S002", "name": "make_mask", "type": "mask",
				"uses": []any{"input_data", "strength"}, "produces": []any{"mask"},
				"description": "Produces the mask.",
			},
		}
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)
	assert.Len(t, findingsWithCode(rep.Findings, CodeStepUsesUnknown), 1)
}

func TestDuplicateErrorCode(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		codes := doc["error_codes"].([]any)
		dup := map[string]any{
			"code": "E001", "level": "error",
			"title":   map[string]any{"uk": "Дублікат", "en": "Duplicate"},
			"message": map[string]any{"uk": "Дублікат.", "en": "Duplicate."},
		}
		doc["error_codes"] = append(codes, dup)
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)
	assert.Len(t, findingsWithCode(rep.Findings, CodeErrorCodeDuplicate), 1)
}

func TestMalformedExpressionSingleFinding(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		constraints := doc["constraints"].([]any)
		constraints[0].(map[string]any)["expr"] = "strength >= && (0.0"
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	syntax := findingsWithCode(rep.Findings, CodeConstraint)
	require.Len(t, syntax, 1)
	assert.Equal(t, "constraints[0].expr", syntax[0].Location)
}

func TestEmptyExpressionIsMalformed(t *testing.T) {
	// Present-but-empty expressions are syntax failures, not absences:
	// only a field missing from the document tree is left to the
	// structural pass.
	c := loadValid(t, func(doc map[string]any) {
		constraints := doc["constraints"].([]any)
		constraints[0].(map[string]any)["expr"] = ""
		validation := doc["validation"].(map[string]any)
		validation["rules"] = []any{map[string]any{
			"name": "strength_low", "condition": "", "severity": "warning",
			"message": "Strength is low.", "error_code": "E001",
		}}
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	syntax := findingsWithCode(rep.Findings, CodeConstraint)
	require.Len(t, syntax, 2)
	assert.Equal(t, "constraints[0].expr", syntax[0].Location)
	assert.Equal(t, "validation.rules[0].condition", syntax[1].Location)
	assert.Contains(t, syntax[0].Message, "empty expression")
	assert.True(t, rep.HasErrors())
}

func TestEmptyErrorCodeReference(t *testing.T) {
	// An error_code present as "" dangles like any undeclared code.
	c := loadValid(t, func(doc map[string]any) {
		constraints := doc["constraints"].([]any)
		constraints[0].(map[string]any)["error_code"] = ""
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	refs := findingsWithCode(rep.Findings, CodeConstraintRef)
	require.Len(t, refs, 1)
	assert.Equal(t, "constraints[0].error_code", refs[0].Location)
	assert.True(t, rep.HasErrors())
}

func TestUngroupedParameterWarning(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		params := doc["parameters"].(map[string]any)
		params["contrast"] = map[string]any{
			"type": "float", "unit": "fraction", "default": 0.2,
			"description": "Contrast parameter left out of every group.",
		}
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	ungrouped := findingsWithCode(rep.Findings, CodeUngroupedParam)
	require.Len(t, ungrouped, 1)
	assert.Contains(t, ungrouped[0].Message, "contrast")
	assert.False(t, rep.HasErrors())
}

func TestTestCaseCoverage(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		cases := doc["test_cases"].([]any)
		doc["test_cases"] = cases[:1] // one positive case only
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	coverage := findingsWithCode(rep.Findings, CodeTestCoverage)
	// Under three cases and no negative case.
	assert.Len(t, coverage, 2)
}

func TestGlossaryPolicies(t *testing.T) {
	terms := glossary.NewSet([]string{"strength", "input_data", "mask"})

	// make_mask (the step name) is missing from the glossary.
	c := loadValid(t, nil)
	rep, err := New(Options{Glossary: terms, GlossaryPolicy: glossary.PolicyStrict}).Run(c)
	require.NoError(t, err)
	strict := findingsWithCode(rep.Findings, CodeGlossaryStrict)
	require.Len(t, strict, 1)
	assert.Contains(t, strict[0].Message, "make_mask")

	rep, err = New(Options{Glossary: terms, GlossaryPolicy: glossary.PolicyWarn}).Run(c)
	require.NoError(t, err)
	assert.Len(t, findingsWithCode(rep.Findings, CodeGlossaryWarn), 1)
	assert.Empty(t, findingsWithCode(rep.Findings, CodeGlossaryStrict))

	rep, err = New(Options{Glossary: terms, GlossaryPolicy: glossary.PolicyOff}).Run(c)
	require.NoError(t, err)
	assert.Empty(t, findingsWithCode(rep.Findings, CodeGlossaryWarn))

	// Restricting token sources to parameters leaves nothing missing.
	rep, err = New(Options{
		Glossary:       terms,
		GlossaryPolicy: glossary.PolicyStrict,
		TokenSources:   []TokenSource{TokensParameters},
	}).Run(c)
	require.NoError(t, err)
	assert.Empty(t, findingsWithCode(rep.Findings, CodeGlossaryStrict))
}

func TestGlossaryLocationForStepProducedArtifact(t *testing.T) {
	// An artifact that only a step produces has no registry entry; its
	// glossary finding points at the producing step.
	c := loadValid(t, func(doc map[string]any) {
		algo := doc["algorithm"].(map[string]any)
		steps := algo["steps"].([]any)
		steps[0].(map[string]any)["produces"] = []any{"mask", "scratch"}
	})
	terms := glossary.NewSet([]string{"strength", "mask", "make_mask"})
	rep, err := New(Options{Glossary: terms, GlossaryPolicy: glossary.PolicyWarn}).Run(c)
	require.NoError(t, err)

	warn := findingsWithCode(rep.Findings, CodeGlossaryWarn)
	require.Len(t, warn, 1)
	assert.Contains(t, warn[0].Message, "scratch")
	assert.Equal(t, "algorithm.steps[0].produces", warn[0].Location)
}

func TestIdempotentReports(t *testing.T) {
	v := New(Options{})

	run := func() []byte {
		c := loadValid(t, func(doc map[string]any) {
			delete(doc, "description")
			constraints := doc["constraints"].([]any)
			constraints[0].(map[string]any)["error_code"] = "E999"
		})
		rep, err := v.Run(c)
		require.NoError(t, err)
		data, err := json.Marshal(rep)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(), run(), "repeated runs must produce byte-identical reports")
}

func TestFindingOrderDeterministic(t *testing.T) {
	c := loadValid(t, func(doc map[string]any) {
		delete(doc, "relations")
		delete(doc, "description")
	})
	rep, err := New(Options{}).Run(c)
	require.NoError(t, err)

	for i := 1; i < len(rep.Findings); i++ {
		a, b := rep.Findings[i-1], rep.Findings[i]
		if a.Severity == b.Severity {
			if a.Location == b.Location {
				assert.LessOrEqual(t, a.Code, b.Code)
			} else {
				assert.Less(t, a.Location, b.Location)
			}
		} else {
			assert.Equal(t, SeverityError, a.Severity)
		}
	}
}
