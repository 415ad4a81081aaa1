package lint

import (
	"fmt"
	"sort"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
	"github.com/NympoBrutty/m-painting-system-m/pkg/dsl"
	"github.com/NympoBrutty/m-painting-system-m/pkg/glossary"
)

// TokenSource selects which identifier families feed the glossary
// check. The lint rules leave the extraction scope open, so it is
// configuration rather than a fixed list.
type TokenSource string

const (
	TokensParameters TokenSource = "parameters"
	TokensArtifacts  TokenSource = "artifacts"
	TokensSteps      TokenSource = "steps"
)

// DefaultTokenSources covers all three identifier families.
var DefaultTokenSources = []TokenSource{TokensParameters, TokensArtifacts, TokensSteps}

// checkExpressions parses every constraint expression and validation
// rule condition. A malformed expression yields exactly one finding
// for that field, never one per token. Only a field absent from the
// raw tree is skipped (the structural pass reported that); a field
// present as the empty string is still parsed, so it surfaces as an
// "empty expression" syntax finding.
func checkExpressions(c *contract.Contract) []Finding {
	var fs []Finding
	doc := contract.NewTree(c.Raw)
	rawCons := doc.Field("constraints")
	for i, con := range c.Constraints {
		if !rawCons.At(i).Field("expr").Present() {
			continue
		}
		if _, err := dsl.Parse(con.Expr); err != nil {
			errorf(&fs, CodeConstraint, fmt.Sprintf("constraints[%d].expr", i),
				fmt.Sprintf("malformed expression: %v", err))
		}
	}
	rawRules := doc.Field("validation").Field("rules")
	for i, rule := range c.Validation.Rules {
		if !rawRules.At(i).Field("condition").Present() {
			continue
		}
		if _, err := dsl.Parse(rule.Condition); err != nil {
			errorf(&fs, CodeConstraint, fmt.Sprintf("validation.rules[%d].condition", i),
				fmt.Sprintf("malformed expression: %v", err))
		}
	}
	return fs
}

// checkCrossReferences resolves every identifier reference in the
// document against the index. Checks are independent and cumulative;
// none short-circuits another.
func checkCrossReferences(c *contract.Contract, idx *index, policy glossary.Policy, sources []TokenSource) []Finding {
	var fs []Finding
	doc := contract.NewTree(c.Raw)

	// constraint → error code. An error_code absent from the raw tree
	// was already reported structurally; one present as the empty
	// string is a dangling reference like any other.
	rawCons := doc.Field("constraints")
	for i, con := range c.Constraints {
		if !rawCons.At(i).Field("error_code").Present() {
			continue
		}
		if !idx.errorCodes[con.ErrorCode] {
			errorf(&fs, CodeConstraintRef, fmt.Sprintf("constraints[%d].error_code", i),
				fmt.Sprintf("error code %q is not declared in error_codes", con.ErrorCode))
		}
	}

	// validation rule → error code
	rawRules := doc.Field("validation").Field("rules")
	for i, rule := range c.Validation.Rules {
		if !rawRules.At(i).Field("error_code").Present() {
			continue
		}
		if !idx.errorCodes[rule.ErrorCode] {
			errorf(&fs, CodeValidationRuleRef, fmt.Sprintf("validation.rules[%d].error_code", i),
				fmt.Sprintf("error code %q is not declared in error_codes", rule.ErrorCode))
		}
	}

	checkStepFlow(&fs, c, idx)
	checkOutputs(&fs, c, idx)
	checkTestCoverage(&fs, c)

	// ungrouped parameters
	for _, name := range paramNames(c.Parameters) {
		if !idx.grouped(name) {
			warnf(&fs, CodeUngroupedParam, "parameters."+name,
				fmt.Sprintf("parameter %q does not appear in any parameter group", name))
		}
	}

	fs = append(fs, checkGlossary(c, idx, policy, sources)...)
	return fs
}

// checkStepFlow enforces declaration-order artifact availability: a
// step may only use artifacts that are declared parameters or inputs,
// or produced by an earlier-or-same step. Declaration order is the
// sole ordering signal; there is no graph search.
func checkStepFlow(fs *[]Finding, c *contract.Contract, idx *index) {
	available := make(map[string]bool, len(idx.params))
	for name := range idx.params {
		available[name] = true
	}
	for _, in := range c.IOContract.Inputs {
		if in.ArtifactID != "" {
			available[in.ArtifactID] = true
		}
	}
	for i, step := range c.Algorithm.Steps {
		for _, name := range step.Produces {
			available[name] = true
		}
		for _, name := range step.Uses {
			if !available[name] {
				errorf(fs, CodeStepUsesUnknown, fmt.Sprintf("algorithm.steps[%d].uses", i),
					fmt.Sprintf("step %q uses %q, which is not a parameter, input, or artifact produced by an earlier step", step.ID, name))
			}
		}
	}
}

// checkOutputs verifies every module-level output is produced by at
// least one step, registered, and public-scoped.
func checkOutputs(fs *[]Finding, c *contract.Contract, idx *index) {
	for i, out := range c.IOContract.Outputs {
		if out.ArtifactID == "" {
			continue
		}
		loc := fmt.Sprintf("io_contract.outputs[%d]", i)
		info := idx.artifacts[out.ArtifactID]
		if info == nil || len(info.steps) == 0 {
			errorf(fs, CodeOutputNotProduced, loc,
				fmt.Sprintf("output %q is never produced by any algorithm step", out.ArtifactID))
		}
		if info == nil || !info.registered {
			errorf(fs, CodeOutputNotRegistered, loc,
				fmt.Sprintf("output %q is not declared in the artifact registry", out.ArtifactID))
		} else if info.scope != "public" {
			errorf(fs, CodeOutputScope, loc+".scope",
				fmt.Sprintf("output %q has scope %q: outputs must be public", out.ArtifactID, info.scope))
		}
	}
}

// checkTestCoverage enforces the minimum test-case diversity: at least
// three cases with at least one positive and one negative. A missing
// warning case is only a warning.
func checkTestCoverage(fs *[]Finding, c *contract.Contract) {
	counts := make(map[string]int)
	for _, tc := range c.TestCases {
		counts[tc.Type]++
	}
	if len(c.TestCases) < 3 {
		errorf(fs, CodeTestCoverage, "test_cases",
			fmt.Sprintf("contract declares %d test cases, at least 3 required", len(c.TestCases)))
	}
	if counts["positive"] == 0 {
		errorf(fs, CodeTestCoverage, "test_cases", "contract requires at least one positive test case")
	}
	if counts["negative"] == 0 {
		errorf(fs, CodeTestCoverage, "test_cases", "contract requires at least one negative test case")
	}
	if counts["warning"] == 0 {
		warnf(fs, CodeNoWarningCase, "test_cases", "contract declares no warning-type test case")
	}
}

// checkGlossary verifies identifier tokens against the external
// glossary per the effective policy. A nil glossary disables the check
// regardless of policy, since there is nothing to resolve against.
func checkGlossary(c *contract.Contract, idx *index, policy glossary.Policy, sources []TokenSource) []Finding {
	var fs []Finding
	if policy == glossary.PolicyOff || idx.glossary == nil {
		return nil
	}

	type tokenRef struct{ name, location string }
	var tokens []tokenRef
	for _, src := range sources {
		switch src {
		case TokensParameters:
			for _, name := range paramNames(c.Parameters) {
				tokens = append(tokens, tokenRef{name, "parameters." + name})
			}
		case TokensArtifacts:
			names := make([]string, 0, len(idx.artifacts))
			for name := range idx.artifacts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				tokens = append(tokens, tokenRef{name, idx.artifacts[name].location})
			}
		case TokensSteps:
			for i, step := range c.Algorithm.Steps {
				if step.Name != "" {
					tokens = append(tokens, tokenRef{step.Name, fmt.Sprintf("algorithm.steps[%d].name", i)})
				}
			}
		}
	}

	for _, tok := range tokens {
		if idx.glossary.Contains(tok.name) {
			continue
		}
		msg := fmt.Sprintf("term %q is not in the glossary", tok.name)
		if policy == glossary.PolicyStrict {
			errorf(&fs, CodeGlossaryStrict, tok.location, msg)
		} else {
			warnf(&fs, CodeGlossaryWarn, tok.location, msg)
		}
	}
	return fs
}
