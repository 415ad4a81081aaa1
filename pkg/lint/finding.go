// Package lint implements the contract lint engine: structural
// validation, identifier cross-referencing, expression well-formedness
// checks and deterministic scoring. The engine accumulates every
// defect it finds; no check aborts the run.
package lint

import "sort"

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Finding is one lint result. Findings are immutable values; the
// aggregator orders them deterministically before they reach a report.
type Finding struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Location string   `json:"location"`
	Message  string   `json:"message"`
}

// Stable finding codes. E-codes are errors, W-codes warnings.
const (
	CodeMissingTopField     = "E010" // required top-level field absent or null
	CodeSchemaBlock         = "E011" // _schema block incomplete or invalid
	CodeIdentFormat         = "E012" // module_id/abbr/version/code/step-id pattern
	CodeTimestampFormat     = "E013" // timestamp not ISO8601 with explicit offset
	CodeI18nIncomplete      = "E014" // i18n field missing uk or en
	CodeIOContract          = "E015" // io_contract block incomplete
	CodePolicies            = "E016" // policies block incomplete or invalid
	CodeRelations           = "E017" // relations block incomplete
	CodeParameter           = "E020" // parameter definition incomplete or invalid
	CodeParameterEnum       = "E021" // enum parameter without enum values
	CodeConstraint          = "E030" // constraint incomplete or expression malformed
	CodeConstraintRef       = "E031" // constraint references undeclared error code
	CodeValidationRule      = "E040" // validation rule incomplete or invalid
	CodeValidationRuleRef   = "E041" // validation rule references undeclared error code
	CodeErrorCodeDef        = "E050" // error-code definition incomplete or invalid
	CodeErrorCodeDuplicate  = "E051" // error code declared more than once
	CodeAlgorithm           = "E060" // algorithm block incomplete
	CodeStepUsesUnknown     = "E061" // step uses an artifact not yet available
	CodeOutputNotProduced   = "E062" // declared output never produced by a step
	CodeStep                = "E063" // step definition incomplete or invalid
	CodeOutputNotRegistered = "E070" // declared output absent from artifact registry
	CodeOutputScope         = "E071" // declared output not public-scoped
	CodeTestCoverage        = "E080" // test-case set incomplete or case invalid
	CodeGlossaryStrict      = "E100" // identifier absent from glossary (strict)
	CodeUngroupedParam      = "W020" // parameter not assigned to any group
	CodeNoWarningCase       = "W081" // no warning-type test case declared
	CodeGlossaryWarn        = "W101" // identifier absent from glossary (warn)
)

// errorf appends an ERROR finding to the accumulator.
func errorf(fs *[]Finding, code, location, message string) {
	*fs = append(*fs, Finding{Code: code, Severity: SeverityError, Location: location, Message: message})
}

// warnf appends a WARNING finding to the accumulator.
func warnf(fs *[]Finding, code, location, message string) {
	*fs = append(*fs, Finding{Code: code, Severity: SeverityWarning, Location: location, Message: message})
}

// sortFindings orders findings by severity (errors first), then
// location, then code, so repeated runs over an unchanged document
// emit byte-identical reports.
func sortFindings(fs []Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.Severity != b.Severity {
			return a.Severity == SeverityError
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Code < b.Code
	})
}
