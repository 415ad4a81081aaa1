package lint

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
)

var (
	moduleIDRe  = regexp.MustCompile(`^A-[IVXLCDM]+-\d+(\.\d+)?$`)
	abbrRe      = regexp.MustCompile(`^[A-Z0-9]{2,8}$`)
	semverRe    = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)
	timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?[+-]\d{2}:\d{2}$`)
	codeRe      = regexp.MustCompile(`^[EW]\d{3}$`)
	stepIDRe    = regexp.MustCompile(`^S\d{3}$`)
)

// requiredTopFields is the fixed set every contract must carry.
var requiredTopFields = []string{
	"_schema", "module_id", "module_abbr", "module_type", "module_name",
	"version", "description", "io_contract", "parameters",
	"parameter_groups", "constraints", "validation", "error_codes",
	"algorithm", "relations", "test_cases", "policies",
}

var (
	moduleTypes       = set("PROCESS", "RULESET", "BRIDGE")
	maturityStages    = set("draft", "review", "approved", "frozen")
	underpaintIntents = set("structure_only", "structure_plus_masks")
	parameterTypes    = set("float", "int", "boolean", "enum", "string")
	stepTypes         = set("load", "transform", "validate", "export", "mask", "adjust")
	testCaseTypes     = set("positive", "negative", "warning")
	artifactScopes    = set("public", "internal")
	severityLevels    = set("error", "warning")
)

func set(vals ...string) map[string]bool {
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}

// paramNames returns parameter names in sorted order so findings come
// out in a stable sequence regardless of map iteration.
func paramNames(params map[string]contract.Parameter) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkStructure confirms the presence and shape of every required
// field per the contract's logical schema. It never stops at the first
// defect: each offending field yields exactly one finding and the walk
// continues, so one run reports the complete defect set.
func checkStructure(c *contract.Contract) []Finding {
	var fs []Finding
	doc := contract.NewTree(c.Raw)

	for _, name := range requiredTopFields {
		if !doc.Field(name).Present() {
			errorf(&fs, CodeMissingTopField, name, fmt.Sprintf("required field %q is missing or null", name))
		}
	}

	checkSchemaBlock(&fs, doc)
	checkIdentity(&fs, doc, c)
	checkIOContract(&fs, doc)
	checkParameters(&fs, c)
	checkConstraints(&fs, doc, c)
	checkValidationRules(&fs, doc, c)
	checkErrorCodeDefs(&fs, doc, c)
	checkAlgorithm(&fs, doc, c)
	checkRelations(&fs, doc)
	checkTestCases(&fs, doc, c)
	checkPolicies(&fs, doc, c)
	return fs
}

func checkSchemaBlock(fs *[]Finding, doc contract.Tree) {
	block := doc.Field("_schema")
	if !block.Present() {
		return // E010 already reported
	}
	for _, name := range []string{"name", "version", "stage", "maturity_stage", "static_frame_only", "underpainting_intent", "created_at", "updated_at"} {
		if !block.Field(name).Present() {
			errorf(fs, CodeSchemaBlock, "_schema."+name, fmt.Sprintf("_schema requires %q", name))
		}
	}
	if v, ok := block.Field("maturity_stage").Str(); ok && !maturityStages[v] {
		errorf(fs, CodeSchemaBlock, "_schema.maturity_stage", fmt.Sprintf("invalid maturity_stage %q: must be draft, review, approved or frozen", v))
	}
	if v, ok := block.Field("underpainting_intent").Str(); ok && !underpaintIntents[v] {
		errorf(fs, CodeSchemaBlock, "_schema.underpainting_intent", fmt.Sprintf("invalid underpainting_intent %q: must be structure_only or structure_plus_masks", v))
	}
	if v, ok := block.Field("version").Str(); ok && !semverRe.MatchString(v) {
		errorf(fs, CodeIdentFormat, "_schema.version", fmt.Sprintf("schema version %q is not a SemVer version", v))
	}
	for _, name := range []string{"created_at", "updated_at"} {
		if v, ok := block.Field(name).Str(); ok && !timestampRe.MatchString(v) {
			errorf(fs, CodeTimestampFormat, "_schema."+name, fmt.Sprintf("timestamp %q is not ISO8601 with an explicit UTC offset", v))
		}
	}
}

func checkIdentity(fs *[]Finding, doc contract.Tree, c *contract.Contract) {
	if v, ok := doc.Field("module_id").Str(); ok && !moduleIDRe.MatchString(v) {
		errorf(fs, CodeIdentFormat, "module_id", fmt.Sprintf("module_id %q does not match A-<ROMAN>-<N>", v))
	}
	if v, ok := doc.Field("module_abbr").Str(); ok && !abbrRe.MatchString(v) {
		errorf(fs, CodeIdentFormat, "module_abbr", fmt.Sprintf("module_abbr %q must be 2-8 uppercase alphanumerics", v))
	}
	if v, ok := doc.Field("version").Str(); ok && !semverRe.MatchString(v) {
		errorf(fs, CodeIdentFormat, "version", fmt.Sprintf("version %q is not a SemVer version", v))
	}
	if v, ok := doc.Field("module_type").Str(); ok && !moduleTypes[v] {
		errorf(fs, CodeMissingTopField, "module_type", fmt.Sprintf("invalid module_type %q: must be PROCESS, RULESET or BRIDGE", v))
	}
	checkI18n(fs, doc.Field("module_name"), "module_name")
}

// checkI18n requires both uk and en keys non-empty on a localized field.
func checkI18n(fs *[]Finding, t contract.Tree, location string) {
	if !t.Present() {
		return
	}
	for _, lang := range []string{"uk", "en"} {
		v, ok := t.Field(lang).Str()
		if !ok || v == "" {
			errorf(fs, CodeI18nIncomplete, location+"."+lang, fmt.Sprintf("%s requires a non-empty %q translation", location, lang))
		}
	}
}

func checkIOContract(fs *[]Finding, doc contract.Tree) {
	io := doc.Field("io_contract")
	if !io.Present() {
		return
	}
	for _, side := range []string{"inputs", "outputs"} {
		entries, ok := io.Field(side).Slice()
		if !ok {
			errorf(fs, CodeIOContract, "io_contract."+side, fmt.Sprintf("io_contract requires an %q array", side))
			continue
		}
		for i := range entries {
			entry := io.Field(side).At(i)
			loc := fmt.Sprintf("io_contract.%s[%d]", side, i)
			for _, name := range []string{"artifact_id", "type", "scope", "description"} {
				if !entry.Field(name).Present() {
					errorf(fs, CodeIOContract, loc+"."+name, fmt.Sprintf("io artifact requires %q", name))
				}
			}
			if v, ok := entry.Field("scope").Str(); ok && !artifactScopes[contract.NormalizeScope(v)] {
				errorf(fs, CodeIOContract, loc+".scope", fmt.Sprintf("invalid scope %q: must be public or internal", v))
			}
		}
	}
}

func checkParameters(fs *[]Finding, c *contract.Contract) {
	for _, name := range paramNames(c.Parameters) {
		p := c.Parameters[name]
		loc := "parameters." + name
		if p.Type == "" {
			errorf(fs, CodeParameter, loc+".type", fmt.Sprintf("parameter %q requires a type", name))
		} else if !parameterTypes[p.Type] {
			errorf(fs, CodeParameter, loc+".type", fmt.Sprintf("invalid parameter type %q: must be float, int, boolean, enum or string", p.Type))
		}
		if p.Description == "" {
			errorf(fs, CodeParameter, loc+".description", fmt.Sprintf("parameter %q requires a description", name))
		}
		if p.Type == "enum" && len(p.Enum) == 0 {
			errorf(fs, CodeParameterEnum, loc+".enum", fmt.Sprintf("enum parameter %q requires a non-empty enum value list", name))
		}
	}
}

func checkConstraints(fs *[]Finding, doc contract.Tree, c *contract.Contract) {
	raw := doc.Field("constraints")
	for i := range c.Constraints {
		loc := fmt.Sprintf("constraints[%d]", i)
		entry := raw.At(i)
		if !entry.Field("expr").Present() {
			errorf(fs, CodeConstraint, loc+".expr", "constraint requires an expr")
		}
		if !entry.Field("error_code").Present() {
			errorf(fs, CodeConstraint, loc+".error_code", "constraint requires an error_code")
		} else if ec := c.Constraints[i].ErrorCode; ec != "" && !codeRe.MatchString(ec) {
			errorf(fs, CodeIdentFormat, loc+".error_code", fmt.Sprintf("error code %q does not match [EW]NNN", ec))
		}
	}
}

func checkValidationRules(fs *[]Finding, doc contract.Tree, c *contract.Contract) {
	raw := doc.Field("validation").Field("rules")
	if doc.Field("validation").Present() && !raw.Present() {
		errorf(fs, CodeValidationRule, "validation.rules", "validation requires a rules array")
		return
	}
	for i := range c.Validation.Rules {
		r := c.Validation.Rules[i]
		entry := raw.At(i)
		loc := fmt.Sprintf("validation.rules[%d]", i)
		for _, name := range []string{"name", "condition", "severity", "message", "error_code"} {
			if !entry.Field(name).Present() {
				errorf(fs, CodeValidationRule, loc+"."+name, fmt.Sprintf("validation rule requires %q", name))
			}
		}
		if r.Severity != "" && !severityLevels[r.Severity] {
			errorf(fs, CodeValidationRule, loc+".severity", fmt.Sprintf("invalid severity %q: must be warning or error", r.Severity))
		}
		if r.ErrorCode != "" && !codeRe.MatchString(r.ErrorCode) {
			errorf(fs, CodeIdentFormat, loc+".error_code", fmt.Sprintf("error code %q does not match [EW]NNN", r.ErrorCode))
		}
	}
}

func checkErrorCodeDefs(fs *[]Finding, doc contract.Tree, c *contract.Contract) {
	raw := doc.Field("error_codes")
	for i := range c.ErrorCodes {
		def := c.ErrorCodes[i]
		entry := raw.At(i)
		loc := fmt.Sprintf("error_codes[%d]", i)
		for _, name := range []string{"code", "level", "title", "message"} {
			if !entry.Field(name).Present() {
				errorf(fs, CodeErrorCodeDef, loc+"."+name, fmt.Sprintf("error-code definition requires %q", name))
			}
		}
		if def.Code != "" && !codeRe.MatchString(def.Code) {
			errorf(fs, CodeIdentFormat, loc+".code", fmt.Sprintf("error code %q does not match [EW]NNN", def.Code))
		}
		if def.Level != "" && !severityLevels[def.Level] {
			errorf(fs, CodeErrorCodeDef, loc+".level", fmt.Sprintf("invalid level %q: must be error or warning", def.Level))
		}
		checkI18n(fs, entry.Field("title"), loc+".title")
		checkI18n(fs, entry.Field("message"), loc+".message")
	}
}

func checkAlgorithm(fs *[]Finding, doc contract.Tree, c *contract.Contract) {
	algo := doc.Field("algorithm")
	if !algo.Present() {
		return
	}
	if !algo.Field("artifact_registry").Present() {
		errorf(fs, CodeAlgorithm, "algorithm.artifact_registry", "algorithm requires an artifact_registry")
	}
	steps := algo.Field("steps")
	if !steps.Present() {
		errorf(fs, CodeAlgorithm, "algorithm.steps", "algorithm requires a steps array")
		return
	}
	if steps.Len() == 0 {
		errorf(fs, CodeAlgorithm, "algorithm.steps", "algorithm must declare at least one step")
	}
	for i := range c.Algorithm.ArtifactRegistry {
		entry := algo.Field("artifact_registry").At(i)
		loc := fmt.Sprintf("algorithm.artifact_registry[%d]", i)
		for _, name := range []string{"artifact_id", "scope"} {
			if !entry.Field(name).Present() {
				errorf(fs, CodeAlgorithm, loc+"."+name, fmt.Sprintf("artifact registry entry requires %q", name))
			}
		}
		if v := c.Algorithm.ArtifactRegistry[i].Scope; v != "" && !artifactScopes[contract.NormalizeScope(v)] {
			errorf(fs, CodeAlgorithm, loc+".scope", fmt.Sprintf("invalid scope %q: must be public or internal", v))
		}
	}
	for i := range c.Algorithm.Steps {
		s := c.Algorithm.Steps[i]
		entry := steps.At(i)
		loc := fmt.Sprintf("algorithm.steps[%d]", i)
		for _, name := range []string{"id", "name", "type"} {
			if !entry.Field(name).Present() {
				errorf(fs, CodeStep, loc+"."+name, fmt.Sprintf("step requires %q", name))
			}
		}
		if s.ID != "" && !stepIDRe.MatchString(s.ID) {
			errorf(fs, CodeIdentFormat, loc+".id", fmt.Sprintf("step id %q does not match SNNN", s.ID))
		}
		if s.Type != "" && !stepTypes[s.Type] {
			errorf(fs, CodeStep, loc+".type", fmt.Sprintf("invalid step type %q", s.Type))
		}
	}
}

func checkRelations(fs *[]Finding, doc contract.Tree) {
	rel := doc.Field("relations")
	if !rel.Present() {
		return
	}
	for _, name := range []string{"depends_on", "influences", "conflicts_with"} {
		if !rel.Field(name).Present() {
			errorf(fs, CodeRelations, "relations."+name, fmt.Sprintf("relations requires %q", name))
		}
	}
}

func checkTestCases(fs *[]Finding, doc contract.Tree, c *contract.Contract) {
	raw := doc.Field("test_cases")
	for i := range c.TestCases {
		tc := c.TestCases[i]
		entry := raw.At(i)
		loc := fmt.Sprintf("test_cases[%d]", i)
		for _, name := range []string{"id", "type", "name", "input", "expected"} {
			if !entry.Field(name).Present() {
				errorf(fs, CodeTestCoverage, loc+"."+name, fmt.Sprintf("test case requires %q", name))
			}
		}
		if tc.Type != "" && !testCaseTypes[tc.Type] {
			errorf(fs, CodeTestCoverage, loc+".type", fmt.Sprintf("invalid test-case type %q: must be positive, negative or warning", tc.Type))
		}
	}
}

func checkPolicies(fs *[]Finding, doc contract.Tree, c *contract.Contract) {
	pol := doc.Field("policies")
	if !pol.Present() {
		return
	}
	for _, name := range []string{"unit_policy", "constraints_dsl", "glossary_policy", "i18n_policy"} {
		if !pol.Field(name).Present() {
			errorf(fs, CodePolicies, "policies."+name, fmt.Sprintf("policies requires %q", name))
		}
	}
	if v, ok := pol.Field("glossary_policy").Str(); ok {
		if v != "strict" && v != "warn" && v != "off" {
			errorf(fs, CodePolicies, "policies.glossary_policy", fmt.Sprintf("invalid glossary_policy %q: must be strict, warn or off", v))
		}
	}
	dsl := pol.Field("constraints_dsl")
	if dsl.Present() {
		for _, name := range []string{"dsl_version", "syntax"} {
			if !dsl.Field(name).Present() {
				errorf(fs, CodePolicies, "policies.constraints_dsl."+name, fmt.Sprintf("constraints_dsl requires %q", name))
			}
		}
	}
	i18n := pol.Field("i18n_policy")
	if i18n.Present() {
		for _, name := range []string{"default_lang", "supported_langs"} {
			if !i18n.Field(name).Present() {
				errorf(fs, CodePolicies, "policies.i18n_policy."+name, fmt.Sprintf("i18n_policy requires %q", name))
			}
		}
		if def := c.Policies.I18nPolicy.DefaultLang; def != "" && len(c.Policies.I18nPolicy.SupportedLangs) > 0 {
			found := false
			for _, lang := range c.Policies.I18nPolicy.SupportedLangs {
				if lang == def {
					found = true
				}
			}
			if !found {
				errorf(fs, CodePolicies, "policies.i18n_policy.default_lang", fmt.Sprintf("default_lang %q is not among supported_langs", def))
			}
		}
	}
}
