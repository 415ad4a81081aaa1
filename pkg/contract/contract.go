// Package contract defines the Go struct types for Stage-A module
// contract documents and provides strict JSON parsing plus the
// JSON-Schema structural pass.
package contract

// Contract is the top-level Stage-A contract document declaring one
// processing module's interface, parameters, constraints, algorithm
// and test cases.
type Contract struct {
	Schema          SchemaMeta           `json:"_schema" jsonschema:"required"`
	ModuleID        string               `json:"module_id" jsonschema:"required"`
	ModuleAbbr      string               `json:"module_abbr" jsonschema:"required"`
	ModuleType      string               `json:"module_type" jsonschema:"required,enum=PROCESS,enum=RULESET,enum=BRIDGE"`
	ModuleName      I18nText             `json:"module_name" jsonschema:"required"`
	Version         string               `json:"version" jsonschema:"required"`
	Description     string               `json:"description" jsonschema:"required"`
	IOContract      IOContract           `json:"io_contract" jsonschema:"required"`
	Parameters      map[string]Parameter `json:"parameters" jsonschema:"required"`
	ParameterGroups map[string][]string  `json:"parameter_groups" jsonschema:"required"`
	Constraints     []Constraint         `json:"constraints" jsonschema:"required"`
	Validation      Validation           `json:"validation" jsonschema:"required"`
	ErrorCodes      []ErrorCodeDef       `json:"error_codes" jsonschema:"required"`
	Algorithm       Algorithm            `json:"algorithm" jsonschema:"required"`
	Relations       Relations            `json:"relations" jsonschema:"required"`
	TestCases       []TestCase           `json:"test_cases" jsonschema:"required"`
	Policies        Policies             `json:"policies" jsonschema:"required"`

	// Raw is the untyped document tree the typed fields were decoded
	// from. The structural validator queries it so that an absent field
	// can be told apart from a zero value.
	Raw map[string]any `json:"-"`
}

// SchemaMeta is the contract's own _schema descriptor block.
type SchemaMeta struct {
	Name                string `json:"name" jsonschema:"required"`
	Version             string `json:"version" jsonschema:"required"`
	Stage               string `json:"stage" jsonschema:"required"`
	MaturityStage       string `json:"maturity_stage" jsonschema:"required,enum=draft,enum=review,enum=approved,enum=frozen"`
	StaticFrameOnly     bool   `json:"static_frame_only" jsonschema:"required"`
	UnderpaintingIntent string `json:"underpainting_intent" jsonschema:"required,enum=structure_only,enum=structure_plus_masks"`
	CreatedAt           string `json:"created_at" jsonschema:"required"`
	UpdatedAt           string `json:"updated_at" jsonschema:"required"`
}

// I18nText is a localized string carrying both supported languages.
type I18nText struct {
	UK string `json:"uk" jsonschema:"required"`
	EN string `json:"en" jsonschema:"required"`
}

// IOContract declares the module's input and output artifacts.
type IOContract struct {
	Inputs  []IOArtifact `json:"inputs" jsonschema:"required"`
	Outputs []IOArtifact `json:"outputs" jsonschema:"required"`
}

// IOArtifact is one declared input or output.
type IOArtifact struct {
	ArtifactID  string `json:"artifact_id" jsonschema:"required"`
	Type        string `json:"type" jsonschema:"required"`
	Scope       string `json:"scope" jsonschema:"required"`
	Description string `json:"description" jsonschema:"required"`
}

// Parameter is one tunable parameter definition.
type Parameter struct {
	Type        string    `json:"type" jsonschema:"required,enum=float,enum=int,enum=boolean,enum=enum,enum=string"`
	Unit        string    `json:"unit,omitempty"`
	Range       []float64 `json:"range,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Default     any       `json:"default,omitempty"`
	Description string    `json:"description" jsonschema:"required"`
}

// Constraint is a hard rule: a DSL expression plus the error code
// raised when it is violated.
type Constraint struct {
	Expr      string `json:"expr" jsonschema:"required"`
	ErrorCode string `json:"error_code" jsonschema:"required"`
}

// Validation holds the soft (rule-based) validation block.
type Validation struct {
	Rules []ValidationRule `json:"rules" jsonschema:"required"`
}

// ValidationRule is a soft rule with a declared severity.
type ValidationRule struct {
	Name      string `json:"name" jsonschema:"required"`
	Condition string `json:"condition" jsonschema:"required"`
	Severity  string `json:"severity" jsonschema:"required,enum=warning,enum=error"`
	Message   string `json:"message" jsonschema:"required"`
	ErrorCode string `json:"error_code" jsonschema:"required"`
}

// ErrorCodeDef declares one error or warning code in the registry.
type ErrorCodeDef struct {
	Code    string   `json:"code" jsonschema:"required"`
	Level   string   `json:"level" jsonschema:"required,enum=error,enum=warning"`
	Title   I18nText `json:"title" jsonschema:"required"`
	Message I18nText `json:"message" jsonschema:"required"`
}

// Algorithm is the declared step sequence plus its artifact registry.
type Algorithm struct {
	ArtifactRegistry []RegistryEntry `json:"artifact_registry" jsonschema:"required"`
	Steps            []Step          `json:"steps" jsonschema:"required"`
}

// RegistryEntry declares one artifact and its visibility scope.
// The scope values are "public" and "internal"; "private" is accepted
// on input as a legacy spelling of internal.
type RegistryEntry struct {
	ArtifactID string `json:"artifact_id" jsonschema:"required"`
	Scope      string `json:"scope" jsonschema:"required"`
}

// Step is one algorithm step consuming and producing artifacts.
type Step struct {
	ID          string   `json:"id" jsonschema:"required"`
	Name        string   `json:"name" jsonschema:"required"`
	Type        string   `json:"type" jsonschema:"required,enum=load,enum=transform,enum=validate,enum=export,enum=mask,enum=adjust"`
	Uses        []string `json:"uses"`
	Produces    []string `json:"produces"`
	Description string   `json:"description,omitempty"`
}

// Relations links this module to its neighbours in the pipeline.
type Relations struct {
	DependsOn     []string `json:"depends_on" jsonschema:"required"`
	Influences    []string `json:"influences" jsonschema:"required"`
	ConflictsWith []string `json:"conflicts_with" jsonschema:"required"`
}

// TestCase is one declared contract test case.
type TestCase struct {
	ID       string         `json:"id" jsonschema:"required"`
	Type     string         `json:"type" jsonschema:"required,enum=positive,enum=negative,enum=warning"`
	Name     string         `json:"name" jsonschema:"required"`
	Input    map[string]any `json:"input" jsonschema:"required"`
	Expected map[string]any `json:"expected" jsonschema:"required"`
}

// Policies is the contract's policy block.
type Policies struct {
	UnitPolicy     string         `json:"unit_policy" jsonschema:"required"`
	ConstraintsDSL ConstraintsDSL `json:"constraints_dsl" jsonschema:"required"`
	GlossaryPolicy string         `json:"glossary_policy" jsonschema:"required,enum=strict,enum=warn,enum=off"`
	I18nPolicy     I18nPolicy     `json:"i18n_policy" jsonschema:"required"`
}

// ConstraintsDSL names the expression dialect constraints are written in.
type ConstraintsDSL struct {
	DSLVersion string `json:"dsl_version" jsonschema:"required"`
	Syntax     string `json:"syntax" jsonschema:"required"`
}

// I18nPolicy declares the default and supported languages.
type I18nPolicy struct {
	DefaultLang    string   `json:"default_lang" jsonschema:"required"`
	SupportedLangs []string `json:"supported_langs" jsonschema:"required"`
}

// NormalizeScope maps the legacy "private" spelling to "internal".
func NormalizeScope(scope string) string {
	if scope == "private" {
		return "internal"
	}
	return scope
}
