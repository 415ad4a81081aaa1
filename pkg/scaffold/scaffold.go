// Package scaffold builds a fresh, lint-clean Stage-A contract from
// the built-in template so authors start from a document that already
// validates.
package scaffold

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
)

var (
	moduleIDRe = regexp.MustCompile(`^A-[IVXLCDM]+-\d+(\.\d+)?$`)
	abbrRe     = regexp.MustCompile(`^[A-Z0-9]{2,8}$`)
	tzRe       = regexp.MustCompile(`^([+-])(\d{2}):(\d{2})$`)
)

// Params identifies the module a new contract is scaffolded for.
type Params struct {
	ModuleID     string
	ModuleAbbr   string
	ModuleType   string // PROCESS, RULESET or BRIDGE
	ModuleNameUK string
	ModuleNameEN string
	Version      string // contract version, default 1.0.0
	TZOffset     string // e.g. +02:00, default +02:00
	Now          time.Time
}

// Validate rejects malformed identity parameters before any document
// is built.
func (p *Params) Validate() error {
	if !moduleIDRe.MatchString(p.ModuleID) {
		return fmt.Errorf("invalid module_id %q (expected A-<ROMAN>-<N>)", p.ModuleID)
	}
	if !abbrRe.MatchString(p.ModuleAbbr) {
		return fmt.Errorf("invalid module_abbr %q (expected 2-8 uppercase)", p.ModuleAbbr)
	}
	switch p.ModuleType {
	case "PROCESS", "RULESET", "BRIDGE":
	default:
		return fmt.Errorf("invalid module_type %q (expected PROCESS, RULESET or BRIDGE)", p.ModuleType)
	}
	if p.ModuleNameUK == "" || p.ModuleNameEN == "" {
		return fmt.Errorf("module name requires both uk and en values")
	}
	if p.TZOffset != "" && !tzRe.MatchString(p.TZOffset) {
		return fmt.Errorf("invalid timezone offset %q (expected ±hh:mm)", p.TZOffset)
	}
	return nil
}

// timestamp renders an ISO8601 time with the explicit offset the
// contract schema requires.
func timestamp(now time.Time, offset string) string {
	m := tzRe.FindStringSubmatch(offset)
	sign := m[1]
	hh, _ := strconv.Atoi(m[2])
	mm, _ := strconv.Atoi(m[3])
	seconds := (hh*60 + mm) * 60
	if sign == "-" {
		seconds = -seconds
	}
	loc := time.FixedZone("", seconds)
	return now.In(loc).Format("2006-01-02T15:04:05") + offset
}

// Build constructs the template contract. The result scores 100 under
// the linter; every description carries a TODO marker for the author
// to replace.
func Build(p Params) (*contract.Contract, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Version == "" {
		p.Version = "1.0.0"
	}
	if p.TZOffset == "" {
		p.TZOffset = "+02:00"
	}
	if p.Now.IsZero() {
		p.Now = time.Now()
	}
	ts := timestamp(p.Now, p.TZOffset)

	intent := "structure_only"
	if p.ModuleType == "PROCESS" || p.ModuleType == "RULESET" {
		intent = "structure_plus_masks"
	}

	c := &contract.Contract{
		Schema: contract.SchemaMeta{
			Name:                "A-PRACTICAL.contract",
			Version:             "4.0.0",
			Stage:               "A.contract_only",
			MaturityStage:       "draft",
			StaticFrameOnly:     true,
			UnderpaintingIntent: intent,
			CreatedAt:           ts,
			UpdatedAt:           ts,
		},
		ModuleID:   p.ModuleID,
		ModuleAbbr: p.ModuleAbbr,
		ModuleType: p.ModuleType,
		ModuleName: contract.I18nText{UK: p.ModuleNameUK, EN: p.ModuleNameEN},
		Version:    p.Version,
		Description: fmt.Sprintf("Модуль %s (%s) — TODO: додати детальний опис призначення та функціоналу модуля.",
			p.ModuleID, p.ModuleAbbr),
		IOContract: contract.IOContract{
			Inputs: []contract.IOArtifact{
				{ArtifactID: "input_data", Type: "json", Scope: "public", Description: "TODO: Вхідні дані модуля"},
			},
			Outputs: []contract.IOArtifact{
				{ArtifactID: "output_result", Type: "json", Scope: "public", Description: "TODO: Вихідні дані модуля"},
			},
		},
		Parameters: map[string]contract.Parameter{
			"strength": {
				Type: "float", Unit: "fraction", Range: []float64{0.0, 1.0}, Default: 0.5,
				Description: "TODO: Основний параметр впливу модуля (0.0–1.0).",
			},
			"mode": {
				Type: "enum", Enum: []string{"auto", "manual"}, Default: "auto", Unit: "category",
				Description: "TODO: Режим роботи модуля.",
			},
			"enabled": {
				Type: "boolean", Unit: "flag", Default: true,
				Description: "TODO: Прапорець активації модуля.",
			},
		},
		ParameterGroups: map[string][]string{
			"main":    {"strength", "mode"},
			"control": {"enabled"},
		},
		Constraints: []contract.Constraint{
			{Expr: "strength >= 0.0 && strength <= 1.0", ErrorCode: "E001"},
			{Expr: "mode == 'auto' || mode == 'manual'", ErrorCode: "E002"},
		},
		Validation: contract.Validation{
			Rules: []contract.ValidationRule{
				{
					Name: "low_strength_warning", Condition: "strength < 0.1", Severity: "warning",
					Message: "strength < 0.1 може не дати помітного ефекту.", ErrorCode: "W001",
				},
				{
					Name: "high_strength_warning", Condition: "strength > 0.9", Severity: "warning",
					Message: "strength > 0.9 може призвести до надмірного ефекту.", ErrorCode: "W002",
				},
			},
		},
		ErrorCodes: []contract.ErrorCodeDef{
			{
				Code: "E001", Level: "error",
				Title:   contract.I18nText{UK: "Strength поза діапазоном", EN: "Strength out of range"},
				Message: contract.I18nText{UK: "strength має бути в межах [0.0, 1.0].", EN: "strength must be within [0.0, 1.0]."},
			},
			{
				Code: "E002", Level: "error",
				Title:   contract.I18nText{UK: "Невідомий режим", EN: "Unknown mode"},
				Message: contract.I18nText{UK: "mode має бути 'auto' або 'manual'.", EN: "mode must be 'auto' or 'manual'."},
			},
			{
				Code: "W001", Level: "warning",
				Title:   contract.I18nText{UK: "Низький strength", EN: "Low strength"},
				Message: contract.I18nText{UK: "strength < 0.1 може не дати ефекту.", EN: "strength < 0.1 may have no visible effect."},
			},
			{
				Code: "W002", Level: "warning",
				Title:   contract.I18nText{UK: "Високий strength", EN: "High strength"},
				Message: contract.I18nText{UK: "strength > 0.9 може бути надмірним.", EN: "strength > 0.9 may be excessive."},
			},
		},
		Algorithm: contract.Algorithm{
			ArtifactRegistry: []contract.RegistryEntry{
				{ArtifactID: "output_result", Scope: "public"},
				{ArtifactID: "intermediate_data", Scope: "internal"},
			},
			Steps: []contract.Step{
				{
					ID: "S001", Name: "load_input", Type: "load",
					Uses: []string{"input_data"}, Produces: []string{"loaded_data"},
					Description: "TODO: Завантаження вхідних даних.",
				},
				{
					ID: "S002", Name: "process", Type: "transform",
					Uses: []string{"loaded_data", "strength", "mode"}, Produces: []string{"intermediate_data"},
					Description: "TODO: Основна обробка даних.",
				},
				{
					ID: "S003", Name: "validate", Type: "validate",
					Uses: []string{"intermediate_data"}, Produces: []string{"validation_report"},
					Description: "TODO: Валідація результатів.",
				},
				{
					ID: "S004", Name: "export", Type: "export",
					Uses: []string{"intermediate_data", "validation_report"}, Produces: []string{"output_result"},
					Description: "TODO: Експорт результатів.",
				},
			},
		},
		Relations: contract.Relations{
			DependsOn:     []string{},
			Influences:    []string{},
			ConflictsWith: []string{},
		},
		TestCases: []contract.TestCase{
			{
				ID: "TC_" + p.ModuleAbbr + "_POS_01", Type: "positive", Name: "Valid default configuration",
				Input:    map[string]any{"strength": 0.5, "mode": "auto", "enabled": true},
				Expected: map[string]any{"pass": true},
			},
			{
				ID: "TC_" + p.ModuleAbbr + "_POS_02", Type: "positive", Name: "Valid manual mode",
				Input:    map[string]any{"strength": 0.8, "mode": "manual"},
				Expected: map[string]any{"pass": true},
			},
			{
				ID: "TC_" + p.ModuleAbbr + "_NEG_01", Type: "negative", Name: "Strength below range",
				Input:    map[string]any{"strength": -0.5},
				Expected: map[string]any{"pass": false, "error_code": "E001"},
			},
			{
				ID: "TC_" + p.ModuleAbbr + "_NEG_02", Type: "negative", Name: "Strength above range",
				Input:    map[string]any{"strength": 1.5},
				Expected: map[string]any{"pass": false, "error_code": "E001"},
			},
			{
				ID: "TC_" + p.ModuleAbbr + "_WARN_01", Type: "warning", Name: "Low strength warning",
				Input:    map[string]any{"strength": 0.05, "mode": "auto"},
				Expected: map[string]any{"pass": true, "warning_code": "W001"},
			},
		},
		Policies: contract.Policies{
			UnitPolicy:     "strict",
			ConstraintsDSL: contract.ConstraintsDSL{DSLVersion: "1.0", Syntax: "string_expr"},
			GlossaryPolicy: "warn",
			I18nPolicy:     contract.I18nPolicy{DefaultLang: "uk", SupportedLangs: []string{"uk", "en"}},
		},
	}
	if err := c.EnsureRaw(); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode renders the contract as the on-disk JSON form: two-space
// indent, unescaped non-ASCII, trailing newline.
func Encode(c *contract.Contract) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal contract: %w", err)
	}
	return append(data, '\n'), nil
}
