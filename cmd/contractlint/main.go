package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/NympoBrutty/m-painting-system-m/pkg/batch"
	"github.com/NympoBrutty/m-painting-system-m/pkg/config"
	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
	"github.com/NympoBrutty/m-painting-system-m/pkg/diagram"
	"github.com/NympoBrutty/m-painting-system-m/pkg/glossary"
	"github.com/NympoBrutty/m-painting-system-m/pkg/lint"
	"github.com/NympoBrutty/m-painting-system-m/pkg/report"
	"github.com/NympoBrutty/m-painting-system-m/pkg/scaffold"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "contractlint",
	Short: "Stage-A contract lint validator",
	Long:  "contractlint validates Stage-A module contracts against the schema and lint rules, producing per-document findings and a quality score.",
}

// --- validate ---

var (
	validateConfig   string
	validateGlossary string
	validatePolicy   string
	validateSources  []string
	validateFormat   string
	validateOut      string
	validateThreads  int
	validateSchema   bool
	validateLogLevel string
)

var validateCmd = &cobra.Command{
	Use:   "validate [contract.json]...",
	Short: "Validate one or more contract JSON files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if validateConfig != "" {
		loaded, err := config.LoadFile(validateConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	// Flags override file values.
	if cmd.Flags().Changed("glossary") {
		cfg.Glossary = validateGlossary
	}
	if cmd.Flags().Changed("glossary-policy") {
		cfg.GlossaryPolicy = validatePolicy
	}
	if cmd.Flags().Changed("token-sources") {
		cfg.TokenSources = validateSources
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = validateFormat
	}
	if cmd.Flags().Changed("threads") {
		cfg.Threads = validateThreads
	}
	if cmd.Flags().Changed("schema-check") {
		cfg.SchemaCheck = validateSchema
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = validateLogLevel
	}

	lintOpts := lint.Options{SchemaCheck: cfg.SchemaCheck}
	if cfg.Glossary != "" {
		terms, err := glossary.LoadFile(cfg.Glossary)
		if err != nil {
			return err
		}
		lintOpts.Glossary = terms
	}
	if cfg.GlossaryPolicy != "" {
		policy, err := glossary.ParsePolicy(cfg.GlossaryPolicy)
		if err != nil {
			return err
		}
		lintOpts.GlossaryPolicy = policy
	}
	for _, src := range cfg.TokenSources {
		switch lint.TokenSource(src) {
		case lint.TokensParameters, lint.TokensArtifacts, lint.TokensSteps:
			lintOpts.TokenSources = append(lintOpts.TokenSources, lint.TokenSource(src))
		default:
			return fmt.Errorf("invalid token source %q: must be parameters, artifacts or steps", src)
		}
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "contractlint",
		Output: os.Stderr,
		Level:  hclog.LevelFromString(cfg.LogLevel),
	})

	result := batch.Run(args, batch.Options{
		Threads: cfg.Threads,
		Logger:  logger,
		Lint:    lintOpts,
	})

	out := os.Stdout
	if validateOut != "" {
		f, err := os.Create(validateOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "":
		if err := report.WriteText(out, result); err != nil {
			return err
		}
	case "json":
		if err := report.WriteJSON(out, result); err != nil {
			return err
		}
	case "sarif":
		if err := report.WriteSARIF(out, result); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use text, json or sarif", cfg.Format)
	}

	// Warnings alone never fail the run; errors do.
	if !result.Ok() {
		return fmt.Errorf("validation failed: %d of %d contract(s) have errors", result.Failed, len(args))
	}
	return nil
}

// --- new ---

var newParams struct {
	moduleID   string
	moduleAbbr string
	moduleType string
	nameUK     string
	nameEN     string
	version    string
	tz         string
	out        string
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a fresh contract from the built-in template",
	RunE:  runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	c, err := scaffold.Build(scaffold.Params{
		ModuleID:     newParams.moduleID,
		ModuleAbbr:   newParams.moduleAbbr,
		ModuleType:   newParams.moduleType,
		ModuleNameUK: newParams.nameUK,
		ModuleNameEN: newParams.nameEN,
		Version:      newParams.version,
		TZOffset:     newParams.tz,
	})
	if err != nil {
		return err
	}
	data, err := scaffold.Encode(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(newParams.out, data, 0644); err != nil {
		return fmt.Errorf("write contract: %w", err)
	}
	fmt.Printf("✓ generated %s (%s %s)\n", newParams.out, c.ModuleID, c.ModuleAbbr)
	fmt.Println("  search for 'TODO' to complete the contract")
	return nil
}

// --- diagram ---

var diagramFormat string

var diagramCmd = &cobra.Command{
	Use:   "diagram [contract.json]",
	Short: "Render the algorithm step flow as a diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := contract.LoadFile(args[0])
		if err != nil {
			return err
		}
		out, err := diagram.Generate(c, diagram.Format(diagramFormat))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the generated contract JSON Schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := contract.GenerateJSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("contractlint %s (%s)\n", version, commit)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateConfig, "config", "", "path to .contractlint.yaml")
	validateCmd.Flags().StringVar(&validateGlossary, "glossary", "", "path to glossary term list (.json or .yaml)")
	validateCmd.Flags().StringVar(&validatePolicy, "glossary-policy", "", "glossary policy: strict, warn or off")
	validateCmd.Flags().StringSliceVar(&validateSources, "token-sources", nil, "glossary token sources: parameters, artifacts, steps")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format: text, json or sarif")
	validateCmd.Flags().StringVarP(&validateOut, "out", "o", "", "write the report to a file instead of stdout")
	validateCmd.Flags().IntVarP(&validateThreads, "threads", "j", 1, "number of concurrent validations")
	validateCmd.Flags().BoolVar(&validateSchema, "schema-check", false, "also run the JSON-Schema pass")
	validateCmd.Flags().StringVar(&validateLogLevel, "log-level", "info", "log level: debug, info, warn or error")

	newCmd.Flags().StringVar(&newParams.moduleID, "module-id", "", "module ID (e.g. A-V-1)")
	newCmd.Flags().StringVar(&newParams.moduleAbbr, "module-abbr", "", "module abbreviation (e.g. TONE)")
	newCmd.Flags().StringVar(&newParams.moduleType, "module-type", "", "module type: PROCESS, RULESET or BRIDGE")
	newCmd.Flags().StringVar(&newParams.nameUK, "module-name-uk", "", "module name in Ukrainian")
	newCmd.Flags().StringVar(&newParams.nameEN, "module-name-en", "", "module name in English")
	newCmd.Flags().StringVar(&newParams.version, "version", "1.0.0", "contract version")
	newCmd.Flags().StringVar(&newParams.tz, "tz", "+02:00", "timezone offset for timestamps")
	newCmd.Flags().StringVar(&newParams.out, "out", "", "output file path")
	for _, flag := range []string{"module-id", "module-abbr", "module-type", "module-name-uk", "module-name-en", "out"} {
		_ = newCmd.MarkFlagRequired(flag)
	}

	diagramCmd.Flags().StringVar(&diagramFormat, "format", "mermaid", "diagram format: mermaid or ascii")

	rootCmd.AddCommand(validateCmd, newCmd, diagramCmd, schemaCmd, versionCmd)
}
