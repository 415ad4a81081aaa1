package lint

import (
	"fmt"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
	"github.com/NympoBrutty/m-painting-system-m/pkg/glossary"
)

// Options configures a Validator.
type Options struct {
	// Glossary is the external controlled vocabulary. Nil disables the
	// glossary check entirely.
	Glossary glossary.Set
	// GlossaryPolicy, when non-empty, overrides the document's own
	// policies.glossary_policy.
	GlossaryPolicy glossary.Policy
	// TokenSources selects which identifier families feed the glossary
	// check. Nil means DefaultTokenSources.
	TokenSources []TokenSource
	// SchemaCheck also runs the JSON-Schema pass and folds its
	// violations into the report as structural findings.
	SchemaCheck bool
}

// Validator runs the full lint pipeline over one contract at a time.
// A run is pure and synchronous: the identifier index lives for the
// run and is discarded with it, so one Validator may be shared across
// goroutines validating independent documents.
type Validator struct {
	opts Options
}

// New returns a Validator with the given options.
func New(opts Options) *Validator {
	if opts.TokenSources == nil {
		opts.TokenSources = DefaultTokenSources
	}
	return &Validator{opts: opts}
}

// Run validates one contract and produces its report: structural pass,
// identifier index, expression parse, cross-reference pass, then
// deterministic aggregation. Every check accumulates findings; nothing
// short-circuits.
func (v *Validator) Run(c *contract.Contract) (*Report, error) {
	if err := c.EnsureRaw(); err != nil {
		return nil, err
	}

	var findings []Finding

	if v.opts.SchemaCheck {
		violations, err := contract.CheckSchema(c)
		if err != nil {
			return nil, fmt.Errorf("schema pass: %w", err)
		}
		for _, viol := range violations {
			errorf(&findings, CodeMissingTopField, viol.Path, "schema: "+viol.Message)
		}
	}

	findings = append(findings, checkStructure(c)...)

	idx, dupes := buildIndex(c, v.opts.Glossary)
	findings = append(findings, dupes...)

	findings = append(findings, checkExpressions(c)...)

	policy := v.effectivePolicy(c)
	findings = append(findings, checkCrossReferences(c, idx, policy, v.opts.TokenSources)...)

	return aggregate(c.ModuleID, findings), nil
}

// effectivePolicy resolves the glossary policy: an explicit option
// wins, otherwise the document's own declaration, defaulting to off.
func (v *Validator) effectivePolicy(c *contract.Contract) glossary.Policy {
	if v.opts.GlossaryPolicy != "" {
		return v.opts.GlossaryPolicy
	}
	if p, err := glossary.ParsePolicy(c.Policies.GlossaryPolicy); err == nil {
		return p
	}
	return glossary.PolicyOff
}
