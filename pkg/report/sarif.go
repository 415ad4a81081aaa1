package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/NympoBrutty/m-painting-system-m/pkg/lint"
)

const toolInfoURI = "https://github.com/NympoBrutty/m-painting-system-m"

// WriteSARIF emits the batch result as a SARIF 2.1.0 log with one run.
// Each finding code becomes a rule; the finding's document path plus
// JSON-path location identify the result.
func WriteSARIF(w io.Writer, r *Result) error {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("contractlint", toolInfoURI)
	for _, d := range r.Documents {
		if d.Report == nil {
			continue
		}
		for _, f := range d.Report.Findings {
			level := toSARIFLevel(f.Severity)
			rule := run.AddRule(f.Code).
				WithDescription(f.Code).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level})

			location := sarif.NewLocation().
				WithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.Path)),
				).
				WithLogicalLocations([]*sarif.LogicalLocation{
					sarif.NewLogicalLocation().WithFullyQualifiedName(f.Location),
				})

			result := sarif.NewRuleResult(rule.ID).
				WithMessage(sarif.NewTextMessage(f.Message)).
				WithLevel(level).
				WithLocations([]*sarif.Location{location})
			run.AddResult(result)
		}
	}
	log.AddRun(run)

	return log.PrettyWrite(w)
}

func toSARIFLevel(s lint.Severity) string {
	if s == lint.SeverityError {
		return "error"
	}
	return "warning"
}
