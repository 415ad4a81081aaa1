package lint

// Status bands derived from the score.
const (
	StatusPerfect   = "Perfect"
	StatusExcellent = "Excellent"
	StatusGood      = "Good"
	StatusNeedsWork = "Needs-work"
	StatusFailed    = "Failed"
)

// Report is the per-document aggregate: the ordered findings plus the
// computed score and status. It is immutable once emitted.
type Report struct {
	ModuleID string    `json:"module_id,omitempty"`
	Findings []Finding `json:"findings"`
	Score    int       `json:"score"`
	Status   string    `json:"status"`
}

// HasErrors reports whether any finding is ERROR-severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Score computes the document score from its findings. Starting at
// 100: every ERROR subtracts 10 and the result is clamped to [0,50],
// so any error caps the ceiling at 50. With zero errors every WARNING
// subtracts 5, clamped to [70,100].
func Score(findings []Finding) (int, string) {
	errors, warnings := 0, 0
	for _, f := range findings {
		if f.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	var score int
	if errors > 0 {
		score = clamp(100-10*errors, 0, 50)
	} else {
		score = clamp(100-5*warnings, 70, 100)
	}
	return score, statusFor(score)
}

func statusFor(score int) string {
	switch {
	case score == 100:
		return StatusPerfect
	case score >= 90:
		return StatusExcellent
	case score >= 70:
		return StatusGood
	case score >= 50:
		return StatusNeedsWork
	default:
		return StatusFailed
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// aggregate sorts the findings deterministically and attaches the
// score, producing the final report.
func aggregate(moduleID string, findings []Finding) *Report {
	if findings == nil {
		findings = []Finding{}
	}
	sortFindings(findings)
	score, status := Score(findings)
	return &Report{
		ModuleID: moduleID,
		Findings: findings,
		Score:    score,
		Status:   status,
	}
}
