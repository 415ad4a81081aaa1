// Package report renders validation results for humans (text), for
// machines (JSON) and for CI code-scanning upload (SARIF 2.1.0).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/NympoBrutty/m-painting-system-m/pkg/lint"
)

// DocumentResult pairs one input document with its lint report. Err is
// set only for the engine-level failure channel: a document that could
// not be read or decoded never reaches the lint engine.
type DocumentResult struct {
	Path   string       `json:"path"`
	Report *lint.Report `json:"report,omitempty"`
	Err    error        `json:"-"`
	Error  string       `json:"error,omitempty"`
}

// Result is a batch aggregate, ordered by input document order.
type Result struct {
	Documents []DocumentResult `json:"documents"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
}

// Collect finalizes a batch: a document fails when it could not be
// loaded or when its report carries at least one ERROR finding.
// Warnings alone never fail a document.
func Collect(docs []DocumentResult) *Result {
	res := &Result{Documents: docs}
	for i := range res.Documents {
		d := &res.Documents[i]
		if d.Err != nil {
			d.Error = d.Err.Error()
			res.Failed++
			continue
		}
		if d.Report != nil && d.Report.HasErrors() {
			res.Failed++
		} else {
			res.Passed++
		}
	}
	return res
}

// Ok reports whether the whole batch passed.
func (r *Result) Ok() bool { return r.Failed == 0 }

// WriteJSON emits the machine-readable batch summary.
func WriteJSON(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText emits the human-readable batch summary.
func WriteText(w io.Writer, r *Result) error {
	for _, d := range r.Documents {
		if d.Err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", d.Path, d.Err)
			continue
		}
		rep := d.Report
		mark := "✓"
		if rep.HasErrors() {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s — score %d (%s)\n", mark, d.Path, rep.Score, rep.Status)
		for _, f := range rep.Findings {
			fmt.Fprintf(w, "    [%s] %s at %s: %s\n", f.Code, f.Severity, f.Location, f.Message)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed\n", r.Passed, r.Failed)
	return nil
}
