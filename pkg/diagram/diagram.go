// Package diagram renders a contract's algorithm step sequence as a
// Mermaid flowchart or an ASCII diagram.
package diagram

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
)

// Format represents the output diagram format.
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatASCII   Format = "ascii"
)

// Generate produces a diagram string from a parsed contract.
func Generate(c *contract.Contract, format Format) (string, error) {
	if c == nil {
		return "", fmt.Errorf("nil contract")
	}
	switch format {
	case FormatMermaid:
		return generateMermaid(c), nil
	case FormatASCII:
		return generateASCII(c), nil
	default:
		return "", fmt.Errorf("unsupported diagram format: %s", format)
	}
}

// --- Mermaid flowchart ---

// generateMermaid draws the step chain with artifact-labelled edges:
// an edge from the step producing an artifact to each later step using
// it, plus module inputs from START and declared outputs to END.
func generateMermaid(c *contract.Contract) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	steps := c.Algorithm.Steps
	if len(steps) == 0 {
		return b.String()
	}

	inputs := make(map[string]bool)
	for _, in := range c.IOContract.Inputs {
		inputs[in.ArtifactID] = true
	}
	producedBy := make(map[string]string) // artifact -> first producing step id
	for _, s := range steps {
		for _, a := range s.Produces {
			if _, done := producedBy[a]; !done {
				producedBy[a] = s.ID
			}
		}
	}

	b.WriteString(fmt.Sprintf("    START([%s])\n", c.ModuleAbbr))
	for _, s := range steps {
		b.WriteString(fmt.Sprintf("    %s[%q]\n", safeID(s.ID), s.ID+" "+s.Name))
	}
	b.WriteString("    END([outputs])\n")

	for _, s := range steps {
		for _, a := range s.Uses {
			switch {
			case inputs[a]:
				b.WriteString(fmt.Sprintf("    START -->|%s| %s\n", a, safeID(s.ID)))
			case producedBy[a] != "" && producedBy[a] != s.ID:
				b.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", safeID(producedBy[a]), a, safeID(s.ID)))
			}
		}
	}
	for _, out := range c.IOContract.Outputs {
		if from := producedBy[out.ArtifactID]; from != "" {
			b.WriteString(fmt.Sprintf("    %s -->|%s| END\n", safeID(from), out.ArtifactID))
		}
	}
	return b.String()
}

// safeID strips characters Mermaid treats as syntax from node ids.
func safeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// --- ASCII ---

// generateASCII draws the steps as a vertical chain of boxes. Box
// widths use display width, not byte length, so localized step names
// line up.
func generateASCII(c *contract.Contract) string {
	steps := c.Algorithm.Steps
	if len(steps) == 0 {
		return ""
	}

	labels := make([]string, 0, len(steps))
	width := 0
	for _, s := range steps {
		label := fmt.Sprintf("%s %s (%s)", s.ID, s.Name, s.Type)
		labels = append(labels, label)
		if w := runewidth.StringWidth(label); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, label := range labels {
		pad := width - runewidth.StringWidth(label)
		b.WriteString("+" + strings.Repeat("-", width+2) + "+\n")
		b.WriteString("| " + label + strings.Repeat(" ", pad) + " |\n")
		b.WriteString("+" + strings.Repeat("-", width+2) + "+\n")
		if i < len(steps)-1 {
			indent := strings.Repeat(" ", width/2+2)
			b.WriteString(indent + "|\n")
			b.WriteString(indent + "v\n")
		}
	}
	return b.String()
}
