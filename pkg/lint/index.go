package lint

import (
	"fmt"

	"github.com/NympoBrutty/m-painting-system-m/pkg/contract"
	"github.com/NympoBrutty/m-painting-system-m/pkg/glossary"
)

// artifactInfo records where an artifact comes from within one document.
type artifactInfo struct {
	scope      string   // public or internal; "" when only step-produced
	steps      []string // ids of steps producing it, declaration order
	registered bool
	location   string // registry entry, or first producing step's produces
}

// index is the per-document identifier lookup table. It is built once
// per validation run from a single document snapshot, read by the
// cross-reference checks and discarded with the run. It is never
// mutated after buildIndex returns.
type index struct {
	errorCodes map[string]bool
	artifacts  map[string]*artifactInfo
	params     map[string]bool
	groups     map[string][]string
	glossary   glossary.Set
}

// buildIndex is a pure function of the document. It never fails: an
// absent section yields an empty sub-index (the structural pass already
// reported the absence). The only findings it emits are duplicate
// error-code declarations, one per duplicate beyond the first.
func buildIndex(c *contract.Contract, terms glossary.Set) (*index, []Finding) {
	var fs []Finding
	idx := &index{
		errorCodes: make(map[string]bool),
		artifacts:  make(map[string]*artifactInfo),
		params:     make(map[string]bool),
		groups:     make(map[string][]string),
		glossary:   terms,
	}

	for i, def := range c.ErrorCodes {
		if def.Code == "" {
			continue
		}
		if idx.errorCodes[def.Code] {
			errorf(&fs, CodeErrorCodeDuplicate, fmt.Sprintf("error_codes[%d].code", i),
				fmt.Sprintf("error code %q is declared more than once", def.Code))
			continue
		}
		idx.errorCodes[def.Code] = true
	}

	for _, entry := range c.Algorithm.ArtifactRegistry {
		if entry.ArtifactID == "" {
			continue
		}
		idx.artifacts[entry.ArtifactID] = &artifactInfo{
			scope:      contract.NormalizeScope(entry.Scope),
			registered: true,
			location:   "algorithm.artifact_registry." + entry.ArtifactID,
		}
	}
	for i, step := range c.Algorithm.Steps {
		for _, name := range step.Produces {
			info := idx.artifacts[name]
			if info == nil {
				info = &artifactInfo{
					location: fmt.Sprintf("algorithm.steps[%d].produces", i),
				}
				idx.artifacts[name] = info
			}
			info.steps = append(info.steps, step.ID)
		}
	}

	for name := range c.Parameters {
		idx.params[name] = true
	}
	for group, members := range c.ParameterGroups {
		idx.groups[group] = append([]string(nil), members...)
	}

	return idx, fs
}

// grouped reports whether a parameter appears in any parameter group.
func (idx *index) grouped(param string) bool {
	for _, members := range idx.groups {
		for _, m := range members {
			if m == param {
				return true
			}
		}
	}
	return false
}
