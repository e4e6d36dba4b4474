package output

import (
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/values"
)

// The document types fix the wire shape of the structured formats
// independently of the domain structs.

type selectionDocument struct {
	RunID    string   `json:"run_id" yaml:"run_id"`
	Profile  string   `json:"profile,omitempty" yaml:"profile,omitempty"`
	Base     string   `json:"base" yaml:"base"`
	Root     string   `json:"root" yaml:"root"`
	Files    []string `json:"files" yaml:"files"`
	Skipped  []string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Walked   int      `json:"walked" yaml:"walked"`
	Duration string   `json:"duration" yaml:"duration"`
}

type patternsDocument struct {
	Root    string                   `json:"root" yaml:"root"`
	Include []values.ResolvedPattern `json:"include" yaml:"include"`
	Exclude []values.ResolvedPattern `json:"exclude" yaml:"exclude"`
}

type profileDocument struct {
	Name          string   `json:"name" yaml:"name"`
	About         string   `json:"about" yaml:"about"`
	IncludedPaths []string `json:"included_paths" yaml:"included_paths"`
	ExcludedPaths []string `json:"excluded_paths" yaml:"excluded_paths"`
	IncludedTypes []string `json:"included_types" yaml:"included_types"`
	ExcludedTypes []string `json:"excluded_types" yaml:"excluded_types"`
}

func newSelectionDocument(result *execution.SelectionResult, relative bool) selectionDocument {
	files := result.Files
	if relative {
		files = result.Relative()
	}
	if files == nil {
		files = []string{}
	}
	return selectionDocument{
		RunID:    result.RunID.String(),
		Profile:  result.Profile,
		Base:     result.Base,
		Root:     result.Root,
		Files:    files,
		Skipped:  result.SkippedPaths(),
		Walked:   result.Walked,
		Duration: result.Duration.String(),
	}
}

func newPatternsDocument(set values.PatternSet) patternsDocument {
	return patternsDocument{
		Root:    set.Root,
		Include: nonNil(set.Include),
		Exclude: nonNil(set.Exclude),
	}
}

func newProfileDocument(p *entities.Profile) profileDocument {
	return profileDocument{
		Name:          p.Name,
		About:         p.About,
		IncludedPaths: nonNil(p.IncludedPaths),
		ExcludedPaths: nonNil(p.ExcludedPaths),
		IncludedTypes: nonNil(p.IncludedTypes),
		ExcludedTypes: nonNil(p.ExcludedTypes),
	}
}

func newProfileDocuments(profiles []*entities.Profile) []profileDocument {
	docs := make([]profileDocument, len(profiles))
	for i, p := range profiles {
		docs[i] = newProfileDocument(p)
	}
	return docs
}

// nonNil keeps empty lists as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
