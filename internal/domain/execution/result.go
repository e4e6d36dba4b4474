// Package execution provides domain models for selection results.
package execution

import (
	"time"

	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/values"
)

// SelectionResult is the outcome of one selection run.
//
// Files is ordered and duplicate-free. Every element is an absolute path to
// a regular file at or below Root.
type SelectionResult struct {
	RunID    values.SelectionID           `json:"run_id" yaml:"run_id"`
	Profile  string                       `json:"profile,omitempty" yaml:"profile,omitempty"`
	Base     string                       `json:"base" yaml:"base"`
	Root     string                       `json:"root" yaml:"root"`
	Files    []string                     `json:"files" yaml:"files"`
	Skipped  []*entities.EntryAccessError `json:"-" yaml:"-"`
	Walked   int                          `json:"walked" yaml:"walked"`
	Duration time.Duration                `json:"duration_ns" yaml:"duration_ns"`
}

// NewSelectionResult creates an empty result for the given base and root.
func NewSelectionResult(base, root string) *SelectionResult {
	return &SelectionResult{
		RunID: values.NewSelectionID(),
		Base:  base,
		Root:  root,
		Files: []string{},
	}
}

// Len returns the number of selected files.
func (r *SelectionResult) Len() int {
	return len(r.Files)
}

// IsEmpty reports whether nothing was selected.
func (r *SelectionResult) IsEmpty() bool {
	return len(r.Files) == 0
}

// Relative returns each selected file relative to Root, slash-separated.
func (r *SelectionResult) Relative() []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		rel, ok := values.RelativeSlash(r.Root, f)
		if !ok {
			rel = f
		}
		out = append(out, rel)
	}
	return out
}

// SkippedPaths lists the entries the walk could not read.
func (r *SelectionResult) SkippedPaths() []string {
	out := make([]string, len(r.Skipped))
	for i, s := range r.Skipped {
		out[i] = s.Path
	}
	return out
}

// Filter returns a copy of r keeping only the files keep accepts.
func (r *SelectionResult) Filter(keep func(path string) bool) *SelectionResult {
	filtered := *r
	filtered.Files = make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		if keep(f) {
			filtered.Files = append(filtered.Files, f)
		}
	}
	return &filtered
}
