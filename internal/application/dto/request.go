// Package dto contains data transfer objects for application layer use cases.
package dto

import "fmt"

// PresentMode selects what the presenter emits.
type PresentMode string

const (
	// ModeContent renders every selected file through the viewer.
	ModeContent PresentMode = "content"
	// ModePaths prints the selected paths.
	ModePaths PresentMode = "paths"
	// ModePatterns prints the resolved patterns without walking.
	ModePatterns PresentMode = "patterns"
)

// ParsePresentMode validates a mode name.
func ParsePresentMode(s string) (PresentMode, error) {
	switch m := PresentMode(s); m {
	case ModeContent, ModePaths, ModePatterns:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (valid: content, paths, patterns)", s)
	}
}

// SelectRequest encapsulates the inputs of one selection run.
type SelectRequest struct {
	Base    string
	Include []string
	Exclude []string

	// Strict turns skipped, unreadable entries into an error.
	Strict bool
}

// ProfileOverrides replaces profile lists. A nil slice keeps the profile's
// value; an empty non-nil slice clears it.
type ProfileOverrides struct {
	IncludedPaths []string
	ExcludedPaths []string
	IncludedTypes []string
	ExcludedTypes []string
}

// RunProfileRequest encapsulates all inputs needed to run a profile.
type RunProfileRequest struct {
	ProfileName string
	Base        string
	Overrides   ProfileOverrides
	Options     PresentOptions
}

// PresentRequest is a fully resolved selection plus presentation options.
type PresentRequest struct {
	// Profile names the rules in logs and structured output. Optional.
	Profile string
	Select  SelectRequest
	Options PresentOptions
}

// PresentOptions controls the presenter.
type PresentOptions struct {
	Mode   PresentMode
	Format string
	Where  string

	// Flags (bools grouped for alignment)
	Strict   bool
	Relative bool
}
