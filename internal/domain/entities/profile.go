// Package entities contains domain entities for the kat domain model.
// These are pure domain types with NO infrastructure dependencies.
package entities

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// reservedNames are top-level commands a profile must not shadow.
var reservedNames = map[string]bool{
	"profiles":   true,
	"version":    true,
	"help":       true,
	"completion": true,
}

var profileNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Profile is a named set of selection rules.
//
// Name is not part of the stored document; it is derived from the source
// the profile was loaded from (the file stem for YAML profiles).
//
// IncludedTypes and ExcludedTypes are carried for schema compatibility but
// are not consulted when selecting files. See IsTypeAllowed.
type Profile struct {
	Name          string   `yaml:"-" json:"name"`
	About         string   `yaml:"about" json:"about"`
	IncludedPaths []string `yaml:"included_paths" json:"included_paths"`
	ExcludedPaths []string `yaml:"excluded_paths" json:"excluded_paths"`
	IncludedTypes []string `yaml:"included_types" json:"included_types"`
	ExcludedTypes []string `yaml:"excluded_types" json:"excluded_types"`
}

// Validate checks the profile invariants.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if !profileNamePattern.MatchString(p.Name) {
		return fmt.Errorf("profile name %q must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", p.Name)
	}
	if reservedNames[p.Name] {
		return fmt.Errorf("profile name %q is reserved", p.Name)
	}

	for i, pattern := range p.IncludedPaths {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("included_paths[%d] is blank", i)
		}
	}
	for i, pattern := range p.ExcludedPaths {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("excluded_paths[%d] is blank", i)
		}
	}

	return nil
}

// Clone returns a deep copy so callers cannot mutate a stored profile.
func (p *Profile) Clone() *Profile {
	return &Profile{
		Name:          p.Name,
		About:         p.About,
		IncludedPaths: slices.Clone(p.IncludedPaths),
		ExcludedPaths: slices.Clone(p.ExcludedPaths),
		IncludedTypes: slices.Clone(p.IncludedTypes),
		ExcludedTypes: slices.Clone(p.ExcludedTypes),
	}
}

// IsTypeAllowed reports whether a file extension passes the profile's type
// lists. An empty IncludedTypes allows every extension; ExcludedTypes wins
// over IncludedTypes. Extensions compare case-insensitively, with or without
// the leading dot.
//
// Selection does not call this. It exists for callers that want stricter
// type filtering on top of the path rules.
func (p *Profile) IsTypeAllowed(ext string) bool {
	ext = normalizeExt(ext)

	for _, excluded := range p.ExcludedTypes {
		if normalizeExt(excluded) == ext {
			return false
		}
	}

	if len(p.IncludedTypes) == 0 {
		return true
	}
	for _, included := range p.IncludedTypes {
		if normalizeExt(included) == ext {
			return true
		}
	}
	return false
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
