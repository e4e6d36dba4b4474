// Package globs provides the glob engines behind ports.GlobCompiler.
package globs

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/katcli/kat/internal/application/ports"
)

// Ensure interface compliance
var _ ports.GlobCompiler = (*DoublestarCompiler)(nil)

// DoublestarCompiler compiles patterns with github.com/bmatcuk/doublestar.
// Supported syntax:
//   - '*' matches any sequence of non-separator characters
//   - '?' matches any single non-separator character
//   - '[abc]', '[a-z]', '[^x]' match character classes
//   - '**' as a whole segment matches zero or more directories
//   - '{a,b}' matches either alternative
type DoublestarCompiler struct{}

// NewDoublestarCompiler creates the default glob engine.
func NewDoublestarCompiler() *DoublestarCompiler {
	return &DoublestarCompiler{}
}

// Name implements ports.GlobCompiler.
func (c *DoublestarCompiler) Name() string {
	return EngineDoublestar
}

// Validate implements ports.GlobCompiler.
func (c *DoublestarCompiler) Validate(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%w: %s", doublestar.ErrBadPattern, pattern)
	}
	return nil
}

// Compile implements ports.GlobCompiler.
func (c *DoublestarCompiler) Compile(pattern string) (ports.Matcher, error) {
	if err := c.Validate(pattern); err != nil {
		return nil, err
	}
	return doublestarMatcher(pattern), nil
}

type doublestarMatcher string

// Match reports whether rel matches. The pattern was validated at compile
// time, so the unvalidated fast path is safe here.
func (m doublestarMatcher) Match(rel string) bool {
	return doublestar.MatchUnvalidated(string(m), rel)
}
