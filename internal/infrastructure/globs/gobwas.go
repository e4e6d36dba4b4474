package globs

import (
	"strings"

	gg "github.com/gobwas/glob"
	"github.com/katcli/kat/internal/application/ports"
)

// Ensure interface compliance
var _ ports.GlobCompiler = (*GobwasCompiler)(nil)

// maxSuperAsteriskVariants bounds the number of "**/" segments expanded
// into zero-directory alternatives.
const maxSuperAsteriskVariants = 4

// GobwasCompiler compiles patterns with github.com/gobwas/glob using '/' as
// the separator.
//
// gobwas treats "**" as "any characters including separators" and requires
// the literal '/' that follows it, so "**/*.rs" would not match "a.rs". To
// keep the same selection semantics as the doublestar engine, every
// segment-leading "**/" also compiles a variant with that segment removed.
type GobwasCompiler struct{}

// NewGobwasCompiler creates the alternative glob engine.
func NewGobwasCompiler() *GobwasCompiler {
	return &GobwasCompiler{}
}

// Name implements ports.GlobCompiler.
func (c *GobwasCompiler) Name() string {
	return EngineGobwas
}

// Validate implements ports.GlobCompiler.
func (c *GobwasCompiler) Validate(pattern string) error {
	_, err := gg.Compile(pattern, '/')
	return err
}

// Compile implements ports.GlobCompiler.
func (c *GobwasCompiler) Compile(pattern string) (ports.Matcher, error) {
	variants := superAsteriskVariants(pattern)

	m := make(gobwasMatcher, 0, len(variants))
	for _, v := range variants {
		g, err := gg.Compile(v, '/')
		if err != nil {
			return nil, err
		}
		m = append(m, g)
	}
	return m, nil
}

type gobwasMatcher []gg.Glob

// Match implements ports.Matcher.
func (m gobwasMatcher) Match(rel string) bool {
	for _, g := range m {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// superAsteriskVariants returns pattern plus every combination of its
// segment-leading "**/" occurrences removed. Only the first
// maxSuperAsteriskVariants occurrences are expanded.
func superAsteriskVariants(pattern string) []string {
	var positions []int
	for i := 0; i+3 <= len(pattern); i++ {
		if pattern[i:i+3] == "**/" && (i == 0 || pattern[i-1] == '/') {
			positions = append(positions, i)
			if len(positions) == maxSuperAsteriskVariants {
				break
			}
		}
	}

	variants := []string{pattern}
	// Walk positions right to left so earlier indexes stay valid.
	for j := len(positions) - 1; j >= 0; j-- {
		pos := positions[j]
		n := len(variants)
		for k := 0; k < n; k++ {
			v := variants[k]
			if strings.HasPrefix(v[pos:], "**/") {
				variants = append(variants, v[:pos]+v[pos+3:])
			}
		}
	}
	return variants
}
