package services

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/values"
)

// PatternValidator checks that a slash pattern is syntactically valid for the
// glob engine in use.
type PatternValidator interface {
	Validate(pattern string) error
}

// PatternResolver anchors raw include/exclude patterns to a base directory.
// It is pure string work: nothing here touches the filesystem.
//
// Resolution rules:
//   - relative patterns are interpreted relative to the anchor root
//   - absolute patterns under the anchor root (or one of its aliases) are
//     rebased onto it
//   - any other absolute pattern is kept verbatim and will usually match
//     nothing
//   - a trailing slash names a directory: "target/" becomes "target/**"
//   - a pattern without metacharacters is a directory literal as well as a
//     file name (see ResolvedPattern.Directory)
type PatternResolver struct {
	validator PatternValidator
}

// NewPatternResolver creates a resolver. A nil validator accepts every
// pattern.
func NewPatternResolver(validator PatternValidator) *PatternResolver {
	return &PatternResolver{validator: validator}
}

// Resolve anchors every pattern in order. The first invalid pattern aborts
// resolution with a *entities.PatternSyntaxError.
func (r *PatternResolver) Resolve(anchor values.Anchor, raw []string) ([]values.ResolvedPattern, error) {
	resolved := make([]values.ResolvedPattern, 0, len(raw))
	for _, p := range raw {
		rp := r.ResolveOne(anchor, p)
		if r.validator != nil {
			if err := r.validator.Validate(rp.Relative); err != nil {
				return nil, &entities.PatternSyntaxError{Pattern: p, Cause: err}
			}
		}
		resolved = append(resolved, rp)
	}
	return resolved, nil
}

// ResolveSet resolves an include and an exclude list together.
func (r *PatternResolver) ResolveSet(anchor values.Anchor, include, exclude []string) (values.PatternSet, error) {
	inc, err := r.Resolve(anchor, include)
	if err != nil {
		return values.PatternSet{}, err
	}
	exc, err := r.Resolve(anchor, exclude)
	if err != nil {
		return values.PatternSet{}, err
	}
	return values.PatternSet{Root: anchor.Root, Include: inc, Exclude: exc}, nil
}

// ResolveOne anchors a single pattern without validating it.
func (r *PatternResolver) ResolveOne(anchor values.Anchor, raw string) values.ResolvedPattern {
	p := values.NormalizePattern(raw)

	if !isAbsPattern(p) {
		return directoryForm(anchor, values.ResolvedPattern{Raw: raw, Relative: p})
	}

	for _, prefix := range anchor.Prefixes() {
		if rel, ok := rebase(p, prefix); ok {
			return directoryForm(anchor, values.ResolvedPattern{Raw: raw, Relative: rel, Rewritten: true})
		}
	}

	return values.ResolvedPattern{
		Raw:      raw,
		Relative: p,
		Anchored: p,
		Outside:  true,
	}
}

// directoryForm finishes a pattern relative to the anchor root.
func directoryForm(anchor values.Anchor, rp values.ResolvedPattern) values.ResolvedPattern {
	switch rel := rp.Relative; {
	case rel == "":
	case strings.HasSuffix(rel, "/"):
		rp.Relative = strings.TrimRight(rel, "/") + "/**"
	case !hasMeta(rel):
		rp.Directory = true
	}
	rp.Anchored = values.JoinPattern(anchor.Root, rp.Relative)
	return rp
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, `*?[]{}\`)
}

// rebase strips prefix from an absolute slash pattern.
func rebase(pattern, prefix string) (string, bool) {
	if !values.HasPathPrefix(pattern, prefix) {
		return "", false
	}
	prefix = filepath.ToSlash(prefix)
	if prefix != "/" {
		prefix = strings.TrimSuffix(prefix, "/")
	}
	rel := strings.TrimPrefix(pattern, prefix)
	return strings.TrimLeft(rel, "/"), true
}

func isAbsPattern(p string) bool {
	return path.IsAbs(p) || filepath.IsAbs(filepath.FromSlash(p))
}
