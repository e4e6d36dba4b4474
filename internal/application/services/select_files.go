// Package services contains application use cases.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/katcli/kat/internal/application/dto"
	apperrors "github.com/katcli/kat/internal/application/errors"
	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/services"
	"github.com/katcli/kat/internal/domain/values"
)

// SelectFilesUseCase turns a base path and include/exclude patterns into
// an ordered, duplicate-free list of files.
//
// A file is selected when it matches at least one include pattern and no
// exclude pattern. Patterns are matched against the file's slash-separated
// path relative to the anchor root: the base itself, or its parent when the
// base names a file. The use case holds no state between runs.
type SelectFilesUseCase struct {
	fs       ports.FileSystem
	walker   ports.TreeWalker
	compiler ports.GlobCompiler
	resolver *services.PatternResolver
	logger   *slog.Logger
}

// NewSelectFilesUseCase creates a new selection use case.
func NewSelectFilesUseCase(
	fs ports.FileSystem,
	walker ports.TreeWalker,
	compiler ports.GlobCompiler,
	logger *slog.Logger,
) *SelectFilesUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &SelectFilesUseCase{
		fs:       fs,
		walker:   walker,
		compiler: compiler,
		resolver: services.NewPatternResolver(compiler),
		logger:   logger,
	}
}

// Select walks the base and returns the matching files sorted by their
// relative path.
//
// The base must exist; otherwise a *entities.PathNotFoundError is returned
// before anything is walked. An invalid pattern yields a
// *entities.PatternSyntaxError. Unreadable entries are collected in
// Skipped, and only fail the run when req.Strict is set.
func (uc *SelectFilesUseCase) Select(ctx context.Context, req dto.SelectRequest) (*execution.SelectionResult, error) {
	startTime := time.Now()

	base, anchor, err := uc.anchor(req.Base)
	if err != nil {
		return nil, err
	}

	patterns, err := uc.resolver.ResolveSet(anchor, req.Include, req.Exclude)
	if err != nil {
		return nil, err
	}

	include, err := uc.compile(patterns.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := uc.compile(patterns.Exclude)
	if err != nil {
		return nil, err
	}

	result := execution.NewSelectionResult(base.Path, anchor.Root)
	logger := uc.logger.With("run_id", result.RunID.String())

	if len(include) == 0 {
		logger.Debug("no include patterns, nothing to select", "base", base.Path)
		result.Duration = time.Since(startTime)
		return result, nil
	}

	logger.Debug("selecting files",
		"base", base.Path,
		"root", anchor.Root,
		"include", patterns.AnchoredInclude(),
		"exclude", patterns.AnchoredExclude(),
		"engine", uc.compiler.Name())

	seen := make(map[string]struct{})
	keys := make(map[string]string)

	visit := func(path string) error {
		result.Walked++

		rel, ok := values.RelativeSlash(anchor.Root, path)
		if !ok {
			return nil
		}
		if !matchAny(include, rel) || matchAny(exclude, rel) {
			return nil
		}
		if _, dup := seen[path]; dup {
			return nil
		}
		seen[path] = struct{}{}
		keys[path] = rel
		result.Files = append(result.Files, path)
		return nil
	}

	onSkip := func(skipped *entities.EntryAccessError) {
		logger.Debug("entry skipped", "path", skipped.Path, "error", skipped.Cause)
		result.Skipped = append(result.Skipped, skipped)
	}

	if err := uc.walker.Walk(ctx, base.Path, visit, onSkip); err != nil {
		return nil, fmt.Errorf("walking %s: %w", base.Path, err)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return keys[result.Files[i]] < keys[result.Files[j]]
	})
	result.Duration = time.Since(startTime)

	logger.Debug("selection complete",
		"selected", result.Len(),
		"walked", result.Walked,
		"skipped", len(result.Skipped),
		"duration", result.Duration)

	if req.Strict && len(result.Skipped) > 0 {
		return result, apperrors.NewSkippedEntriesError(result.Skipped)
	}
	return result, nil
}

// ResolvePatterns anchors the patterns to base without walking.
func (uc *SelectFilesUseCase) ResolvePatterns(_ context.Context, base string, include, exclude []string) (values.PatternSet, error) {
	_, anchor, err := uc.anchor(base)
	if err != nil {
		return values.PatternSet{}, err
	}
	return uc.resolver.ResolveSet(anchor, include, exclude)
}

// anchor canonicalizes base and derives the directory patterns are
// relative to.
func (uc *SelectFilesUseCase) anchor(base string) (ports.CanonicalPath, values.Anchor, error) {
	if base == "" {
		base = "."
	}

	cp, err := uc.fs.Canonicalize(base)
	if err != nil {
		return ports.CanonicalPath{}, values.Anchor{}, err
	}

	if cp.IsDir {
		return cp, values.Anchor{Root: cp.Path, Aliases: []string{cp.Given}}, nil
	}
	return cp, values.Anchor{
		Root:    filepath.Dir(cp.Path),
		Aliases: []string{filepath.Dir(cp.Given)},
	}, nil
}

func (uc *SelectFilesUseCase) compile(patterns []values.ResolvedPattern) ([]ports.Matcher, error) {
	matchers := make([]ports.Matcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := uc.compiler.Compile(p.Relative)
		if err != nil {
			return nil, &entities.PatternSyntaxError{Pattern: p.Raw, Cause: err}
		}
		if p.Directory {
			below, err := uc.compiler.Compile(p.Relative + "/**")
			if err != nil {
				return nil, &entities.PatternSyntaxError{Pattern: p.Raw, Cause: err}
			}
			m = anyMatcher{m, below}
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// anyMatcher matches when any of its matchers does.
type anyMatcher []ports.Matcher

func (a anyMatcher) Match(rel string) bool {
	return matchAny(a, rel)
}

func matchAny(matchers []ports.Matcher, rel string) bool {
	for _, m := range matchers {
		if m.Match(rel) {
			return true
		}
	}
	return false
}
