// Package filesystem provides the filesystem adapters: the tree walker and
// path canonicalization.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/values"
)

// Ensure interface compliance
var _ ports.TreeWalker = (*Walker)(nil)

// Walker enumerates regular files beneath a root.
//
// Directory symlinks are never descended, so traversal cannot loop. A file
// symlink is yielded under its own path when it resolves to a regular file
// inside the root; links leading elsewhere, and broken links, are dropped.
// Entries that cannot be read are reported through the skip callback and
// the walk carries on.
type Walker struct {
	logger  *slog.Logger
	walkDir func(root string, fn fs.WalkDirFunc) error
}

// NewWalker creates a walker.
func NewWalker(logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{logger: logger, walkDir: filepath.WalkDir}
}

// Walk implements ports.TreeWalker. root should already be canonical. When
// root is a file, visit is called for it alone.
func (w *Walker) Walk(ctx context.Context, root string, visit ports.VisitFunc, onSkip ports.SkipFunc) error {
	skip := func(path string, err error) {
		w.logger.Debug("skipping unreadable entry", "path", path, "error", err)
		if onSkip != nil {
			onSkip(&entities.EntryAccessError{Path: path, Cause: err})
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		skip(root, err)
		return nil
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return visit(root)
		}
		return nil
	}

	return w.walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Reported either for an entry that vanished/can't be stat'ed,
			// or a second time for a directory whose listing failed.
			skip(path, err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if w.linkedFileInside(root, path) {
				return visit(path)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return visit(path)
	})
}

// linkedFileInside reports whether the symlink at path resolves to a
// regular file at or below root.
func (w *Walker) linkedFileInside(root, path string) bool {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("cannot resolve symlink", "path", path, "error", err)
		}
		return false
	}
	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return values.HasPathPrefix(target, root)
}
