// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"
	"io"
	"io/fs"

	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/values"
)

// Matcher tests a slash-separated path, relative to the selection root,
// against one compiled glob.
type Matcher interface {
	Match(rel string) bool
}

// GlobCompiler turns slash patterns into matchers. The concrete glob engine
// lives behind this interface so it can be swapped without touching the
// selector.
type GlobCompiler interface {
	// Name identifies the engine ("doublestar", "gobwas").
	Name() string

	// Compile parses pattern into a Matcher.
	Compile(pattern string) (Matcher, error)

	// Validate reports a syntax error without building a matcher.
	Validate(pattern string) error
}

// VisitFunc is called once per regular file found by a TreeWalker.
// Returning an error stops the walk and is propagated to the caller.
type VisitFunc func(path string) error

// SkipFunc is told about every entry the walker could not read.
type SkipFunc func(err *entities.EntryAccessError)

// TreeWalker enumerates regular files reachable from a root.
type TreeWalker interface {
	Walk(ctx context.Context, root string, visit VisitFunc, onSkip SkipFunc) error
}

// CanonicalPath is a base path after resolution.
type CanonicalPath struct {
	// Path is absolute with symlinks resolved.
	Path string
	// Given is the absolute form of the path as supplied, before symlinks
	// were resolved.
	Given string
	// IsDir is false when the base names a single file.
	IsDir bool
}

// FileSystem is the read-only filesystem access the application needs
// outside of walking.
type FileSystem interface {
	// Canonicalize resolves path to an absolute, symlink-free path. Failure
	// is a *entities.PathNotFoundError.
	Canonicalize(path string) (CanonicalPath, error)

	// Stat returns file metadata.
	Stat(path string) (fs.FileInfo, error)
}

// Viewer renders one file's content.
type Viewer interface {
	// Name identifies the viewer in messages.
	Name() string

	// Render writes the file at path to stdout. Failure is a
	// *entities.ViewerInvocationError.
	Render(ctx context.Context, path string, stdout, stderr io.Writer) error
}

// Redactor masks secrets in rendered content.
type Redactor interface {
	// NewWriter returns a writer that redacts what it passes on to w.
	// Close flushes buffered data without closing w.
	NewWriter(w io.Writer) io.WriteCloser
}

// ProfileLoader loads profile definitions from storage.
//
// LoadDir returns every profile that loaded. A file that fails does not
// hide the others: its error is joined into the returned error, which
// names the file.
type ProfileLoader interface {
	LoadDir(ctx context.Context, dir string) ([]*entities.Profile, error)
}

// OutputFormatter renders presenter output.
type OutputFormatter interface {
	FormatSelection(result *execution.SelectionResult) error
	FormatPatterns(patterns values.PatternSet) error
	FormatProfiles(profiles []*entities.Profile) error
	FormatProfile(profile *entities.Profile) error
}

// FormatterOptions tunes formatter construction.
type FormatterOptions struct {
	// Relative prints paths relative to the selection root instead of
	// absolute ones.
	Relative bool
	// Indent pretty-prints structured formats.
	Indent bool
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}
