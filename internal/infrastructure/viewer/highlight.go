package viewer

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/mattn/go-isatty"
)

// Ensure interface compliance
var _ ports.Viewer = (*HighlightViewer)(nil)

const (
	// BuiltinName selects the in-process highlighter.
	BuiltinName = "builtin"

	defaultStyle     = "monokai"
	defaultFormatter = "terminal256"
)

// HighlightViewer renders files in-process. Output is syntax highlighted
// when color is enabled, and copied verbatim otherwise.
type HighlightViewer struct {
	style string
	color bool
}

// NewHighlightViewer creates a builtin viewer. color forces highlighting on
// or off; use ColorFor to derive it from the destination.
func NewHighlightViewer(style string, color bool) *HighlightViewer {
	if style == "" {
		style = defaultStyle
	}
	return &HighlightViewer{style: style, color: color}
}

// ColorFor reports whether w is a terminal.
func ColorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Name returns BuiltinName.
func (v *HighlightViewer) Name() string {
	return BuiltinName
}

// Render writes the file to stdout.
func (v *HighlightViewer) Render(_ context.Context, path string, stdout, _ io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return v.fail(path, err)
	}

	if !v.color {
		if _, err := stdout.Write(data); err != nil {
			return v.fail(path, err)
		}
		return nil
	}

	if err := quick.Highlight(stdout, string(data), lexerName(path), defaultFormatter, v.style); err != nil {
		return v.fail(path, err)
	}
	return nil
}

func (v *HighlightViewer) fail(path string, err error) error {
	return &entities.ViewerInvocationError{
		Viewer:   BuiltinName,
		Path:     path,
		ExitCode: -1,
		Cause:    err,
	}
}

// lexerName picks a lexer from the file name, falling back to plain text.
func lexerName(path string) string {
	if l := lexers.Match(filepath.Base(path)); l != nil {
		return l.Config().Name
	}
	return lexers.Fallback.Config().Name
}
