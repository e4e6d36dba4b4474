// Package viewer provides the content renderers used by the presenter.
package viewer

import (
	"io"
	"os/exec"
	"strings"

	"github.com/katcli/kat/internal/application/ports"
)

const (
	// AutoName picks bat when installed and cat otherwise.
	AutoName = "auto"

	batCommand = "bat"
	catCommand = "cat"
)

// LookPathFunc resolves a program on $PATH.
type LookPathFunc func(file string) (string, error)

// Factory builds viewers from configuration values.
type Factory struct {
	lookPath LookPathFunc
}

// NewFactory creates a factory using exec.LookPath.
func NewFactory() *Factory {
	return &Factory{lookPath: exec.LookPath}
}

// NewFactoryWithLookPath creates a factory with a custom program lookup.
func NewFactoryWithLookPath(lookPath LookPathFunc) *Factory {
	return &Factory{lookPath: lookPath}
}

// Create returns the viewer named by name. The empty name means auto.
// stdout is only consulted by the builtin viewer, to decide on color.
func (f *Factory) Create(name string, args []string, stdout io.Writer) ports.Viewer {
	switch strings.TrimSpace(name) {
	case "", AutoName:
		if _, err := f.lookPath(batCommand); err == nil {
			return NewExecViewer(batCommand, args...)
		}
		return NewExecViewer(catCommand, args...)
	case BuiltinName:
		return NewHighlightViewer("", ColorFor(stdout))
	default:
		return NewExecViewer(strings.TrimSpace(name), args...)
	}
}
