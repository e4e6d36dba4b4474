// Package output provides the formatters used for path, pattern and
// profile listings.
package output

import (
	"fmt"
	"io"

	"github.com/katcli/kat/internal/application/ports"
)

// Ensure interface compliance
var (
	_ ports.OutputFormatterFactory = (*FormatterFactory)(nil)
	_ ports.OutputFormatter        = (*TextFormatter)(nil)
	_ ports.OutputFormatter        = (*JSONFormatter)(nil)
	_ ports.OutputFormatter        = (*YAMLFormatter)(nil)
)

// FormatterFactory implements ports.OutputFormatterFactory.
type FormatterFactory struct{}

// NewFormatterFactory creates a new formatter factory.
func NewFormatterFactory() *FormatterFactory {
	return &FormatterFactory{}
}

// Create returns a formatter for the given format name. The empty name
// selects text.
func (f *FormatterFactory) Create(
	format string,
	writer io.Writer,
	options ports.FormatterOptions,
) (ports.OutputFormatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(writer, options.Relative), nil
	case "json":
		return NewJSONFormatter(writer, options.Indent, options.Relative), nil
	case "yaml":
		return NewYAMLFormatter(writer, options.Relative), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, f.SupportedFormats(),
		)
	}
}

// SupportedFormats returns list of available format names.
func (f *FormatterFactory) SupportedFormats() []string {
	return []string{"text", "json", "yaml"}
}
