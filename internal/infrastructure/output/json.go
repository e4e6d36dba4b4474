package output

import (
	"encoding/json"
	"io"

	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/values"
)

// JSONFormatter formats presenter output as JSON.
type JSONFormatter struct {
	writer   io.Writer
	indent   bool
	relative bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent, relative bool) *JSONFormatter {
	return &JSONFormatter{
		writer:   w,
		indent:   indent,
		relative: relative,
	}
}

// FormatSelection writes the selected files.
func (f *JSONFormatter) FormatSelection(result *execution.SelectionResult) error {
	return f.write(newSelectionDocument(result, f.relative))
}

// FormatPatterns writes the resolved patterns.
func (f *JSONFormatter) FormatPatterns(patterns values.PatternSet) error {
	return f.write(newPatternsDocument(patterns))
}

// FormatProfiles writes a profile list.
func (f *JSONFormatter) FormatProfiles(profiles []*entities.Profile) error {
	return f.write(newProfileDocuments(profiles))
}

// FormatProfile writes a single profile.
func (f *JSONFormatter) FormatProfile(profile *entities.Profile) error {
	return f.write(newProfileDocument(profile))
}

func (f *JSONFormatter) write(v any) error {
	var data []byte
	var err error

	if f.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = f.writer.Write(data)
	if err != nil {
		return err
	}

	// Add newline for better terminal output
	_, err = f.writer.Write([]byte("\n"))
	return err
}
