package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/values"
)

// YAMLFormatter formats presenter output as YAML.
type YAMLFormatter struct {
	writer   io.Writer
	relative bool
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer, relative bool) *YAMLFormatter {
	return &YAMLFormatter{writer: w, relative: relative}
}

// FormatSelection writes the selected files.
func (f *YAMLFormatter) FormatSelection(result *execution.SelectionResult) error {
	return f.encode(newSelectionDocument(result, f.relative))
}

// FormatPatterns writes the resolved patterns.
func (f *YAMLFormatter) FormatPatterns(patterns values.PatternSet) error {
	return f.encode(newPatternsDocument(patterns))
}

// FormatProfiles writes a profile list.
func (f *YAMLFormatter) FormatProfiles(profiles []*entities.Profile) error {
	return f.encode(newProfileDocuments(profiles))
}

// FormatProfile writes a single profile.
func (f *YAMLFormatter) FormatProfile(profile *entities.Profile) error {
	return f.encode(newProfileDocument(profile))
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}
