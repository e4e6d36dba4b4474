package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/values"
)

// TextFormatter writes line-oriented plain text suitable for piping.
type TextFormatter struct {
	writer   io.Writer
	relative bool
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(w io.Writer, relative bool) *TextFormatter {
	return &TextFormatter{writer: w, relative: relative}
}

// FormatSelection prints one path per line.
func (f *TextFormatter) FormatSelection(result *execution.SelectionResult) error {
	files := result.Files
	if f.relative {
		files = result.Relative()
	}
	for _, file := range files {
		if _, err := fmt.Fprintln(f.writer, file); err != nil {
			return err
		}
	}
	return nil
}

// FormatPatterns prints the anchored include and exclude patterns. Patterns
// that could not be rebased onto the root are marked.
func (f *TextFormatter) FormatPatterns(patterns values.PatternSet) error {
	var b strings.Builder
	writeSection(&b, "include", patterns.Include)
	writeSection(&b, "exclude", patterns.Exclude)
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func writeSection(b *strings.Builder, title string, patterns []values.ResolvedPattern) {
	fmt.Fprintf(b, "%s:\n", title)
	for _, p := range patterns {
		if p.Outside {
			fmt.Fprintf(b, "  %s (outside root)\n", p.Anchored)
			continue
		}
		fmt.Fprintf(b, "  %s\n", p.Anchored)
	}
}

// FormatProfiles prints a name/description table.
//
//nolint:errcheck // flushed below
func (f *TextFormatter) FormatProfiles(profiles []*entities.Profile) error {
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(f.writer, "No profiles found.")
		return err
	}

	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tABOUT")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.About)
	}
	return tw.Flush()
}

// FormatProfile prints every field of one profile.
func (f *TextFormatter) FormatProfile(p *entities.Profile) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:  %s\n", p.Name)
	fmt.Fprintf(&b, "About: %s\n", p.About)
	writeList(&b, "Included paths", p.IncludedPaths)
	writeList(&b, "Excluded paths", p.ExcludedPaths)
	writeList(&b, "Included types", p.IncludedTypes)
	writeList(&b, "Excluded types", p.ExcludedTypes)
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: (none)\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}
