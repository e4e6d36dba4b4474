package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoot = filepath.FromSlash("/work/project")

// createTestResult creates a sample selection result for testing.
func createTestResult() *execution.SelectionResult {
	result := execution.NewSelectionResult(testRoot, testRoot)
	result.Profile = "rust"
	result.Files = []string{
		filepath.Join(testRoot, "a.rs"),
		filepath.Join(testRoot, "sub", "b.rs"),
	}
	result.Skipped = []*entities.EntryAccessError{
		{Path: filepath.Join(testRoot, "locked"), Cause: errors.New("permission denied")},
	}
	result.Walked = 5
	result.Duration = 1500 * time.Microsecond
	return result
}

func createTestPatterns() values.PatternSet {
	return values.PatternSet{
		Root: testRoot,
		Include: []values.ResolvedPattern{
			{Raw: "**/*.rs", Relative: "**/*.rs", Anchored: testRoot + "/**/*.rs"},
			{Raw: "/elsewhere/*.rs", Relative: "/elsewhere/*.rs", Anchored: "/elsewhere/*.rs", Outside: true},
		},
	}
}

func createTestProfiles() []*entities.Profile {
	return []*entities.Profile{
		{Name: "go", About: "Go sources", IncludedPaths: []string{"**/*.go"}, ExcludedPaths: []string{"vendor/**"}},
		{Name: "rust", About: "Rust sources", IncludedPaths: []string{"**/*.rs"}, IncludedTypes: []string{"rs"}},
	}
}

func TestTextFormatter_Selection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		relative bool
		want     string
	}{
		{
			name: "absolute",
			want: filepath.Join(testRoot, "a.rs") + "\n" + filepath.Join(testRoot, "sub", "b.rs") + "\n",
		},
		{
			name:     "relative",
			relative: true,
			want:     "a.rs\nsub/b.rs\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, NewTextFormatter(&buf, tt.relative).FormatSelection(createTestResult()))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTextFormatter_EmptySelection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf, false).FormatSelection(execution.NewSelectionResult(testRoot, testRoot)))
	assert.Empty(t, buf.String())
}

func TestTextFormatter_Patterns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf, false).FormatPatterns(createTestPatterns()))

	want := "include:\n" +
		"  " + testRoot + "/**/*.rs\n" +
		"  /elsewhere/*.rs (outside root)\n" +
		"exclude:\n"
	assert.Equal(t, want, buf.String())
}

func TestTextFormatter_Profiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf, false).FormatProfiles(createTestProfiles()))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "NAME")
	assert.Contains(t, string(lines[1]), "go")
	assert.Contains(t, string(lines[1]), "Go sources")
	assert.Contains(t, string(lines[2]), "rust")

	buf.Reset()
	require.NoError(t, NewTextFormatter(&buf, false).FormatProfiles(nil))
	assert.Equal(t, "No profiles found.\n", buf.String())
}

func TestTextFormatter_Profile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf, false).FormatProfile(createTestProfiles()[0]))

	out := buf.String()
	assert.Contains(t, out, "Name:  go\n")
	assert.Contains(t, out, "Included paths:\n  - **/*.go\n")
	assert.Contains(t, out, "Excluded paths:\n  - vendor/**\n")
	assert.Contains(t, out, "Included types: (none)\n")
}

func TestJSONFormatter_Selection(t *testing.T) {
	t.Parallel()

	result := createTestResult()
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true, true).FormatSelection(result))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, result.RunID.String(), doc["run_id"])
	assert.Equal(t, "rust", doc["profile"])
	assert.Equal(t, []interface{}{"a.rs", "sub/b.rs"}, doc["files"])
	assert.Equal(t, []interface{}{filepath.Join(testRoot, "locked")}, doc["skipped"])
	assert.Equal(t, float64(5), doc["walked"])
	assert.Equal(t, "1.5ms", doc["duration"])
	assert.Contains(t, buf.String(), "\n  \"", "indented output")
}

func TestJSONFormatter_EmptyListsAreArrays(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := NewJSONFormatter(&buf, false, false)

	result := execution.NewSelectionResult(testRoot, testRoot)
	result.Files = nil
	require.NoError(t, f.FormatSelection(result))
	assert.Contains(t, buf.String(), `"files":[]`)
	assert.NotContains(t, buf.String(), "skipped")

	buf.Reset()
	require.NoError(t, f.FormatPatterns(values.PatternSet{Root: testRoot}))
	assert.Contains(t, buf.String(), `"include":[]`)
	assert.Contains(t, buf.String(), `"exclude":[]`)
}

func TestJSONFormatter_Profiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, false, false).FormatProfiles(createTestProfiles()))

	var docs []profileDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "go", docs[0].Name)
	assert.Equal(t, []string{"vendor/**"}, docs[0].ExcludedPaths)
	assert.Equal(t, []string{}, docs[0].IncludedTypes)
}

func TestYAMLFormatter_Patterns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf, false).FormatPatterns(createTestPatterns()))

	var doc patternsDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, testRoot, doc.Root)
	require.Len(t, doc.Include, 2)
	assert.Equal(t, "**/*.rs", doc.Include[0].Relative)
	assert.True(t, doc.Include[1].Outside)
	assert.Empty(t, doc.Exclude)
}

func TestYAMLFormatter_Profile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf, false).FormatProfile(createTestProfiles()[1]))

	out := buf.String()
	assert.Contains(t, out, "name: rust")
	assert.Contains(t, out, "about: Rust sources")

	var doc profileDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, []string{"**/*.rs"}, doc.IncludedPaths)
	assert.Equal(t, []string{"rs"}, doc.IncludedTypes)
}

func TestYAMLFormatter_Selection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf, true).FormatSelection(createTestResult()))

	var doc selectionDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, []string{"a.rs", "sub/b.rs"}, doc.Files)
	assert.Equal(t, "rust", doc.Profile)
}
