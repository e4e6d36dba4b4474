package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	apperrors "github.com/katcli/kat/internal/application/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const rustProfile = `
about: Rust sources
included_paths:
  - "**/*.rs"
  - Cargo.toml
excluded_paths:
  - target/**
included_types: [rs]
excluded_types: []
`

func TestLoadProfileFromReader_Valid(t *testing.T) {
	loader := NewProfileLoader(nil)
	profile, err := loader.LoadProfileFromReader(strings.NewReader(rustProfile), "rust")

	require.NoError(t, err)
	assert.Equal(t, "rust", profile.Name)
	assert.Equal(t, "Rust sources", profile.About)
	assert.Equal(t, []string{"**/*.rs", "Cargo.toml"}, profile.IncludedPaths)
	assert.Equal(t, []string{"target/**"}, profile.ExcludedPaths)
	assert.Equal(t, []string{"rs"}, profile.IncludedTypes)
	assert.Empty(t, profile.ExcludedTypes)
}

func TestLoadProfileFromReader_InvalidYAML(t *testing.T) {
	loader := NewProfileLoader(nil)
	_, err := loader.LoadProfileFromReader(strings.NewReader(`invalid yaml: [[[`), "broken")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestLoadProfileFromReader_SchemaViolations(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		errContains string
	}{
		{
			name:        "empty document",
			yaml:        "",
			errContains: "(root)",
		},
		{
			name:        "missing included_paths",
			yaml:        "about: nothing\n",
			errContains: "included_paths",
		},
		{
			name:        "unknown key",
			yaml:        "included_paths: ['*.go']\nincluded_path: ['*.rs']\n",
			errContains: "included_path",
		},
		{
			name:        "wrong type",
			yaml:        "included_paths: '*.go'\n",
			errContains: "/included_paths",
		},
		{
			name:        "empty pattern",
			yaml:        "included_paths: ['']\n",
			errContains: "/included_paths/0",
		},
	}

	loader := NewProfileLoader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadProfileFromReader(strings.NewReader(tt.yaml), "bad")

			require.Error(t, err)
			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "bad", validationErr.Field)
			assert.NotEmpty(t, validationErr.Details)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadProfileFromReader_EntityValidation(t *testing.T) {
	loader := NewProfileLoader(nil)

	_, err := loader.LoadProfileFromReader(strings.NewReader("included_paths: ['*.go']\n"), "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")

	_, err = loader.LoadProfileFromReader(strings.NewReader("included_paths: ['   ']\n"), "blank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "included_paths[0] is blank")
}

func TestProfileLoader_LoadDir(t *testing.T) {
	dir := writeProfiles(t, map[string]string{
		"rust.yaml":  rustProfile,
		"go.yml":     "about: Go\nincluded_paths: ['**/*.go']\n",
		"README.md":  "not a profile",
		"notes.txt":  "about: ignored\n",
		"python.YML": "about: Python\nincluded_paths: ['**/*.py']\n",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	profiles, err := NewProfileLoader(nil).LoadDir(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "go", profiles[0].Name)
	assert.Equal(t, "python", profiles[1].Name)
	assert.Equal(t, "rust", profiles[2].Name)
	assert.Equal(t, "Rust sources", profiles[2].About)
}

func TestProfileLoader_LoadDir_Empty(t *testing.T) {
	profiles, err := NewProfileLoader(nil).LoadDir(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestProfileLoader_LoadDir_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "kat")
	_, err := NewProfileLoader(nil).LoadDir(context.Background(), missing)

	require.Error(t, err)
	var configErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), "profiles directory not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProfileLoader_LoadDir_DuplicateStem(t *testing.T) {
	dir := writeProfiles(t, map[string]string{
		"go.yml":  "included_paths: ['**/*.go']\n",
		"go.yaml": "included_paths: ['*.go']\n",
	})

	profiles, err := NewProfileLoader(nil).LoadDir(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate profile "go" defined by go.yaml and go.yml`)
	require.Len(t, profiles, 1)
	assert.Equal(t, []string{"*.go"}, profiles[0].IncludedPaths)
}

func TestProfileLoader_LoadDir_InvalidFileKeepsOthers(t *testing.T) {
	dir := writeProfiles(t, map[string]string{
		"go.yml":     "included_paths: ['**/*.go']\n",
		"bad.yml":    "included_paths: 42\n",
		"broken.yml": "about: [unterminated\n",
		"rust.yml":   rustProfile,
	})

	profiles, err := NewProfileLoader(nil).LoadDir(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(dir, "bad.yml"))
	assert.Contains(t, err.Error(), filepath.Join(dir, "broken.yml"))
	require.Len(t, profiles, 2)
	assert.Equal(t, "go", profiles[0].Name)
	assert.Equal(t, "rust", profiles[1].Name)
}

func TestProfileLoader_LoadDir_SymlinkInsideDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	dir := writeProfiles(t, map[string]string{
		"go.yml": "included_paths: ['**/*.go']\n",
	})
	require.NoError(t, os.Symlink("go.yml", filepath.Join(dir, "golang.yml")))

	profiles, err := NewProfileLoader(nil).LoadDir(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "go", profiles[0].Name)
	assert.Equal(t, "golang", profiles[1].Name)
}

func TestProfileLoader_LoadDir_Cancelled(t *testing.T) {
	dir := writeProfiles(t, map[string]string{
		"go.yml": "included_paths: ['**/*.go']\n",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProfileLoader(nil).LoadDir(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProfileName(t *testing.T) {
	assert.Equal(t, "rust", ProfileName("rust.yaml"))
	assert.Equal(t, "go", ProfileName(filepath.Join("a", "b", "go.yml")))
	assert.Equal(t, "my.profile", ProfileName("my.profile.yaml"))
}

func TestProfileSchema_IsCopy(t *testing.T) {
	schema := ProfileSchema()
	require.NotEmpty(t, schema)
	schema[0] = 'x'
	assert.NotEqual(t, schema[0], ProfileSchema()[0])
}
