// Package system provides infrastructure for system-level configuration.
// This covers the kat config file ($XDG_CONFIG_HOME/kat/config.yaml) and
// its KAT_* environment overrides.
package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	apperrors "github.com/katcli/kat/internal/application/errors"
	"github.com/katcli/kat/internal/infrastructure/globs"
	"github.com/katcli/kat/internal/infrastructure/output"
	"github.com/katcli/kat/internal/infrastructure/redaction"
	"github.com/katcli/kat/internal/infrastructure/viewer"
	"github.com/spf13/viper"
)

// Config keys, shared with the CLI flag bindings.
const (
	KeyProfilesDir = "profiles_dir"
	KeyViewer      = "viewer"
	KeyViewerArgs  = "viewer_args"
	KeyGlobEngine  = "glob_engine"
	KeyFormat      = "format"
	KeyStrict      = "strict"
	KeyRedact      = "redact"
	KeyRedactRules = "redact_patterns"

	// EnvPrefix namespaces environment overrides (KAT_PROFILES_DIR, ...).
	EnvPrefix = "KAT"

	appName        = "kat"
	configFileName = "config"
)

// Config represents the kat configuration file.
type Config struct {
	// ProfilesDir holds the *.yml / *.yaml profile files.
	ProfilesDir string `mapstructure:"profiles_dir" yaml:"profiles_dir"`

	// Viewer is "auto", "builtin", or a program name.
	Viewer     string   `mapstructure:"viewer" yaml:"viewer"`
	ViewerArgs []string `mapstructure:"viewer_args" yaml:"viewer_args"`

	GlobEngine string `mapstructure:"glob_engine" yaml:"glob_engine"`
	Format     string `mapstructure:"format" yaml:"format"`
	Strict     bool   `mapstructure:"strict" yaml:"strict"`

	// Redact masks secrets in file contents. RedactPatterns are extra
	// regular expressions on top of the gitleaks rules.
	Redact         bool     `mapstructure:"redact" yaml:"redact"`
	RedactPatterns []string `mapstructure:"redact_patterns" yaml:"redact_patterns"`
}

// ConfigDir returns the kat configuration directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// DefaultConfigPath returns the config file used when none is given.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName+".yaml")
}

// DefaultConfig returns a Config with defaults for all fields.
// This is used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ProfilesDir: ConfigDir(),
		Viewer:      viewer.AutoName,
		ViewerArgs:  []string{},
		GlobEngine:  globs.EngineDoublestar,
		Format:      "text",
		Strict:      false,

		Redact:         false,
		RedactPatterns: []string{},
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.ProfilesDir) == "" {
		problems = append(problems, "profiles_dir cannot be empty")
	}
	if strings.TrimSpace(c.Viewer) == "" {
		problems = append(problems, "viewer cannot be empty")
	}
	if !slices.Contains(globs.Engines(), c.GlobEngine) {
		problems = append(problems, fmt.Sprintf("glob_engine %q is not one of %v", c.GlobEngine, globs.Engines()))
	}
	if formats := output.NewFormatterFactory().SupportedFormats(); !slices.Contains(formats, c.Format) {
		problems = append(problems, fmt.Sprintf("format %q is not one of %v", c.Format, formats))
	}

	if err := redaction.ValidatePatterns(c.RedactPatterns); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError("config", strings.Join(problems, "; "), problems...)
	}
	return nil
}

// ConfigLoader loads configuration through viper, layering defaults, the
// config file, KAT_* environment variables and any bound flags.
type ConfigLoader struct {
	v *viper.Viper
}

// NewConfigLoader creates a loader backed by its own viper instance.
func NewConfigLoader() *ConfigLoader {
	return NewConfigLoaderWithViper(viper.New())
}

// NewConfigLoaderWithViper creates a loader around v, so callers can bind
// flags to it first.
func NewConfigLoaderWithViper(v *viper.Viper) *ConfigLoader {
	return &ConfigLoader{v: v}
}

// Viper exposes the underlying instance for flag binding.
func (l *ConfigLoader) Viper() *viper.Viper {
	return l.v
}

// ConfigFileUsed returns the file that was read, or "".
func (l *ConfigLoader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Load reads configuration. An empty path means DefaultConfigPath. A
// missing file is not an error; defaults and environment still apply.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	defaults := DefaultConfig()
	l.v.SetDefault(KeyProfilesDir, defaults.ProfilesDir)
	l.v.SetDefault(KeyViewer, defaults.Viewer)
	l.v.SetDefault(KeyViewerArgs, defaults.ViewerArgs)
	l.v.SetDefault(KeyGlobEngine, defaults.GlobEngine)
	l.v.SetDefault(KeyFormat, defaults.Format)
	l.v.SetDefault(KeyStrict, defaults.Strict)
	l.v.SetDefault(KeyRedact, defaults.Redact)
	l.v.SetDefault(KeyRedactRules, defaults.RedactPatterns)

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	l.v.AutomaticEnv()

	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		l.v.SetConfigFile(path)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			return nil, apperrors.NewConfigurationError("config", fmt.Sprintf("failed to read config file %s", path), err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewConfigurationError("config", fmt.Sprintf("cannot access config file %s", path), err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigurationError("config", "failed to parse configuration", err)
	}
	cfg.ProfilesDir = expandHome(cfg.ProfilesDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	return filepath.Join(xdg.Home, strings.TrimPrefix(path, "~"))
}
