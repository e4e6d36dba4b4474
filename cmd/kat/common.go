package main

import (
	"fmt"
	"slices"

	"github.com/katcli/kat/internal/application/dto"
	"github.com/katcli/kat/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

var validFormats = []string{"text", "json", "yaml"}

// CommonOptions contains the presentation flags shared by every profile
// command.
type CommonOptions struct {
	// Output
	Mode   string
	Format string
	Where  string
	Viewer string

	// Flags (bools grouped for alignment)
	Strict   bool
	Relative bool
	Redact   bool
}

// DefaultCommonOptions returns defaults taken from configuration.
func DefaultCommonOptions(cfg *system.Config) CommonOptions {
	return CommonOptions{
		Mode:   string(dto.ModeContent),
		Format: cfg.Format,
		Strict: cfg.Strict,
		Redact: cfg.Redact,
	}
}

// RegisterFlags adds common flags to a cobra command.
func (opts *CommonOptions) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opts.Mode, "mode", opts.Mode,
		"What to print: content, paths, patterns")
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format,
		"Output format for paths and patterns: text, json, yaml")
	cmd.Flags().StringVar(&opts.Where, "where", "",
		"Keep only files matching an expression, e.g. \"ext == '.go' && size < 10000\"")
	cmd.Flags().StringVar(&opts.Viewer, "viewer", "",
		"Viewer for file contents: auto, builtin, or a program (default from config)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", opts.Strict,
		"Fail when an entry cannot be read")
	cmd.Flags().BoolVar(&opts.Relative, "relative", false,
		"Print paths relative to the starting directory")
	cmd.Flags().BoolVar(&opts.Redact, "redact", opts.Redact,
		"Mask secrets in file contents")
}

// ValidateFlags validates common options.
func (opts *CommonOptions) ValidateFlags() error {
	if _, err := dto.ParsePresentMode(opts.Mode); err != nil {
		return err
	}

	if !slices.Contains(validFormats, opts.Format) {
		return fmt.Errorf("invalid format: %s (valid: text, json, yaml)", opts.Format)
	}

	return nil
}

// PresentOptions converts the flags for the application layer.
func (opts *CommonOptions) PresentOptions() dto.PresentOptions {
	return dto.PresentOptions{
		Mode:     dto.PresentMode(opts.Mode),
		Format:   opts.Format,
		Where:    opts.Where,
		Strict:   opts.Strict,
		Relative: opts.Relative,
	}
}
