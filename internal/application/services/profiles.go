package services

import (
	"context"
	"io"

	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/repositories"
)

// ProfileCatalog answers the "profiles list" and "profiles show" queries.
type ProfileCatalog struct {
	profiles   repositories.ProfileRepository
	formatters ports.OutputFormatterFactory
}

// NewProfileCatalog creates a new catalog.
func NewProfileCatalog(profiles repositories.ProfileRepository, formatters ports.OutputFormatterFactory) *ProfileCatalog {
	return &ProfileCatalog{profiles: profiles, formatters: formatters}
}

// List writes every profile, sorted by name, in format.
func (c *ProfileCatalog) List(ctx context.Context, format string, w io.Writer) error {
	formatter, err := c.formatters.Create(format, w, ports.FormatterOptions{Indent: true})
	if err != nil {
		return err
	}
	profiles, err := c.profiles.List(ctx)
	if err != nil {
		return err
	}
	return formatter.FormatProfiles(profiles)
}

// Show writes one profile in format.
func (c *ProfileCatalog) Show(ctx context.Context, name, format string, w io.Writer) error {
	formatter, err := c.formatters.Create(format, w, ports.FormatterOptions{Indent: true})
	if err != nil {
		return err
	}
	profile, err := c.profiles.Get(ctx, name)
	if err != nil {
		return err
	}
	return formatter.FormatProfile(profile)
}
