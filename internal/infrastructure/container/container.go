// Package container provides dependency injection for the application.
package container

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/application/services"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/infrastructure/config"
	"github.com/katcli/kat/internal/infrastructure/filesystem"
	"github.com/katcli/kat/internal/infrastructure/globs"
	"github.com/katcli/kat/internal/infrastructure/output"
	"github.com/katcli/kat/internal/infrastructure/persistence/memory"
	"github.com/katcli/kat/internal/infrastructure/redaction"
	"github.com/katcli/kat/internal/infrastructure/system"
	"github.com/katcli/kat/internal/infrastructure/viewer"
)

// Container holds all application dependencies.
type Container struct {
	cfg            *system.Config
	profiles       *memory.ProfileRepository
	profileLoadErr error
	fileSystem     ports.FileSystem
	compiler       ports.GlobCompiler
	selectFiles    *services.SelectFilesUseCase
	formatters     ports.OutputFormatterFactory
	viewers        *viewer.Factory
	catalog        *services.ProfileCatalog
	logger         *slog.Logger

	// built on first use; the gitleaks rule set is costly to compile
	redactor func() (*redaction.Redactor, error)
}

// Options configure the container.
type Options struct {
	Logger *slog.Logger
	// Config is the loaded configuration. Nil means system.DefaultConfig.
	Config *system.Config
	// ProfileLoader overrides the YAML loader, mainly for tests.
	ProfileLoader ports.ProfileLoader
	// Viewers overrides the viewer factory, mainly for tests.
	Viewers *viewer.Factory
}

// ViewOptions configure one presentation.
type ViewOptions struct {
	// Viewer and ViewerArgs override the configured viewer when Viewer is
	// not empty.
	Viewer     string
	ViewerArgs []string

	// Redact masks secrets in rendered content. It also turns off
	// content colouring so that secrets are not split by escape codes.
	Redact bool

	Stdout io.Writer
	Stderr io.Writer
}

// New creates a new dependency injection container and loads profiles.
//
// Profile loading problems do not fail construction. They are logged at
// Warn and kept for ProfileLoadError, and every profile that did load is
// registered, so one broken file does not hide its siblings.
func New(ctx context.Context, opts Options) (*Container, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config == nil {
		opts.Config = system.DefaultConfig()
	}
	if opts.ProfileLoader == nil {
		opts.ProfileLoader = config.NewProfileLoader(opts.Logger)
	}
	if opts.Viewers == nil {
		opts.Viewers = viewer.NewFactory()
	}

	compiler, err := globs.New(opts.Config.GlobEngine)
	if err != nil {
		return nil, err
	}

	profiles := memory.NewProfileRepository()
	loaded, loadErr := opts.ProfileLoader.LoadDir(ctx, opts.Config.ProfilesDir)
	if loadErr != nil {
		opts.Logger.Warn("some profiles could not be loaded",
			"dir", opts.Config.ProfilesDir, "loaded", len(loaded), "error", loadErr)
	}
	for _, p := range loaded {
		if err := profiles.Add(p); err != nil {
			return nil, fmt.Errorf("registering profile: %w", err)
		}
	}

	fileSystem := filesystem.NewOS()
	formatters := output.NewFormatterFactory()

	selectFiles := services.NewSelectFilesUseCase(
		fileSystem,
		filesystem.NewWalker(opts.Logger),
		compiler,
		opts.Logger,
	)

	return &Container{
		cfg:            opts.Config,
		profiles:       profiles,
		profileLoadErr: loadErr,
		fileSystem:     fileSystem,
		compiler:       compiler,
		selectFiles:    selectFiles,
		formatters:     formatters,
		viewers:        opts.Viewers,
		catalog:        services.NewProfileCatalog(profiles, formatters),
		logger:         opts.Logger,
		redactor: sync.OnceValues(func() (*redaction.Redactor, error) {
			return redaction.New(redaction.Config{Patterns: opts.Config.RedactPatterns})
		}),
	}, nil
}

// Config returns the configuration the container was built with.
func (c *Container) Config() *system.Config {
	return c.cfg
}

// Logger returns the application logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Profiles returns every loaded profile sorted by name.
func (c *Container) Profiles(ctx context.Context) []*entities.Profile {
	profiles, _ := c.profiles.List(ctx) // in-memory List cannot fail
	return profiles
}

// ProfileLoadError is the error met while loading profiles, if any.
func (c *Container) ProfileLoadError() error {
	return c.profileLoadErr
}

// SelectFiles returns the selection use case.
func (c *Container) SelectFiles() *services.SelectFilesUseCase {
	return c.selectFiles
}

// ProfileCatalog returns the profile query service.
func (c *Container) ProfileCatalog() *services.ProfileCatalog {
	return c.catalog
}

// Viewer builds the viewer for opts, falling back to the configured one.
func (c *Container) Viewer(opts ViewOptions) ports.Viewer {
	name, args := c.cfg.Viewer, c.cfg.ViewerArgs
	if opts.Viewer != "" {
		name, args = opts.Viewer, opts.ViewerArgs
	}
	colorTarget := opts.Stdout
	if opts.Redact {
		colorTarget = nil
	}
	return c.viewers.Create(name, args, colorTarget)
}

// RunProfileUseCase wires a run-profile use case writing to opts' streams.
func (c *Container) RunProfileUseCase(opts ViewOptions) (*services.RunProfileUseCase, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	presenterOpts := services.PresenterOptions{
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
		Color:  !color.NoColor && viewer.ColorFor(opts.Stdout),
	}
	if opts.Redact {
		r, err := c.redactor()
		if err != nil {
			return nil, fmt.Errorf("initializing redaction: %w", err)
		}
		presenterOpts.Redactor = r
	}

	presenter := services.NewPresenter(
		c.selectFiles,
		c.formatters,
		c.Viewer(opts),
		c.fileSystem,
		presenterOpts,
		c.logger,
	)
	return services.NewRunProfileUseCase(c.profiles, presenter, c.logger), nil
}
