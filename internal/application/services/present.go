package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/katcli/kat/internal/application/dto"
	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/services"
	"github.com/katcli/kat/internal/domain/values"
)

// PresenterOptions configures where the presenter writes.
type PresenterOptions struct {
	Stdout io.Writer
	Stderr io.Writer

	// Color styles the content headers.
	Color bool

	// Redactor, when set, scrubs viewer output. Headers are not redacted.
	Redactor ports.Redactor
}

// Presenter runs a selection and emits it in the requested mode: file
// contents through the viewer, the selected paths, or the resolved
// patterns.
type Presenter struct {
	selector   *SelectFilesUseCase
	formatters ports.OutputFormatterFactory
	viewer     ports.Viewer
	redactor   ports.Redactor
	fs         ports.FileSystem
	stdout     io.Writer
	stderr     io.Writer
	header     *color.Color
	logger     *slog.Logger
}

// NewPresenter creates a new presenter.
func NewPresenter(
	selector *SelectFilesUseCase,
	formatters ports.OutputFormatterFactory,
	viewer ports.Viewer,
	fs ports.FileSystem,
	opts PresenterOptions,
	logger *slog.Logger,
) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	header := color.New(color.FgCyan, color.Bold)
	if opts.Color {
		header.EnableColor()
	} else {
		header.DisableColor()
	}

	return &Presenter{
		selector:   selector,
		formatters: formatters,
		viewer:     viewer,
		redactor:   opts.Redactor,
		fs:         fs,
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		header:     header,
		logger:     logger,
	}
}

// Present executes req. The --where expression and the output format are
// checked before anything is walked.
func (p *Presenter) Present(ctx context.Context, req dto.PresentRequest) (*dto.RunProfileResponse, error) {
	startTime := time.Now()

	mode := req.Options.Mode
	if mode == "" {
		mode = dto.ModeContent
	}

	filter, err := services.CompileFileFilter(req.Options.Where)
	if err != nil {
		return nil, err
	}

	formatter, err := p.formatters.Create(req.Options.Format, p.stdout, ports.FormatterOptions{
		Relative: req.Options.Relative,
		Indent:   true,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.RunProfileResponse{}

	patterns, err := p.selector.ResolvePatterns(ctx, req.Select.Base, req.Select.Include, req.Select.Exclude)
	if err != nil {
		return nil, err
	}
	resp.Patterns = patterns

	if mode == dto.ModePatterns {
		if err := formatter.FormatPatterns(patterns); err != nil {
			return nil, fmt.Errorf("failed to format patterns: %w", err)
		}
		return p.finish(resp, startTime), nil
	}

	selectReq := req.Select
	selectReq.Strict = selectReq.Strict || req.Options.Strict

	selection, err := p.selector.Select(ctx, selectReq)
	if err != nil {
		return nil, err
	}
	selection.Profile = req.Profile

	if filter != nil {
		selection, err = p.applyFilter(selection, filter)
		if err != nil {
			return nil, err
		}
	}
	resp.Selection = selection

	switch mode {
	case dto.ModePaths:
		if err := formatter.FormatSelection(selection); err != nil {
			return nil, fmt.Errorf("failed to format selection: %w", err)
		}
	case dto.ModeContent:
		rendered, err := p.render(ctx, selection, req.Options.Relative)
		resp.Rendered = rendered
		if err != nil {
			return resp, err
		}
	default:
		return nil, fmt.Errorf("unsupported mode: %s", mode)
	}

	return p.finish(resp, startTime), nil
}

// render streams every file through the viewer, stopping at the first
// failure.
func (p *Presenter) render(ctx context.Context, selection *execution.SelectionResult, relative bool) (int, error) {
	shown := selection.Files
	if relative {
		shown = selection.Relative()
	}

	for i, file := range selection.Files {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := p.header.Fprintf(p.stdout, "--- %s ---\n", shown[i]); err != nil {
			return i, err
		}
		if err := p.renderFile(ctx, file); err != nil {
			p.logger.Debug("viewer failed", "viewer", p.viewer.Name(), "path", file, "error", err)
			return i, err
		}
	}
	return len(selection.Files), nil
}

func (p *Presenter) renderFile(ctx context.Context, path string) error {
	if p.redactor == nil {
		return p.viewer.Render(ctx, path, p.stdout, p.stderr)
	}

	out := p.redactor.NewWriter(p.stdout)
	err := p.viewer.Render(ctx, path, out, p.stderr)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

// applyFilter keeps the files the --where expression accepts.
func (p *Presenter) applyFilter(selection *execution.SelectionResult, filter *services.FileFilter) (*execution.SelectionResult, error) {
	var filterErr error
	filtered := selection.Filter(func(path string) bool {
		if filterErr != nil {
			return false
		}
		env, err := p.fileEnv(selection.Root, path)
		if err != nil {
			filterErr = err
			return false
		}
		keep, err := filter.Keep(env)
		if err != nil {
			filterErr = err
			return false
		}
		return keep
	})
	if filterErr != nil {
		return nil, filterErr
	}

	p.logger.Debug("where filter applied",
		"expression", filter.Source(),
		"before", selection.Len(),
		"after", filtered.Len())
	return filtered, nil
}

func (p *Presenter) fileEnv(root, path string) (services.FileEnv, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		return services.FileEnv{}, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	rel, ok := values.RelativeSlash(root, path)
	if !ok {
		rel = path
	}
	return services.FileEnv{
		Path: path,
		Rel:  rel,
		Name: filepath.Base(path),
		Ext:  filepath.Ext(path),
		Dir:  filepath.Dir(path),
		Size: info.Size(),
	}, nil
}

func (p *Presenter) finish(resp *dto.RunProfileResponse, startTime time.Time) *dto.RunProfileResponse {
	resp.Metadata = dto.ResponseMetadata{
		ProcessedAt: time.Now(),
		Duration:    time.Since(startTime),
	}
	return resp
}
