// Package config loads profile definitions from YAML files.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	apperrors "github.com/katcli/kat/internal/application/errors"
	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/entities"
	"golang.org/x/sync/errgroup"
)

// Ensure interface compliance
var _ ports.ProfileLoader = (*ProfileLoader)(nil)

var profileExtensions = map[string]bool{
	".yml":  true,
	".yaml": true,
}

// ProfileLoader reads every profile file in a directory.
//
// Only *.yml and *.yaml regular files directly inside the directory are
// considered. A profile is named after its file stem, so rust.yaml defines
// the profile "rust". Each document is checked against the embedded JSON
// Schema before it is decoded.
type ProfileLoader struct {
	logger      *slog.Logger
	concurrency int
}

// NewProfileLoader creates a new profile loader.
func NewProfileLoader(logger *slog.Logger) *ProfileLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileLoader{
		logger:      logger,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// LoadDir loads all profiles in dir, sorted by name. Files that cannot be
// loaded are skipped and reported together in the returned error; the
// profiles that did load are returned alongside it.
// An unreadable directory or a cancelled ctx returns no profiles.
func (l *ProfileLoader) LoadDir(ctx context.Context, dir string) ([]*entities.Profile, error) {
	// Security: Use os.OpenRoot so profile files cannot escape dir
	root, err := os.OpenRoot(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewConfigurationError("profiles", fmt.Sprintf("profiles directory not found: %s", dir), err)
		}
		return nil, apperrors.NewConfigurationError("profiles", fmt.Sprintf("cannot open profiles directory: %s", dir), err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	names, problems, err := l.profileFiles(root)
	if err != nil {
		return nil, apperrors.NewConfigurationError("profiles", fmt.Sprintf("cannot list profiles directory: %s", dir), err)
	}

	profiles := make([]*entities.Profile, len(names))
	fileErrs := make([]error, len(names))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			p, err := l.loadFile(root, name)
			if err != nil {
				fileErrs[i] = fmt.Errorf("loading profile %s: %w", filepath.Join(dir, name), err)
				return nil
			}
			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles = slices.DeleteFunc(profiles, func(p *entities.Profile) bool { return p == nil })
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	for _, err := range fileErrs {
		if err != nil {
			problems = append(problems, err)
		}
	}

	l.logger.Debug("loaded profiles", "dir", dir, "count", len(profiles), "failed", len(problems))
	return profiles, errors.Join(problems...)
}

// profileFiles lists candidate file names. When two files share a stem the
// first in directory order wins and the other is reported as a problem.
func (l *ProfileLoader) profileFiles(root *os.Root) ([]string, []error, error) {
	entries, err := fs.ReadDir(root.FS(), ".")
	if err != nil {
		return nil, nil, err
	}

	var names []string
	var problems []error
	byStem := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !profileExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		// Stat follows symlinks but stays inside root.
		info, err := root.Stat(name)
		if err != nil || !info.Mode().IsRegular() {
			l.logger.Debug("ignoring profile candidate", "file", name, "error", err)
			continue
		}

		stem := ProfileName(name)
		if other, ok := byStem[stem]; ok {
			problems = append(problems, fmt.Errorf("duplicate profile %q defined by %s and %s", stem, other, name))
			continue
		}
		byStem[stem] = name
		names = append(names, name)
	}
	return names, problems, nil
}

func (l *ProfileLoader) loadFile(root *os.Root, name string) (*entities.Profile, error) {
	file, err := root.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return l.LoadProfileFromReader(file, ProfileName(name))
}

// LoadProfileFromReader parses, schema-checks and validates one profile
// document, naming it name.
func (l *ProfileLoader) LoadProfileFromReader(r io.Reader, name string) (*entities.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode profile YAML: %w", err)
	}

	violations, err := validateDocument(doc)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidationError(name, strings.Join(violations, "; "), violations...)
	}

	var profile entities.Profile
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile YAML: %w", err)
	}
	profile.Name = name

	if err := profile.Validate(); err != nil {
		return nil, apperrors.NewValidationError(name, err.Error())
	}
	return &profile, nil
}

// ProfileName derives a profile name from a file name.
func ProfileName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
