package services

import (
	"context"
	"log/slog"

	"github.com/katcli/kat/internal/application/dto"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/repositories"
)

// RunProfileUseCase looks up a profile, applies command-line overrides and
// hands the result to the presenter.
type RunProfileUseCase struct {
	profiles  repositories.ProfileRepository
	presenter *Presenter
	logger    *slog.Logger
}

// NewRunProfileUseCase creates a new run profile use case.
func NewRunProfileUseCase(
	profiles repositories.ProfileRepository,
	presenter *Presenter,
	logger *slog.Logger,
) *RunProfileUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &RunProfileUseCase{
		profiles:  profiles,
		presenter: presenter,
		logger:    logger,
	}
}

// Execute runs the named profile against req.Base. An unknown name returns
// *entities.ProfileNotFoundError.
func (uc *RunProfileUseCase) Execute(ctx context.Context, req dto.RunProfileRequest) (*dto.RunProfileResponse, error) {
	profile, err := uc.profiles.Get(ctx, req.ProfileName)
	if err != nil {
		return nil, err
	}

	profile = ApplyOverrides(profile, req.Overrides)

	base := req.Base
	if base == "" {
		base = "."
	}

	uc.logger.Debug("running profile",
		"profile", profile.Name,
		"base", base,
		"mode", req.Options.Mode)

	return uc.presenter.Present(ctx, dto.PresentRequest{
		Profile: profile.Name,
		Select: dto.SelectRequest{
			Base:    base,
			Include: profile.IncludedPaths,
			Exclude: profile.ExcludedPaths,
		},
		Options: req.Options,
	})
}

// ApplyOverrides returns a copy of p with every non-nil override list
// replacing the profile's own.
func ApplyOverrides(p *entities.Profile, o dto.ProfileOverrides) *entities.Profile {
	out := p.Clone()
	if o.IncludedPaths != nil {
		out.IncludedPaths = append([]string(nil), o.IncludedPaths...)
	}
	if o.ExcludedPaths != nil {
		out.ExcludedPaths = append([]string(nil), o.ExcludedPaths...)
	}
	if o.IncludedTypes != nil {
		out.IncludedTypes = append([]string(nil), o.IncludedTypes...)
	}
	if o.ExcludedTypes != nil {
		out.ExcludedTypes = append([]string(nil), o.ExcludedTypes...)
	}
	return out
}
