// Package repositories defines interfaces for domain persistence.
package repositories

import (
	"context"

	"github.com/katcli/kat/internal/domain/entities"
)

// ProfileRepository is the profile store: a name to profile mapping.
// Implementations hand out copies; callers never mutate stored profiles.
type ProfileRepository interface {
	// Get returns the named profile or a *entities.ProfileNotFoundError.
	Get(ctx context.Context, name string) (*entities.Profile, error)

	// List returns every profile sorted by name.
	List(ctx context.Context) ([]*entities.Profile, error)
}
