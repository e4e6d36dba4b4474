// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/domain/repositories"
)

// Ensure interface compliance
var _ repositories.ProfileRepository = (*ProfileRepository)(nil)

// ProfileRepository is an in-memory implementation of ProfileRepository.
// It is what the CLI loads profile files into, and what tests use to run
// selections against synthetic profiles.
type ProfileRepository struct {
	profiles map[string]*entities.Profile
	mu       sync.RWMutex
}

// NewProfileRepository creates a repository seeded with profiles.
func NewProfileRepository(profiles ...*entities.Profile) *ProfileRepository {
	r := &ProfileRepository{
		profiles: make(map[string]*entities.Profile, len(profiles)),
	}
	for _, p := range profiles {
		r.profiles[p.Name] = p.Clone()
	}
	return r
}

// Add stores a validated copy of p. Adding a name twice is an error.
func (r *ProfileRepository) Add(p *entities.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile %q: %w", p.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.Name]; exists {
		return fmt.Errorf("duplicate profile: %q", p.Name)
	}
	r.profiles[p.Name] = p.Clone()
	return nil
}

// Get retrieves a profile by name.
func (r *ProfileRepository) Get(_ context.Context, name string) (*entities.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return nil, &entities.ProfileNotFoundError{Name: name}
	}
	return p.Clone(), nil
}

// List returns all profiles sorted by name.
func (r *ProfileRepository) List(_ context.Context) ([]*entities.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

// Len returns the number of stored profiles.
func (r *ProfileRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}
