// Package repository implements the in-process identity registry storage.
package repository

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/errors"
	"github.com/sundacoder/ZedID/internal/identity/domain"
)

// ErrIdentityAlreadyExists indicates Create was called with an id already present.
var ErrIdentityAlreadyExists = errors.Wrap(errors.ErrConflict, "identity already exists")

// MemoryIdentityRepository keeps identities in insertion order. Callers always
// receive copies, so mutations happen only through the repository methods.
type MemoryIdentityRepository struct {
	mu         sync.RWMutex
	order      []uuid.UUID
	byID       map[uuid.UUID]*domain.Identity
	bySpiffeID map[string]uuid.UUID
}

// NewMemoryIdentityRepository creates an empty repository.
func NewMemoryIdentityRepository() *MemoryIdentityRepository {
	return &MemoryIdentityRepository{
		byID:       make(map[uuid.UUID]*domain.Identity),
		bySpiffeID: make(map[string]uuid.UUID),
	}
}

func cloneIdentity(identity *domain.Identity) *domain.Identity {
	clone := *identity
	clone.Labels = maps.Clone(identity.Labels)
	if identity.SpiffeID != nil {
		v := *identity.SpiffeID
		clone.SpiffeID = &v
	}
	if identity.Email != nil {
		v := *identity.Email
		clone.Email = &v
	}
	if identity.SvidExpiry != nil {
		v := *identity.SvidExpiry
		clone.SvidExpiry = &v
	}
	return &clone
}

// Create stores identity.
func (r *MemoryIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[identity.ID]; ok {
		return ErrIdentityAlreadyExists
	}

	stored := cloneIdentity(identity)
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	if stored.SpiffeID != nil {
		r.bySpiffeID[*stored.SpiffeID] = stored.ID
	}
	return nil
}

// Get returns the identity with id or domain.ErrIdentityNotFound.
func (r *MemoryIdentityRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(identity), nil
}

// GetBySpiffeID returns the identity owning uri or domain.ErrIdentityNotFound.
func (r *MemoryIdentityRepository) GetBySpiffeID(ctx context.Context, uri string) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySpiffeID[uri]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(r.byID[id]), nil
}

// List returns all identities in insertion order.
func (r *MemoryIdentityRepository) List(ctx context.Context) ([]*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identities := make([]*domain.Identity, 0, len(r.order))
	for _, id := range r.order {
		identities = append(identities, cloneIdentity(r.byID[id]))
	}
	return identities, nil
}

// SetActive flips the active flag and returns the updated identity.
func (r *MemoryIdentityRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Identity, error) {
	return r.update(id, func(identity *domain.Identity) {
		identity.IsActive = active
	})
}

// SetTrustLevel changes the trust level and returns the updated identity.
func (r *MemoryIdentityRepository) SetTrustLevel(
	ctx context.Context,
	id uuid.UUID,
	level domain.TrustLevel,
) (*domain.Identity, error) {
	return r.update(id, func(identity *domain.Identity) {
		identity.TrustLevel = level
	})
}

func (r *MemoryIdentityRepository) update(id uuid.UUID, mutate func(*domain.Identity)) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	mutate(identity)
	return cloneIdentity(identity), nil
}
