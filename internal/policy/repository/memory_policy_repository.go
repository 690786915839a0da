// Package repository implements the in-process policy store.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/policy/domain"
)

// MemoryPolicyRepository keeps policies in insertion order, which is also the
// order decisions consider them in. Callers always receive copies.
type MemoryPolicyRepository struct {
	mu       sync.RWMutex
	policies []*domain.Policy
	index    map[uuid.UUID]int
}

// NewMemoryPolicyRepository creates an empty repository.
func NewMemoryPolicyRepository() *MemoryPolicyRepository {
	return &MemoryPolicyRepository{index: make(map[uuid.UUID]int)}
}

// Seed appends policies, skipping ids already present.
func (r *MemoryPolicyRepository) Seed(ctx context.Context, policies []*domain.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range policies {
		if _, ok := r.index[p.ID]; ok {
			continue
		}
		r.insert(p)
	}
	return nil
}

func (r *MemoryPolicyRepository) insert(p *domain.Policy) {
	r.index[p.ID] = len(r.policies)
	r.policies = append(r.policies, p.Clone())
}

// Add stores policy as given. The caller assigns id and timestamps.
func (r *MemoryPolicyRepository) Add(ctx context.Context, policy *domain.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[policy.ID]; ok {
		return domain.ErrPolicyAlreadyExists
	}
	r.insert(policy)
	return nil
}

// Get returns the policy with id or domain.ErrPolicyNotFound.
func (r *MemoryPolicyRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}
	return r.policies[i].Clone(), nil
}

// List returns policies in store order, restricted to namespace when it is non-empty.
func (r *MemoryPolicyRepository) List(ctx context.Context, namespace string) ([]*domain.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	policies := make([]*domain.Policy, 0, len(r.policies))
	for _, p := range r.policies {
		if namespace != "" && p.Namespace != namespace {
			continue
		}
		policies = append(policies, p.Clone())
	}
	return policies, nil
}

// Applicable returns the policies taking part in decisions for namespace, in store order.
func (r *MemoryPolicyRepository) Applicable(ctx context.Context, namespace string) ([]*domain.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	policies := make([]*domain.Policy, 0)
	for _, p := range r.policies {
		if domain.Applicable(p, namespace) {
			policies = append(policies, p.Clone())
		}
	}
	return policies, nil
}

// Transition moves the policy to status next when guard accepts the stored
// policy. The guard runs under the write lock, so no other status change can
// land between the check and the write. before is the policy as the guard saw
// it and is returned whenever the policy exists, also when guard fails.
func (r *MemoryPolicyRepository) Transition(
	ctx context.Context,
	id uuid.UUID,
	next domain.Status,
	guard func(current *domain.Policy) error,
) (before, after *domain.Policy, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil, domain.ErrPolicyNotFound
	}
	p := r.policies[i]
	before = p.Clone()
	if guardErr := guard(before); guardErr != nil {
		return before, nil, guardErr
	}

	p.Status = next
	touch(p)
	return before, p.Clone(), nil
}

// SetValidation records a validation outcome, bumping UpdatedAt and Version.
func (r *MemoryPolicyRepository) SetValidation(ctx context.Context, id uuid.UUID, passed bool) (*domain.Policy, error) {
	return r.update(id, func(p *domain.Policy) {
		p.ValidationPassed = passed
	})
}

func (r *MemoryPolicyRepository) update(id uuid.UUID, mutate func(*domain.Policy)) (*domain.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}
	p := r.policies[i]
	mutate(p)
	touch(p)
	return p.Clone(), nil
}

func touch(p *domain.Policy) {
	p.UpdatedAt = time.Now().UTC()
	p.Version++
}
