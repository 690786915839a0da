// Package repository implements the in-process audit ledger.
package repository

import (
	"context"
	"sync"

	"github.com/sundacoder/ZedID/internal/audit/domain"
)

// MemoryEventRepository is an append-only ledger. Decision counts are kept
// incrementally so Stats does not scan the ledger.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events []*domain.Event
	counts map[domain.Decision]int
}

// NewMemoryEventRepository creates an empty ledger.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{counts: make(map[domain.Decision]int)}
}

// Append adds event to the end of the ledger.
func (r *MemoryEventRepository) Append(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	r.counts[event.Decision]++
	return nil
}

// Recent returns up to limit events, most recent first, plus the ledger size.
// limit <= 0 returns every event.
func (r *MemoryEventRepository) Recent(ctx context.Context, limit int) ([]*domain.Event, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.events)
	if limit <= 0 || limit > total {
		limit = total
	}

	events := make([]*domain.Event, 0, limit)
	for i := total - 1; i >= total-limit; i-- {
		events = append(events, r.events[i])
	}
	return events, total, nil
}

// Stats returns the per-decision counts and the actions of the most recent events.
func (r *MemoryEventRepository) Stats(ctx context.Context, recent int) (*domain.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.events)
	n := min(max(recent, 0), total)

	actions := make([]string, 0, n)
	for i := total - 1; i >= total-n; i-- {
		actions = append(actions, r.events[i].Action)
	}

	return &domain.Stats{
		TotalEvents:   total,
		AllowCount:    r.counts[domain.DecisionAllow],
		DenyCount:     r.counts[domain.DecisionDeny],
		ErrorCount:    r.counts[domain.DecisionError],
		RecentActions: actions,
	}, nil
}

// Each calls fn for every event in ledger order while holding the read lock.
func (r *MemoryEventRepository) Each(ctx context.Context, fn func(*domain.Event)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, event := range r.events {
		fn(event)
	}
	return nil
}
