package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundacoder/ZedID/internal/audit/domain"
)

func appendEvent(t *testing.T, repo *MemoryEventRepository, action string, decision domain.Decision) {
	t.Helper()
	require.NoError(t, repo.Append(context.Background(), &domain.Event{
		ID:        uuid.Must(uuid.NewV7()),
		Action:    action,
		Actor:     domain.DefaultActor,
		Decision:  decision,
		Timestamp: time.Now().UTC(),
	}))
}

func TestMemoryEventRepository_Recent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	for i := range 5 {
		appendEvent(t, repo, fmt.Sprintf("action-%d", i), domain.DecisionAllow)
	}

	t.Run("Success_MostRecentFirst", func(t *testing.T) {
		events, total, err := repo.Recent(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, events, 3)
		assert.Equal(t, "action-4", events[0].Action)
		assert.Equal(t, "action-3", events[1].Action)
		assert.Equal(t, "action-2", events[2].Action)
	})

	t.Run("Success_LimitLargerThanLedger", func(t *testing.T) {
		events, _, err := repo.Recent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, events, 5)
	})

	t.Run("Success_NonPositiveLimitReturnsAll", func(t *testing.T) {
		events, _, err := repo.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, events, 5)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		events, total, err := NewMemoryEventRepository().Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Zero(t, total)
	})
}

func TestMemoryEventRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	appendEvent(t, repo, "identity.create", domain.DecisionAllow)
	appendEvent(t, repo, "policy.evaluate", domain.DecisionDeny)
	appendEvent(t, repo, "policy.evaluate", domain.DecisionAllow)
	appendEvent(t, repo, "policy.generate", domain.DecisionError)

	stats, err := repo.Stats(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalEvents)
	assert.Equal(t, 2, stats.AllowCount)
	assert.Equal(t, 1, stats.DenyCount)
	assert.Equal(t, 1, stats.ErrorCount)
	assert.Equal(t, []string{"policy.generate", "policy.evaluate"}, stats.RecentActions)
	assert.Equal(t, stats.TotalEvents, stats.AllowCount+stats.DenyCount+stats.ErrorCount)
}

func TestMemoryEventRepository_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryEventRepository()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, &domain.Event{
				ID:       uuid.Must(uuid.NewV7()),
				Action:   "policy.evaluate",
				Decision: domain.DecisionAllow,
			}))
			_, err := repo.Stats(ctx, 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := repo.Stats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.TotalEvents)
	assert.Equal(t, 100, stats.AllowCount)

	seen := 0
	require.NoError(t, repo.Each(ctx, func(*domain.Event) { seen++ }))
	assert.Equal(t, 100, seen)
}
