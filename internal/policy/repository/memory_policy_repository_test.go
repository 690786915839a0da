package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundacoder/ZedID/internal/policy/domain"
)

func newPolicy(name, namespace string) *domain.Policy {
	return domain.NewDraftPolicy(domain.CreatePolicyInput{
		Name:        name,
		Kind:        domain.KindRego,
		AccessModel: domain.AccessModelRBAC,
		Content:     "package x\nallow if { true }",
		Namespace:   namespace,
		Subjects:    []string{"role:viewer"},
	}, "tester", time.Now().UTC())
}

func TestMemoryPolicyRepository_AddGetList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPolicyRepository()

	a := newPolicy("a", "production")
	b := newPolicy("b", "staging")
	c := newPolicy("c", "production")
	for _, p := range []*domain.Policy{a, b, c} {
		require.NoError(t, repo.Add(ctx, p))
	}

	t.Run("Success_GetReturnsCopy", func(t *testing.T) {
		got, err := repo.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)

		got.Subjects[0] = "mutated"
		again, err := repo.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "role:viewer", again.Subjects[0])
	})

	t.Run("Success_ListAllInOrder", func(t *testing.T) {
		policies, err := repo.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, policies, 3)
		assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{policies[0].ID, policies[1].ID, policies[2].ID})
	})

	t.Run("Success_ListByNamespace", func(t *testing.T) {
		policies, err := repo.List(ctx, "production")
		require.NoError(t, err)
		require.Len(t, policies, 2)
		assert.Equal(t, a.ID, policies[0].ID)
		assert.Equal(t, c.ID, policies[1].ID)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		assert.ErrorIs(t, repo.Add(ctx, a), domain.ErrPolicyAlreadyExists)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrPolicyNotFound)
	})
}

func TestMemoryPolicyRepository_Seed(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPolicyRepository()
	seed := domain.DemoPolicies("tetrate.io", time.Now().UTC())

	require.NoError(t, repo.Seed(ctx, seed))
	require.NoError(t, repo.Seed(ctx, seed))

	policies, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, policies, 3)
}

func TestMemoryPolicyRepository_Applicable(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPolicyRepository()
	require.NoError(t, repo.Seed(ctx, domain.DemoPolicies("tetrate.io", time.Now().UTC())))
	require.NoError(t, repo.Add(ctx, newPolicy("draft", "production")))

	policies, err := repo.Applicable(ctx, "production")
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "checkout-reads-inventory", policies[0].Name)
	assert.Equal(t, "admin-full-access", policies[1].Name)
}

func allowTransition(*domain.Policy) error { return nil }

func TestMemoryPolicyRepository_Transition(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPolicyRepository()
	p := newPolicy("a", "production")
	require.NoError(t, repo.Add(ctx, p))

	t.Run("Success", func(t *testing.T) {
		before, updated, err := repo.Transition(ctx, p.ID, domain.StatusActive, allowTransition)
		require.NoError(t, err)
		assert.Equal(t, p.Status, before.Status)
		assert.Equal(t, domain.StatusActive, updated.Status)
		assert.Equal(t, uint32(2), updated.Version)
		assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
		assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	})

	t.Run("Success_SetValidation", func(t *testing.T) {
		updated, err := repo.SetValidation(ctx, p.ID, true)
		require.NoError(t, err)
		assert.True(t, updated.ValidationPassed)
		assert.Equal(t, uint32(3), updated.Version)
	})

	t.Run("Error_GuardRejects", func(t *testing.T) {
		rejected := errors.New("rejected")
		before, updated, err := repo.Transition(ctx, p.ID, domain.StatusDisabled, func(current *domain.Policy) error {
			assert.Equal(t, domain.StatusActive, current.Status)
			return rejected
		})
		assert.ErrorIs(t, err, rejected)
		assert.Nil(t, updated)
		require.NotNil(t, before)
		assert.Equal(t, domain.StatusActive, before.Status)

		stored, err := repo.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusActive, stored.Status)
		assert.Equal(t, uint32(3), stored.Version)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		before, _, err := repo.Transition(ctx, uuid.Must(uuid.NewV7()), domain.StatusActive, allowTransition)
		assert.ErrorIs(t, err, domain.ErrPolicyNotFound)
		assert.Nil(t, before)
	})
}

func TestMemoryPolicyRepository_TransitionArchivedStaysArchived(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPolicyRepository()
	target := newPolicy("target", "production")
	require.NoError(t, repo.Add(ctx, target))

	guard := func(current *domain.Policy) error {
		if !current.Status.CanTransitionTo(domain.StatusActive) {
			return domain.ErrPolicyArchived
		}
		return nil
	}

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i == 50 {
				_, _, err := repo.Transition(ctx, target.ID, domain.StatusArchived, allowTransition)
				assert.NoError(t, err)
				return
			}
			_, _, _ = repo.Transition(ctx, target.ID, domain.StatusActive, guard)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusArchived, got.Status)
}

func TestMemoryPolicyRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPolicyRepository()
	target := newPolicy("target", "production")
	require.NoError(t, repo.Add(ctx, target))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Add(ctx, newPolicy(fmt.Sprintf("p-%d", i), "production")))
		}()
		go func() {
			defer wg.Done()
			_, _, err := repo.Transition(ctx, target.ID, domain.StatusActive, allowTransition)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := repo.Applicable(ctx, "production")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	policies, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, policies, 51)

	got, err := repo.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(51), got.Version)
}
