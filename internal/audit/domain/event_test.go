package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sundacoder/ZedID/internal/errors"
)

func TestDecision_Validate(t *testing.T) {
	for _, d := range []Decision{DecisionAllow, DecisionDeny, DecisionError} {
		assert.NoError(t, d.Validate())
	}
	assert.True(t, errors.Is(Decision("maybe").Validate(), errors.ErrInvalidInput))
}

func TestActorFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultActor, ActorFromContext(ctx))
	assert.Equal(t, DefaultActor, ActorFromContext(WithActor(ctx, "")))
	assert.Equal(t, "alice.chen", ActorFromContext(WithActor(ctx, "alice.chen")))
}

func TestRequestIDFromContext(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)

	requestID, ok := RequestIDFromContext(WithRequestID(context.Background(), "req-1"))
	assert.True(t, ok)
	assert.Equal(t, "req-1", requestID)
}
