package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundacoder/ZedID/internal/audit/domain"
)

func newEvent() *domain.Event {
	reason := "Identity created: checkout (workload)"
	return &domain.Event{
		ID:         uuid.Must(uuid.NewV7()),
		IdentityID: uuid.Must(uuid.NewV7()),
		Action:     "identity.create",
		Actor:      domain.DefaultActor,
		Resource:   "identity/checkout",
		Decision:   domain.DecisionAllow,
		Reason:     &reason,
		Timestamp:  time.Now().UTC(),
		Metadata:   map[string]any{"request_id": "req-1", "namespace": "production"},
	}
}

func TestSigner_SignAndVerify(t *testing.T) {
	signer, err := NewSigner([]byte("audit-key"))
	require.NoError(t, err)

	event := newEvent()
	signature, err := signer.Sign(event)
	require.NoError(t, err)
	assert.Len(t, signature, 32)

	event.Signature = signature
	assert.NoError(t, signer.Verify(event))
}

func TestSigner_DetectsTampering(t *testing.T) {
	signer, err := NewSigner([]byte("audit-key"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*domain.Event)
	}{
		{name: "Error_Action", mutate: func(e *domain.Event) { e.Action = "identity.delete" }},
		{name: "Error_Decision", mutate: func(e *domain.Event) { e.Decision = domain.DecisionDeny }},
		{name: "Error_Reason", mutate: func(e *domain.Event) { e.Reason = nil }},
		{name: "Error_Metadata", mutate: func(e *domain.Event) { e.Metadata["namespace"] = "system" }},
		{name: "Error_Timestamp", mutate: func(e *domain.Event) { e.Timestamp = e.Timestamp.Add(time.Nanosecond) }},
		{name: "Error_Identity", mutate: func(e *domain.Event) { e.IdentityID = uuid.Nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := newEvent()
			signature, err := signer.Sign(event)
			require.NoError(t, err)
			event.Signature = signature

			tt.mutate(event)
			assert.ErrorIs(t, signer.Verify(event), domain.ErrSignatureInvalid)
		})
	}
}

func TestSigner_DifferentKeys(t *testing.T) {
	a, err := NewSigner([]byte("key-a"))
	require.NoError(t, err)
	b, err := NewSigner([]byte("key-b"))
	require.NoError(t, err)

	event := newEvent()
	event.Signature, err = a.Sign(event)
	require.NoError(t, err)

	assert.ErrorIs(t, b.Verify(event), domain.ErrSignatureInvalid)
}

func TestSigner_Deterministic(t *testing.T) {
	signer, err := NewSigner([]byte("audit-key"))
	require.NoError(t, err)

	event := newEvent()
	first, err := signer.Sign(event)
	require.NoError(t, err)
	second, err := signer.Sign(event)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewSigner_EmptyKey(t *testing.T) {
	signer, err := NewSigner(nil)
	assert.Nil(t, signer)
	assert.Error(t, err)
}
