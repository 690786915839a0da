// Package domain defines the append-only audit ledger model.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/errors"
)

// Decision is the outcome recorded for an audited action.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
	DecisionError Decision = "error"
)

// Validate reports whether d is a known decision.
func (d Decision) Validate() error {
	switch d {
	case DecisionAllow, DecisionDeny, DecisionError:
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unknown audit decision %q", string(d))
	}
}

// DefaultActor is recorded when the request carries no actor.
const DefaultActor = "zedid-api"

// Event is an immutable ledger entry. IdentityID is uuid.Nil when the action
// cannot be attributed to a registered identity.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	IdentityID uuid.UUID      `json:"identity_id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	Resource   string         `json:"resource"`
	Decision   Decision       `json:"decision"`
	Reason     *string        `json:"reason,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Metadata   map[string]any `json:"metadata"`
	Signature  []byte         `json:"-"`
}

// RecordInput describes an action to append to the ledger.
type RecordInput struct {
	IdentityID uuid.UUID
	Action     string
	Resource   string
	Decision   Decision
	Reason     string
	Metadata   map[string]any
}

// Stats summarizes the ledger.
type Stats struct {
	TotalEvents   int      `json:"total_events"`
	AllowCount    int      `json:"allow_count"`
	DenyCount     int      `json:"deny_count"`
	ErrorCount    int      `json:"error_count"`
	RecentActions []string `json:"recent_actions"`
}

// VerifyReport is the result of checking every event signature.
type VerifyReport struct {
	Total      int         `json:"total"`
	Valid      int         `json:"valid"`
	Invalid    int         `json:"invalid"`
	InvalidIDs []uuid.UUID `json:"invalid_ids"`
}

// ErrSignatureInvalid indicates an event does not match its signature.
var ErrSignatureInvalid = errors.Wrap(errors.ErrConflict, "audit event signature invalid")

type ctxKey int

const (
	actorKey ctxKey = iota
	requestIDKey
)

// WithActor returns a context carrying the actor recorded on audit events.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the actor stored by WithActor, or DefaultActor.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}

// WithRequestID returns a context carrying the HTTP request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok && requestID != ""
}
