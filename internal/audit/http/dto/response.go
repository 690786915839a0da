// Package dto provides the response bodies of the audit API.
package dto

import (
	"time"

	"github.com/sundacoder/ZedID/internal/audit/domain"
)

// AuditEventResponse represents an audit event in API responses.
type AuditEventResponse struct {
	ID         string          `json:"id"`
	IdentityID string          `json:"identity_id"`
	Action     string          `json:"action"`
	Actor      string          `json:"actor"`
	Resource   string          `json:"resource"`
	Decision   domain.Decision `json:"decision"`
	Reason     *string         `json:"reason"`
	Timestamp  time.Time       `json:"timestamp"`
	Metadata   map[string]any  `json:"metadata"`
}

// MapEventToResponse converts a domain event to an API response.
func MapEventToResponse(event *domain.Event) AuditEventResponse {
	return AuditEventResponse{
		ID:         event.ID.String(),
		IdentityID: event.IdentityID.String(),
		Action:     event.Action,
		Actor:      event.Actor,
		Resource:   event.Resource,
		Decision:   event.Decision,
		Reason:     event.Reason,
		Timestamp:  event.Timestamp,
		Metadata:   event.Metadata,
	}
}

// ListEventsResponse holds the most recent events and the ledger size.
type ListEventsResponse struct {
	Events []AuditEventResponse `json:"events"`
	Total  int                  `json:"total"`
}

// MapEventsToListResponse converts domain events to a list API response.
func MapEventsToListResponse(events []*domain.Event, total int) ListEventsResponse {
	responses := make([]AuditEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, MapEventToResponse(event))
	}
	return ListEventsResponse{Events: responses, Total: total}
}
