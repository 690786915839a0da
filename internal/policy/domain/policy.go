// Package domain defines policies, their validation rules, decision matching
// and the prompt contract of AI policy generation.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Policy is a declarative access rule document. Policies are never deleted.
type Policy struct {
	ID                    uuid.UUID   `json:"id"`
	Name                  string      `json:"name"`
	Description           string      `json:"description"`
	Kind                  Kind        `json:"kind"`
	AccessModel           AccessModel `json:"access_model"`
	Status                Status      `json:"status"`
	Content               string      `json:"content"`
	Explanation           string      `json:"explanation"`
	NaturalLanguageIntent *string     `json:"natural_language_intent"`
	Namespace             string      `json:"namespace"`
	Subjects              []string    `json:"subjects"`
	Resources             []string    `json:"resources"`
	Actions               []string    `json:"actions"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
	CreatedBy             string      `json:"created_by"`
	Version               uint32      `json:"version"`
	Tags                  []string    `json:"tags"`
	AIGenerated           bool        `json:"ai_generated"`
	AIModelUsed           *string     `json:"ai_model_used"`
	ValidationPassed      bool        `json:"validation_passed"`
}

// Clone returns a deep copy of p.
func (p *Policy) Clone() *Policy {
	clone := *p
	clone.Subjects = slices.Clone(p.Subjects)
	clone.Resources = slices.Clone(p.Resources)
	clone.Actions = slices.Clone(p.Actions)
	clone.Tags = slices.Clone(p.Tags)
	if p.NaturalLanguageIntent != nil {
		v := *p.NaturalLanguageIntent
		clone.NaturalLanguageIntent = &v
	}
	if p.AIModelUsed != nil {
		v := *p.AIModelUsed
		clone.AIModelUsed = &v
	}
	return &clone
}

// CreatePolicyInput is a policy submitted directly rather than generated.
type CreatePolicyInput struct {
	Name                  string
	Description           string
	Kind                  Kind
	AccessModel           AccessModel
	Content               string
	Explanation           string
	NaturalLanguageIntent *string
	Namespace             string
	Subjects              []string
	Resources             []string
	Actions               []string
	Tags                  []string
}

// NewDraftPolicy builds a version 1 Draft policy from input.
func NewDraftPolicy(input CreatePolicyInput, createdBy string, now time.Time) *Policy {
	return &Policy{
		ID:                    uuid.Must(uuid.NewV7()),
		Name:                  input.Name,
		Description:           input.Description,
		Kind:                  input.Kind,
		AccessModel:           input.AccessModel,
		Status:                StatusDraft,
		Content:               input.Content,
		Explanation:           input.Explanation,
		NaturalLanguageIntent: input.NaturalLanguageIntent,
		Namespace:             input.Namespace,
		Subjects:              nonNil(input.Subjects),
		Resources:             nonNil(input.Resources),
		Actions:               nonNil(input.Actions),
		CreatedAt:             now,
		UpdatedAt:             now,
		CreatedBy:             createdBy,
		Version:               1,
		Tags:                  nonNil(input.Tags),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
