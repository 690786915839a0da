package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func regoPolicy(content string) *Policy {
	return NewDraftPolicy(CreatePolicyInput{
		Name:        "p",
		Kind:        KindRego,
		AccessModel: AccessModelZeroTrust,
		Content:     content,
		Namespace:   "production",
		Subjects:    []string{"spiffe://tetrate.io/ns/production/sa/checkout"},
		Resources:   []string{"inventory-service"},
		Actions:     []string{"GET"},
	}, "tester", time.Now().UTC())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		policy       func() *Policy
		wantPassed   bool
		wantErrors   []string
		wantWarnings []string
		wantScore    float32
	}{
		{
			name:         "complete rego policy",
			policy:       func() *Policy { return regoPolicy("package x\nallow if { true }") },
			wantPassed:   true,
			wantErrors:   []string{},
			wantWarnings: []string{},
			wantScore:    1.0,
		},
		{
			name:         "rego without package",
			policy:       func() *Policy { return regoPolicy("allow if { true }") },
			wantPassed:   false,
			wantErrors:   []string{MsgRegoNoPackage},
			wantWarnings: []string{},
			wantScore:    0.0,
		},
		{
			name:         "rego without rules only warns",
			policy:       func() *Policy { return regoPolicy("package x") },
			wantPassed:   true,
			wantErrors:   []string{},
			wantWarnings: []string{MsgRegoNoRules},
			wantScore:    0.8,
		},
		{
			name:         "empty content",
			policy:       func() *Policy { return regoPolicy("") },
			wantPassed:   false,
			wantErrors:   []string{MsgEmptyContent, MsgRegoNoPackage},
			wantWarnings: []string{MsgRegoNoRules},
			wantScore:    0.0,
		},
		{
			name: "no subjects or resources",
			policy: func() *Policy {
				p := regoPolicy("package x\ndeny if { true }")
				p.Subjects = []string{}
				p.Resources = nil
				return p
			},
			wantPassed:   true,
			wantErrors:   []string{},
			wantWarnings: []string{MsgNoSubjects, MsgNoResources},
			wantScore:    0.8,
		},
		{
			name: "cedar with permit",
			policy: func() *Policy {
				p := regoPolicy(`permit(principal, action, resource);`)
				p.Kind = KindCedar
				return p
			},
			wantPassed:   true,
			wantErrors:   []string{},
			wantWarnings: []string{},
			wantScore:    1.0,
		},
		{
			name: "cedar without permit or forbid",
			policy: func() *Policy {
				p := regoPolicy(`allow everything`)
				p.Kind = KindCedar
				return p
			},
			wantPassed:   false,
			wantErrors:   []string{MsgCedarNoPermitForbid},
			wantWarnings: []string{},
			wantScore:    0.0,
		},
		{
			name: "istio has no language rules",
			policy: func() *Policy {
				p := regoPolicy("apiVersion: security.istio.io/v1")
				p.Kind = KindIstioAuthz
				return p
			},
			wantPassed:   true,
			wantErrors:   []string{},
			wantWarnings: []string{},
			wantScore:    1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.policy())
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, tt.wantErrors, result.Errors)
			assert.Equal(t, tt.wantWarnings, result.Warnings)
			assert.Equal(t, tt.wantScore, result.CoverageScore)
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	p := regoPolicy("package x")
	before := p.Clone()

	Validate(p)

	assert.Equal(t, before, p)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusDraft.CanTransitionTo(StatusReview))
	assert.True(t, StatusDraft.CanTransitionTo(StatusActive))
	assert.True(t, StatusActive.CanTransitionTo(StatusDisabled))
	assert.True(t, StatusDisabled.CanTransitionTo(StatusActive))
	assert.True(t, StatusReview.CanTransitionTo(StatusArchived))
	assert.False(t, StatusActive.CanTransitionTo(StatusDraft))
	assert.False(t, StatusArchived.CanTransitionTo(StatusActive))
	assert.False(t, StatusArchived.CanTransitionTo(StatusArchived))
}

func TestEnums_Validate(t *testing.T) {
	for _, k := range Kinds {
		assert.NoError(t, k.Validate())
		assert.NotEqual(t, string(k), k.DisplayName())
	}
	for _, m := range AccessModels {
		assert.NoError(t, m.Validate())
		assert.NotEqual(t, string(m), m.DisplayName())
	}
	assert.Error(t, Kind("opa").Validate())
	assert.Error(t, AccessModel("mac").Validate())
	assert.Error(t, Status("deleted").Validate())
}
