package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("WithHints", func(t *testing.T) {
		prompt := BuildPrompt(&GenerateInput{
			Intent:      "Allow checkout to read inventory",
			Kind:        KindCedar,
			AccessModel: AccessModelABAC,
			Namespace:   "production",
			Subjects:    []string{"a", "b"},
			Actions:     []string{"GET"},
		})

		assert.Contains(t, prompt, "Generate a AWS Cedar policy using the Attribute-Based Access Control (ABAC) model.")
		assert.Contains(t, prompt, "SECURITY INTENT:\nAllow checkout to read inventory\n")
		assert.Contains(t, prompt, "- Namespace: production\nSubjects: a, b\n\nActions: GET\n")
		assert.True(t, strings.HasSuffix(prompt, MarkerEnd))
	})

	t.Run("WithoutHints", func(t *testing.T) {
		prompt := BuildPrompt(&GenerateInput{
			Intent:      "x",
			Kind:        KindRego,
			AccessModel: AccessModelZeroTrust,
			Namespace:   "ns",
		})

		assert.Contains(t, prompt, "- Namespace: ns\n\n\n\n\nREQUIREMENTS:")
		assert.Contains(t, prompt, "Zero Trust (deny-by-default, least privilege)")
	})
}

func TestParseModelResponse(t *testing.T) {
	t.Run("Markers", func(t *testing.T) {
		content, explanation := ParseModelResponse(
			"Sure!\n---POLICY---\npackage x\nallow if { true }\n---EXPLANATION---\nLets x in.\n---END---\ntrailing",
		)
		assert.Equal(t, "package x\nallow if { true }", content)
		assert.Equal(t, "Lets x in.", explanation)
	})

	t.Run("MissingEndMarker", func(t *testing.T) {
		content, explanation := ParseModelResponse("---POLICY---\npackage y\n---EXPLANATION---\n  Explains y.  ")
		assert.Equal(t, "package y", content)
		assert.Equal(t, "Explains y.", explanation)
	})

	t.Run("FallbackWithoutMarkers", func(t *testing.T) {
		raw := "package z\nallow if { true }"
		content, explanation := ParseModelResponse(raw)
		assert.Equal(t, raw, content)
		assert.Equal(t, FallbackExplanation, explanation)
	})

	t.Run("FallbackWhenOnlyPolicyMarker", func(t *testing.T) {
		raw := "---POLICY---\npackage z"
		content, explanation := ParseModelResponse(raw)
		assert.Equal(t, raw, content)
		assert.Equal(t, FallbackExplanation, explanation)
	})
}

func TestDerivePolicyName(t *testing.T) {
	tests := []struct {
		intent string
		want   string
	}{
		{"Allow checkout to read inventory data only", "policy-allow-checkout-to-read-inventory"},
		{"  Deny   ALL writes! ", "policy-deny-all-writes"},
		{"agents@ai-platform may route", "policy-agentsai-platform-may-route"},
		{"", "policy-"},
		{"Café écoute", "policy-café-écoute"},
		{"Ärzte dürfen Befunde lesen", "policy-ärzte-dürfen-befunde-lesen"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DerivePolicyName(tt.intent), tt.intent)
	}
}

func TestNewGeneratedPolicy(t *testing.T) {
	tokens := 42
	input := &GenerateInput{
		Intent:      "Allow agents to route",
		Kind:        KindRego,
		AccessModel: AccessModelABAC,
		Namespace:   "ai-platform",
		Resources:   []string{"tars-router"},
	}

	p := NewGeneratedPolicy(input, &RouteResult{
		Content: "---POLICY---\npackage g\n---EXPLANATION---\nexplained\n---END---",
		Model:   "simulation-mode",
		Tokens:  &tokens,
	}, "alice", time.Now().UTC())

	assert.Equal(t, "policy-allow-agents-to-route", p.Name)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, "package g", p.Content)
	assert.Equal(t, "explained", p.Explanation)
	require.NotNil(t, p.NaturalLanguageIntent)
	assert.Equal(t, input.Intent, *p.NaturalLanguageIntent)
	assert.Equal(t, input.Intent, p.Description)
	assert.True(t, p.AIGenerated)
	require.NotNil(t, p.AIModelUsed)
	assert.Equal(t, "simulation-mode", *p.AIModelUsed)
	assert.Equal(t, []string{GeneratedPolicyTag}, p.Tags)
	assert.Equal(t, []string{}, p.Subjects)
	assert.Equal(t, []string{"tars-router"}, p.Resources)
	assert.Equal(t, uint32(1), p.Version)
	assert.False(t, p.ValidationPassed)
	assert.Equal(t, "alice", p.CreatedBy)
}
