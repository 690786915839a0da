package router

import (
	"context"
	"fmt"

	"github.com/sundacoder/ZedID/internal/policy/domain"
)

const (
	// SimulationModel is reported as the model of simulated responses.
	SimulationModel = "simulation-mode"
	// SimulationTokens is reported as the token count of simulated responses.
	SimulationTokens = 42

	simulationIntentLength = 80
)

type simulationRouter struct{}

// NewSimulationRouter creates a Router that answers every prompt with a fixed
// Rego stub, without network access.
func NewSimulationRouter() Router {
	return &simulationRouter{}
}

func (s *simulationRouter) Route(ctx context.Context, prompt string, kind domain.Kind) (*domain.RouteResult, error) {
	intent := []rune(prompt)
	if len(intent) > simulationIntentLength {
		intent = intent[:simulationIntentLength]
	}

	content := fmt.Sprintf(`# Simulated Rego Policy
# Intent: %s
package zedid.generated

import future.keywords.if

default allow := false

allow if {
    input.trust_level >= 2
}
`, string(intent))

	tokens := SimulationTokens
	return &domain.RouteResult{Content: content, Model: SimulationModel, Tokens: &tokens}, nil
}
