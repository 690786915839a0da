// Package router sends policy generation prompts to a language model.
package router

import (
	"context"

	"github.com/sundacoder/ZedID/internal/policy/domain"
)

// Router turns a generation prompt into model output.
type Router interface {
	Route(ctx context.Context, prompt string, kind domain.Kind) (*domain.RouteResult, error)
}

// Mode names which Router implementation serves generation requests.
type Mode string

const (
	ModeSimulation Mode = "simulation"
	ModeLive       Mode = "live"
)
