// Package http provides the HTTP handlers of the policy store, decision engine and generator.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/httputil"
	"github.com/sundacoder/ZedID/internal/policy/domain"
	"github.com/sundacoder/ZedID/internal/policy/http/dto"
	"github.com/sundacoder/ZedID/internal/policy/usecase"
	customValidation "github.com/sundacoder/ZedID/internal/validation"
)

// PolicyHandler handles policy management, evaluation and generation.
type PolicyHandler struct {
	policyUseCase    usecase.PolicyUseCase
	decisionUseCase  usecase.DecisionUseCase
	generatorUseCase usecase.GeneratorUseCase
	logger           *slog.Logger
}

// NewPolicyHandler creates a new policy handler.
func NewPolicyHandler(
	policyUseCase usecase.PolicyUseCase,
	decisionUseCase usecase.DecisionUseCase,
	generatorUseCase usecase.GeneratorUseCase,
	logger *slog.Logger,
) *PolicyHandler {
	return &PolicyHandler{
		policyUseCase:    policyUseCase,
		decisionUseCase:  decisionUseCase,
		generatorUseCase: generatorUseCase,
		logger:           logger,
	}
}

func (h *PolicyHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid policy id: %w", err), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// ListHandler lists policies, optionally restricted to one namespace.
// GET /api/v1/policies?namespace=
func (h *PolicyHandler) ListHandler(c *gin.Context) {
	policies, err := h.policyUseCase.List(c.Request.Context(), c.Query("namespace"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPoliciesToListResponse(policies))
}

// CreateHandler stores a hand-written policy as a Draft.
// POST /api/v1/policies
func (h *PolicyHandler) CreateHandler(c *gin.Context) {
	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	policy, err := h.policyUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPolicyToResponse(policy))
}

// GenerateHandler generates a Draft policy from natural-language intent.
// POST /api/v1/policies/generate
func (h *PolicyHandler) GenerateHandler(c *gin.Context) {
	var req dto.GeneratePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.generatorUseCase.Generate(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGenerateOutputToResponse(output))
}

// EvaluateHandler decides an access request.
// POST /api/v1/policies/evaluate
func (h *PolicyHandler) EvaluateHandler(c *gin.Context) {
	var req dto.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	decision, err := h.decisionUseCase.Evaluate(c.Request.Context(), req.ToDecisionRequest())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecisionToResponse(decision))
}

// GetHandler returns one policy.
// GET /api/v1/policies/:id
func (h *PolicyHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	policy, err := h.policyUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPolicyToResponse(policy))
}

type statusChange func(ctx context.Context, id uuid.UUID) (*domain.Policy, error)

func (h *PolicyHandler) changeStatus(c *gin.Context, change statusChange) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	policy, err := change(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPolicyToResponse(policy))
}

// ReviewHandler moves a policy to review.
// POST /api/v1/policies/:id/review
func (h *PolicyHandler) ReviewHandler(c *gin.Context) {
	h.changeStatus(c, h.policyUseCase.Review)
}

// ActivateHandler activates a policy.
// POST /api/v1/policies/:id/activate
func (h *PolicyHandler) ActivateHandler(c *gin.Context) {
	h.changeStatus(c, h.policyUseCase.Activate)
}

// DisableHandler disables a policy.
// POST /api/v1/policies/:id/disable
func (h *PolicyHandler) DisableHandler(c *gin.Context) {
	h.changeStatus(c, h.policyUseCase.Disable)
}

// ArchiveHandler archives a policy.
// POST /api/v1/policies/:id/archive
func (h *PolicyHandler) ArchiveHandler(c *gin.Context) {
	h.changeStatus(c, h.policyUseCase.Archive)
}

// ValidateHandler re-runs validation on a stored policy.
// POST /api/v1/policies/:id/validate
func (h *PolicyHandler) ValidateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	policy, validation, err := h.policyUseCase.Revalidate(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ValidatePolicyResponse{
		Policy:           dto.MapPolicyToResponse(policy),
		ValidationResult: *validation,
	})
}
