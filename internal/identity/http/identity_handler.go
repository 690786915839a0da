// Package http provides the HTTP handlers of the identity registry and credential issuer.
package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sundacoder/ZedID/internal/httputil"
	"github.com/sundacoder/ZedID/internal/identity/domain"
	"github.com/sundacoder/ZedID/internal/identity/http/dto"
	"github.com/sundacoder/ZedID/internal/identity/usecase"
	customValidation "github.com/sundacoder/ZedID/internal/validation"
)

// IdentityHandler handles identity registration and credential issuance.
type IdentityHandler struct {
	identityUseCase usecase.IdentityUseCase
	trustDomain     string
	logger          *slog.Logger
}

// NewIdentityHandler creates a new identity handler.
func NewIdentityHandler(
	identityUseCase usecase.IdentityUseCase,
	trustDomain string,
	logger *slog.Logger,
) *IdentityHandler {
	return &IdentityHandler{
		identityUseCase: identityUseCase,
		trustDomain:     trustDomain,
		logger:          logger,
	}
}

func (h *IdentityHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid identity id: %w", err), h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// ListHandler lists every identity.
// GET /api/v1/identities
func (h *IdentityHandler) ListHandler(c *gin.Context) {
	identities, err := h.identityUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentitiesToListResponse(identities, h.trustDomain, time.Now().UTC()))
}

// CreateHandler registers an identity and returns its initial SVID when it has one.
// POST /api/v1/identities
func (h *IdentityHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.identityUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreateOutputToResponse(output, time.Now().UTC()))
}

// GetHandler returns one identity.
// GET /api/v1/identities/:id
func (h *IdentityHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	identity, err := h.identityUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity, time.Now().UTC()))
}

// SvidHandler issues a fresh SVID, one hour unless ttl_hours says otherwise.
// GET /api/v1/identities/:id/svid?ttl_hours=N
func (h *IdentityHandler) SvidHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ttlHours := domain.DefaultCredentialTTLHours
	requested, err := httputil.ParseOptionalInt(c, "ttl_hours")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if requested != nil {
		ttlHours = *requested
	}

	cred, err := h.identityUseCase.IssueCredential(c.Request.Context(), id, ttlHours)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SvidResponse{
		IdentityID: id.String(),
		SpiffeID:   cred.SpiffeID,
		SVID:       dto.MapCredentialToResponse(cred, time.Now().UTC()),
	})
}

// TokenHandler issues a bearer token. The body is optional.
// POST /api/v1/identities/:id/token
func (h *IdentityHandler) TokenHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	token, err := h.identityUseCase.IssueToken(c.Request.Context(), id, req.TTL())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToResponse(token))
}

// DeactivateHandler deactivates an identity.
// POST /api/v1/identities/:id/deactivate
func (h *IdentityHandler) DeactivateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	identity, err := h.identityUseCase.Deactivate(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity, time.Now().UTC()))
}

// SetTrustLevelHandler changes an identity's trust level.
// PUT /api/v1/identities/:id/trust-level
func (h *IdentityHandler) SetTrustLevelHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SetTrustLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	identity, err := h.identityUseCase.SetTrustLevel(c.Request.Context(), id, *req.TrustLevel)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity, time.Now().UTC()))
}

// ValidateTokenHandler checks a bearer token and returns its claims.
// POST /api/v1/tokens/validate
func (h *IdentityHandler) ValidateTokenHandler(c *gin.Context) {
	var req dto.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	claims, err := h.identityUseCase.ValidateToken(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.TokenClaimsResponse{Valid: true, Claims: claims})
}
