// Package http provides the read-only HTTP handlers of the audit ledger.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sundacoder/ZedID/internal/audit/http/dto"
	"github.com/sundacoder/ZedID/internal/audit/usecase"
	"github.com/sundacoder/ZedID/internal/httputil"
)

// MaxListedEvents caps GET /audit.
const MaxListedEvents = 100

// AuditHandler serves the audit ledger.
type AuditHandler struct {
	auditUseCase usecase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditUseCase usecase.AuditUseCase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{auditUseCase: auditUseCase, logger: logger}
}

// ListHandler returns the most recent events first.
// GET /api/v1/audit?limit=N
func (h *AuditHandler) ListHandler(c *gin.Context) {
	limit, err := httputil.ParseLimit(c, MaxListedEvents, MaxListedEvents)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, total, err := h.auditUseCase.Recent(c.Request.Context(), limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events, total))
}

// StatsHandler returns decision counts and recent action names.
// GET /api/v1/audit/stats
func (h *AuditHandler) StatsHandler(c *gin.Context) {
	stats, err := h.auditUseCase.Stats(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// VerifyHandler checks every event signature.
// GET /api/v1/audit/verify
func (h *AuditHandler) VerifyHandler(c *gin.Context) {
	report, err := h.auditUseCase.Verify(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, report)
}
