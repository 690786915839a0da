// Package http provides the HTTP server, its router and shared middleware.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/sundacoder/ZedID/internal/audit/http"
	"github.com/sundacoder/ZedID/internal/config"
	identityHTTP "github.com/sundacoder/ZedID/internal/identity/http"
	"github.com/sundacoder/ZedID/internal/metrics"
	policyHTTP "github.com/sundacoder/ZedID/internal/policy/http"
)

const (
	// ServiceName is reported by the health and system info endpoints.
	ServiceName = "ZedID"
	// Version is the service version reported to clients.
	Version = "0.1.0"
)

var (
	capabilities = []string{
		"spiffe-svid-issuance",
		"jwt-identity-tokens",
		"rego-policy-generation",
		"cedar-policy-generation",
		"istio-authz-generation",
		"opa-policy-evaluation",
		"zero-trust-enforcement",
		"audit-logging",
		"tars-llm-routing",
	}
	standards = []string{
		"SPIFFE/SPIRE",
		"NIST SP 800-207 (Zero Trust)",
		"OAuth2/OIDC",
		"OPA/Rego",
		"AWS Cedar",
		"Istio AuthorizationPolicy",
		"mTLS",
	}
)

const (
	apiWriteTimeout     = 60 * time.Second
	metricsWriteTimeout = 15 * time.Second
)

// newHTTPServer applies the timeouts shared by the API and metrics servers.
// The API write timeout is longer because policy generation waits on the model router.
func newHTTPServer(host string, port int, handler http.Handler, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// Server represents the HTTP server.
type Server struct {
	server       *http.Server
	router       *gin.Engine
	logger       *slog.Logger
	trustDomain  string
	routerURL    string
	shuttingDown atomic.Bool
}

// NewServer creates a new HTTP server. routerURL is the model router endpoint
// reported by the system info endpoint.
func NewServer(host string, port int, trustDomain, routerURL string, logger *slog.Logger) *Server {
	return &Server{
		server:      newHTTPServer(host, port, nil, apiWriteTimeout),
		logger:      logger,
		trustDomain: trustDomain,
		routerURL:   routerURL,
	}
}

// SetupRouter builds the gin engine and registers every route.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	identityHandler *identityHTTP.IdentityHandler,
	policyHandler *policyHTTP.PolicyHandler,
	auditHandler *auditHTTP.AuditHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(AuditContextMiddleware())

	if cors := corsMiddleware(cfg, s.logger); cors != nil {
		router.Use(cors)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	limited := func(c *gin.Context) { c.Next() }
	if cfg.RateLimitEnabled {
		limited = RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/api/v1")
	v1.GET("/health", s.healthHandler)
	v1.GET("/system/info", s.systemInfoHandler)

	identities := v1.Group("/identities")
	{
		identities.GET("", identityHandler.ListHandler)
		identities.POST("", identityHandler.CreateHandler)
		identities.GET("/:id", identityHandler.GetHandler)
		identities.GET("/:id/svid", limited, identityHandler.SvidHandler)
		identities.POST("/:id/token", limited, identityHandler.TokenHandler)
		identities.POST("/:id/deactivate", identityHandler.DeactivateHandler)
		identities.PUT("/:id/trust-level", identityHandler.SetTrustLevelHandler)
	}

	v1.POST("/tokens/validate", limited, identityHandler.ValidateTokenHandler)

	// Static paths are registered ahead of /:id so they are never read as ids.
	policies := v1.Group("/policies")
	{
		policies.GET("", policyHandler.ListHandler)
		policies.POST("", policyHandler.CreateHandler)
		policies.POST("/generate", limited, policyHandler.GenerateHandler)
		policies.POST("/evaluate", limited, policyHandler.EvaluateHandler)
		policies.GET("/:id", policyHandler.GetHandler)
		policies.POST("/:id/review", policyHandler.ReviewHandler)
		policies.POST("/:id/activate", policyHandler.ActivateHandler)
		policies.POST("/:id/disable", policyHandler.DisableHandler)
		policies.POST("/:id/archive", policyHandler.ArchiveHandler)
		policies.POST("/:id/validate", policyHandler.ValidateHandler)
	}

	audit := v1.Group("/audit")
	{
		audit.GET("", auditHandler.ListHandler)
		audit.GET("/stats", auditHandler.StatsHandler)
		audit.GET("/verify", auditHandler.VerifyHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.shuttingDown.Store(true)
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   ServiceName,
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.shuttingDown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// routerMode describes the model router endpoint for operators.
func routerMode(endpoint string) string {
	switch {
	case strings.Contains(endpoint, "simulation"):
		return "simulation (demo mode)"
	case strings.Contains(endpoint, "localhost"):
		return "local-ollama"
	default:
		return "live-tars"
	}
}

func (s *Server) systemInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":       "ZedID - Identity Dashboard & Policy Generator",
		"version":       Version,
		"trust_domain":  s.trustDomain,
		"tars_endpoint": s.routerURL,
		"tars_mode":     routerMode(s.routerURL),
		"capabilities":  capabilities,
		"standards":     standards,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
