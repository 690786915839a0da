// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditHTTP "github.com/sundacoder/ZedID/internal/audit/http"
	auditRepository "github.com/sundacoder/ZedID/internal/audit/repository"
	auditService "github.com/sundacoder/ZedID/internal/audit/service"
	auditUsecase "github.com/sundacoder/ZedID/internal/audit/usecase"
	"github.com/sundacoder/ZedID/internal/config"
	"github.com/sundacoder/ZedID/internal/http"
	identityHTTP "github.com/sundacoder/ZedID/internal/identity/http"
	identityRepository "github.com/sundacoder/ZedID/internal/identity/repository"
	identityService "github.com/sundacoder/ZedID/internal/identity/service"
	identityUsecase "github.com/sundacoder/ZedID/internal/identity/usecase"
	"github.com/sundacoder/ZedID/internal/metrics"
	policyHTTP "github.com/sundacoder/ZedID/internal/policy/http"
	policyRepository "github.com/sundacoder/ZedID/internal/policy/repository"
	"github.com/sundacoder/ZedID/internal/policy/router"
	policyUsecase "github.com/sundacoder/ZedID/internal/policy/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Background context for goroutines owned by container components.
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Audit
	auditRepo    *auditRepository.MemoryEventRepository
	auditSigner  auditService.Signer
	auditUseCase auditUsecase.AuditUseCase
	auditHandler *auditHTTP.AuditHandler

	// Identity
	signingSecret     []byte
	kmsService        identityService.KMSService
	tokenService      identityService.TokenService
	credentialBackend identityService.CredentialBackend
	identityRepo      *identityRepository.MemoryIdentityRepository
	identityUseCase   identityUsecase.IdentityUseCase
	identityHandler   *identityHTTP.IdentityHandler

	// Policy
	modelRouter      router.Router
	policyRepo       *policyRepository.MemoryPolicyRepository
	policyUseCase    policyUsecase.PolicyUseCase
	decisionUseCase  policyUsecase.DecisionUseCase
	generatorUseCase policyUsecase.GeneratorUseCase
	policyHandler    *policyHTTP.PolicyHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	auditRepoInit         sync.Once
	auditSignerInit       sync.Once
	auditUseCaseInit      sync.Once
	auditHandlerInit      sync.Once
	signingSecretInit     sync.Once
	kmsServiceInit        sync.Once
	tokenServiceInit      sync.Once
	credentialBackendInit sync.Once
	identityRepoInit      sync.Once
	identityUseCaseInit   sync.Once
	identityHandlerInit   sync.Once
	modelRouterInit       sync.Once
	policyRepoInit        sync.Once
	policyUseCaseInit     sync.Once
	decisionUseCaseInit   sync.Once
	generatorUseCaseInit  sync.Once
	policyHandlerInit     sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the OpenTelemetry metrics provider.
// It returns nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// It returns a no-op recorder when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its routes configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server.
// It returns nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Stops the rate limiter cleanup goroutine.
	c.cancel()

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler).With(slog.String("service", http.ServiceName))
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(http.ServiceName, http.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder on top of the metrics provider.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the API server and registers every handler.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	identityHandler, err := c.IdentityHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity handler for http server: %w", err)
	}

	policyHandler, err := c.PolicyHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy handler for http server: %w", err)
	}

	auditHandler, err := c.AuditHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		c.config.TrustDomain,
		c.config.ModelRouterEndpoint,
		logger,
	)
	server.SetupRouter(c.ctx, c.config, identityHandler, policyHandler, auditHandler, metricsProvider)

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
