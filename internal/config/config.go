// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret is used when ZEDID_JWT_SECRET is unset. It is only suitable for local development.
const DefaultJWTSecret = "zedid-dev-secret-change-in-production"

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// TrustDomain is the SPIFFE trust domain every derived identifier belongs to.
	TrustDomain string

	// JWTSecret is the HMAC secret used to sign bearer tokens.
	JWTSecret string
	// JWTSecretKMSKeyURI, when set, means JWTSecret is a base64 ciphertext to be
	// decrypted with this gocloud.dev/secrets keeper before use.
	JWTSecretKMSKeyURI string
	// JWTIssuer is the "iss" claim of issued tokens.
	JWTIssuer string
	// JWTAudience is the single "aud" value of issued tokens.
	JWTAudience string

	// AuditSigningKey is the input keying material for audit event signatures.
	// Empty means the JWT secret is reused.
	AuditSigningKey string

	// ModelRouterEndpoint is the base URL of the OpenAI-compatible model router.
	// Endpoints containing "simulation" select the offline simulation router.
	ModelRouterEndpoint string
	// ModelRouterAPIKey is the bearer key for the model router.
	ModelRouterAPIKey string
	// ModelRouterTimeout bounds a single routing call.
	ModelRouterTimeout time.Duration
	// ModelRouterBreakerEnabled wraps the live router in a circuit breaker.
	ModelRouterBreakerEnabled bool
	// ModelRouterBreakerMaxFailures is the number of consecutive failures that opens the breaker.
	ModelRouterBreakerMaxFailures int
	// ModelRouterBreakerOpenTimeout is how long the breaker stays open.
	ModelRouterBreakerOpenTimeout time.Duration

	// PolicyActivationRequiresValidation refuses to activate policies that fail validation.
	PolicyActivationRequiresValidation bool
	// SeedDemoData loads the demo identities and policies at startup.
	SeedDemoData bool

	// RateLimitEnabled enables the per-IP limiter on evaluation, token and generation endpoints.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the sustained request rate per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size per client IP.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Identity
		TrustDomain: env.GetString("ZEDID_TRUST_DOMAIN", "tetrate.io"),

		// Tokens
		JWTSecret:          env.GetString("ZEDID_JWT_SECRET", DefaultJWTSecret),
		JWTSecretKMSKeyURI: env.GetString("JWT_SECRET_KMS_KEY_URI", ""),
		JWTIssuer:          env.GetString("ZEDID_JWT_ISSUER", "zedid.tetrate.io"),
		JWTAudience:        env.GetString("ZEDID_JWT_AUDIENCE", "zedid-api"),

		// Audit
		AuditSigningKey: env.GetString("AUDIT_SIGNING_KEY", ""),

		// Model router
		ModelRouterEndpoint:           env.GetString("TARS_ENDPOINT", "simulation://tars.tetrate.io"),
		ModelRouterAPIKey:             env.GetString("TARS_API_KEY", ""),
		ModelRouterTimeout:            env.GetDuration("MODEL_ROUTER_TIMEOUT_SECONDS", 30, time.Second),
		ModelRouterBreakerEnabled:     env.GetBool("MODEL_ROUTER_BREAKER_ENABLED", true),
		ModelRouterBreakerMaxFailures: env.GetInt("MODEL_ROUTER_BREAKER_MAX_FAILURES", 5),
		ModelRouterBreakerOpenTimeout: env.GetDuration("MODEL_ROUTER_BREAKER_OPEN_SECONDS", 30, time.Second),

		// Policies
		PolicyActivationRequiresValidation: env.GetBool("POLICY_ACTIVATION_REQUIRES_VALIDATION", true),
		SeedDemoData:                       env.GetBool("SEED_DEMO_DATA", true),

		// Rate Limiting (per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 20.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 40),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "zedid"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// ModelRouterLive reports whether the live model router should be used.
func (c *Config) ModelRouterLive() bool {
	return c.ModelRouterAPIKey != "" && !strings.Contains(c.ModelRouterEndpoint, "simulation")
}

// loadDotEnv searches for a .env file from the current directory up to the
// root directory and loads the first one found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
