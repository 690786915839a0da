package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sundacoder/ZedID/internal/config"
)

// corsMiddleware allows the dashboard origins listed in CORS_ALLOW_ORIGINS to
// call the API. Returns nil when CORS is off or the list has no usable entry.
func corsMiddleware(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.CORSEnabled {
		return nil
	}

	origins := splitOrigins(cfg.CORSAllowOrigins)
	if len(origins) == 0 {
		logger.Warn("CORS enabled without allowed origins, skipping middleware")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut}
	corsConfig.AddAllowHeaders("Authorization", ActorHeader, "X-Request-Id")
	corsConfig.AddExposeHeaders("X-Request-Id", "Retry-After")
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}

func splitOrigins(raw string) []string {
	var origins []string
	for origin := range strings.SplitSeq(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
