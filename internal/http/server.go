// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/securepassword/internal/config"
	hashingHTTP "github.com/allisson/securepassword/internal/hashing/http"
	"github.com/allisson/securepassword/internal/metrics"
)

// PepperChecker reports whether the pepper can currently be decrypted.
type PepperChecker interface {
	Pepper() (string, error)
}

// Server represents the HTTP server
type Server struct {
	pepper PepperChecker
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
// WriteTimeout covers calibration requests, which hash repeatedly.
func NewServer(
	pepper PepperChecker,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		pepper: pepper,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter registers middleware, health endpoints and the /v1 API. The
// calibration routes exist only when CalibrationEnabled is set.
func (s *Server) SetupRouter(
	cfg *config.Config,
	passwordHandler *hashingHTTP.PasswordHandler,
	calibrationHandler *hashingHTTP.CalibrationHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		passwords := v1.Group("/passwords")
		{
			passwords.POST("/hash", passwordHandler.HashHandler)
			if cfg.RateLimitEnabled {
				passwords.POST("/verify",
					hashingHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger),
					passwordHandler.VerifyHandler,
				)
			} else {
				passwords.POST("/verify", passwordHandler.VerifyHandler)
			}
			passwords.POST("/rehash", passwordHandler.RehashHandler)
			passwords.POST("/info", passwordHandler.InfoHandler)
		}

		if cfg.CalibrationEnabled {
			calibration := v1.Group("/calibration")
			if cfg.RateLimitEnabled {
				calibration.Use(hashingHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
			}
			calibration.POST("/bcrypt", calibrationHandler.OptimalBcryptCostHandler)
			calibration.POST("/benchmark", calibrationHandler.BenchmarkCostHandler)
		}
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.BaseContext = func(net.Listener) context.Context { return ctx }

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the pepper can be decrypted. Hashing and
// verification fail closed without it.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"pepper": "ok"}

	if s.pepper == nil {
		components["pepper"] = "error"
	} else if _, err := s.pepper.Pepper(); err != nil {
		s.logger.Warn("readiness check failed", slog.String("component", "pepper"), slog.Any("error", err))
		components["pepper"] = "error"
	}

	if components["pepper"] != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
