// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/securepassword/internal/config"
	encryptionService "github.com/allisson/securepassword/internal/encryption/service"
	apperrors "github.com/allisson/securepassword/internal/errors"
	hashingHTTP "github.com/allisson/securepassword/internal/hashing/http"
	hashingService "github.com/allisson/securepassword/internal/hashing/service"
	hashingUseCase "github.com/allisson/securepassword/internal/hashing/usecase"
	"github.com/allisson/securepassword/internal/http"
	"github.com/allisson/securepassword/internal/metrics"
	pepperService "github.com/allisson/securepassword/internal/pepper/service"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	adapterManager encryptionService.AdapterManager
	pepperManager  *pepperService.Manager
	primitive      hashingService.Primitive
	calibrator     *hashingUseCase.Calibrator

	// Use Cases
	passwordUseCase hashingUseCase.PasswordUseCase

	// Handlers
	passwordHandler    *hashingHTTP.PasswordHandler
	calibrationHandler *hashingHTTP.CalibrationHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                     sync.Mutex
	loggerInit             sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	adapterManagerInit     sync.Once
	pepperManagerInit      sync.Once
	primitiveInit          sync.Once
	calibratorInit         sync.Once
	passwordUseCaseInit    sync.Once
	passwordHandlerInit    sync.Once
	calibrationHandlerInit sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
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

// storeErr records an initialization error under name.
func (c *Container) storeErr(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

// loadErr returns the initialization error recorded under name, if any.
func (c *Container) loadErr(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := c.initMetricsProvider()
		if err != nil {
			c.storeErr("metricsProvider", err)
			return
		}
		c.metricsProvider = provider
	})
	if err := c.loadErr("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when
// metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		businessMetrics, err := c.initBusinessMetrics()
		if err != nil {
			c.storeErr("businessMetrics", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if err := c.loadErr("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// AdapterManager returns the encryption adapter manager.
func (c *Container) AdapterManager() encryptionService.AdapterManager {
	c.adapterManagerInit.Do(func() {
		c.adapterManager = c.initAdapterManager()
	})
	return c.adapterManager
}

// PepperManager returns the pepper manager holding the configured pepper.
func (c *Container) PepperManager() (*pepperService.Manager, error) {
	c.pepperManagerInit.Do(func() {
		manager, err := c.initPepperManager()
		if err != nil {
			c.storeErr("pepperManager", err)
			return
		}
		c.pepperManager = manager
	})
	if err := c.loadErr("pepperManager"); err != nil {
		return nil, err
	}
	return c.pepperManager, nil
}

// Primitive returns the hashing primitive dispatcher bounded by the configured
// verification limits.
func (c *Container) Primitive() hashingService.Primitive {
	c.primitiveInit.Do(func() {
		c.primitive = hashingService.NewPrimitive(hashingService.WithVerifyLimits(c.config.VerifyLimits()))
	})
	return c.primitive
}

// Calibrator returns the bcrypt cost calibrator.
func (c *Container) Calibrator() *hashingUseCase.Calibrator {
	c.calibratorInit.Do(func() {
		c.calibrator = hashingUseCase.NewCalibrator(
			hashingUseCase.WithDefaultMinimum(c.config.CalibrationMin),
			hashingUseCase.WithMaxCost(c.config.CalibrationMaxCost),
		)
	})
	return c.calibrator
}

// PasswordUseCase returns the password use case, wrapped with metrics when enabled.
func (c *Container) PasswordUseCase() (hashingUseCase.PasswordUseCase, error) {
	c.passwordUseCaseInit.Do(func() {
		useCase, err := c.initPasswordUseCase()
		if err != nil {
			c.storeErr("passwordUseCase", err)
			return
		}
		c.passwordUseCase = useCase
	})
	if err := c.loadErr("passwordUseCase"); err != nil {
		return nil, err
	}
	return c.passwordUseCase, nil
}

// PasswordHandler returns the HTTP handler for password operations.
func (c *Container) PasswordHandler() (*hashingHTTP.PasswordHandler, error) {
	c.passwordHandlerInit.Do(func() {
		useCase, err := c.PasswordUseCase()
		if err != nil {
			c.storeErr("passwordHandler", fmt.Errorf("failed to get password use case: %w", err))
			return
		}
		c.passwordHandler = hashingHTTP.NewPasswordHandler(useCase, c.Logger())
	})
	if err := c.loadErr("passwordHandler"); err != nil {
		return nil, err
	}
	return c.passwordHandler, nil
}

// CalibrationHandler returns the HTTP handler for calibration operations.
func (c *Container) CalibrationHandler() (*hashingHTTP.CalibrationHandler, error) {
	c.calibrationHandlerInit.Do(func() {
		useCase, err := c.PasswordUseCase()
		if err != nil {
			c.storeErr("calibrationHandler", fmt.Errorf("failed to get password use case: %w", err))
			return
		}
		c.calibrationHandler = hashingHTTP.NewCalibrationHandler(useCase, c.Logger())
	})
	if err := c.loadErr("calibrationHandler"); err != nil {
		return nil, err
	}
	return c.calibrationHandler, nil
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.storeErr("httpServer", err)
			return
		}
		c.mu.Lock()
		c.httpServer = server
		c.mu.Unlock()
	})
	if err := c.loadErr("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		server, err := c.initMetricsServer()
		if err != nil {
			c.storeErr("metricsServer", err)
			return
		}
		c.mu.Lock()
		c.metricsServer = server
		c.mu.Unlock()
	})
	if err := c.loadErr("metricsServer"); err != nil {
		return nil, err
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

	return apperrors.Join(shutdownErrors...)
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

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initMetricsProvider creates the Prometheus-backed provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates business metrics on the shared meter provider.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
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

// initAdapterManager creates the adapter manager. Sodium adapters decrypt with
// the key carried in the token only when PEPPER_TRUST_EMBEDDED_KEY is set.
func (c *Container) initAdapterManager() encryptionService.AdapterManager {
	if c.config.PepperTrustEmbeddedKey {
		return encryptionService.NewAdapterManager(encryptionService.WithEmbeddedKey())
	}
	return encryptionService.NewAdapterManager()
}

// initPepperManager installs PEPPER_SECRET under PEPPER_CIPHER. Without a
// secret the built-in default pepper is kept under the configured cipher.
func (c *Container) initPepperManager() (*pepperService.Manager, error) {
	cipher, err := c.config.Cipher()
	if err != nil {
		return nil, fmt.Errorf("invalid PEPPER_CIPHER: %w", err)
	}

	manager, err := pepperService.NewManager(c.AdapterManager())
	if err != nil {
		return nil, fmt.Errorf("failed to create pepper manager: %w", err)
	}

	secret := c.config.PepperSecret
	if secret == "" {
		c.Logger().Warn("PEPPER_SECRET not set, using the built-in default pepper")
		secret = pepperService.DefaultPepper
	}

	if err := manager.Set(secret, cipher); err != nil {
		return nil, fmt.Errorf("failed to set pepper: %w", err)
	}

	c.Logger().Info("pepper configured", slog.String("cipher", string(cipher)))
	return manager, nil
}

// initPasswordUseCase builds the password use case from the configured algorithm.
func (c *Container) initPasswordUseCase() (hashingUseCase.PasswordUseCase, error) {
	hashConfig, err := c.config.AlgorithmConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid hashing configuration: %w", err)
	}
	if err := hashConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hashing configuration: %w", err)
	}

	pepperManager, err := c.PepperManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get pepper manager: %w", err)
	}

	baseUseCase := hashingUseCase.NewPasswordUseCase(
		c.Primitive(),
		pepperManager,
		c.Calibrator(),
		hashConfig,
		c.config.VerifyWait,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for password use case: %w", err)
		}
		return hashingUseCase.NewPasswordUseCaseWithMetrics(baseUseCase, businessMetrics, hashConfig), nil
	}

	return baseUseCase, nil
}

// initHTTPServer creates the API server and configures its router.
func (c *Container) initHTTPServer() (*http.Server, error) {
	pepperManager, err := c.PepperManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get pepper manager: %w", err)
	}

	passwordHandler, err := c.PasswordHandler()
	if err != nil {
		return nil, err
	}

	calibrationHandler, err := c.CalibrationHandler()
	if err != nil {
		return nil, err
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider: %w", err)
	}

	server := http.NewServer(pepperManager, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.config, passwordHandler, calibrationHandler, metricsProvider)
	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider: %w", err)
	}
	if metricsProvider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}
