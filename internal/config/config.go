// Package config provides application configuration through environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	apperrors "github.com/allisson/securepassword/internal/errors"
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
	customValidation "github.com/allisson/securepassword/internal/validation"
)

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

	// HashAlgorithm is the algorithm new hashes use: default, 2y (or bcrypt), argon2i or argon2id.
	HashAlgorithm string
	// BcryptCost is the bcrypt cost. Zero keeps the algorithm default.
	BcryptCost int
	// Argon2MemoryCost is the Argon2 memory cost in KiB. Zero keeps the default.
	Argon2MemoryCost int
	// Argon2TimeCost is the number of Argon2 passes. Zero keeps the default.
	Argon2TimeCost int
	// Argon2Threads is the Argon2 parallelism. Zero keeps the default.
	Argon2Threads int
	// HashOptions is a JSON option object (algo, cost, memory_cost, time_cost,
	// threads). When set it replaces HASH_ALGORITHM, BCRYPT_COST and ARGON2_*.
	HashOptions string

	// VerifyMaxBcryptCost is the highest bcrypt cost accepted from a stored hash.
	VerifyMaxBcryptCost int
	// VerifyMaxArgon2MemoryCost is the highest Argon2 memory cost (KiB) accepted from a stored hash.
	VerifyMaxArgon2MemoryCost int
	// VerifyMaxArgon2TimeCost is the highest Argon2 time cost accepted from a stored hash.
	VerifyMaxArgon2TimeCost int
	// VerifyMaxArgon2Threads is the highest Argon2 parallelism accepted from a stored hash.
	VerifyMaxArgon2Threads int

	// PepperSecret is the plaintext pepper. Empty keeps the built-in default pepper.
	PepperSecret string
	// PepperCipher is the adapter protecting the pepper in memory ("openssl" or "sodium").
	PepperCipher string
	// PepperTrustEmbeddedKey makes the sodium adapter decrypt with the key carried in the token.
	PepperTrustEmbeddedKey bool

	// VerifyWait is the minimum duration of every verification.
	VerifyWait time.Duration
	// CalibrationMin is the default minimum hashing duration for bcrypt calibration.
	CalibrationMin time.Duration
	// CalibrationEnabled exposes the /v1/calibration endpoints.
	CalibrationEnabled bool
	// CalibrationMaxCost is the highest bcrypt cost calibration will time.
	CalibrationMaxCost int

	// RateLimitEnabled indicates whether per-IP rate limiting of the verify and
	// calibration endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
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
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Hashing
		HashAlgorithm:    env.GetString("HASH_ALGORITHM", string(hashingDomain.AlgorithmDefault)),
		BcryptCost:       env.GetInt("BCRYPT_COST", 0),
		Argon2MemoryCost: env.GetInt("ARGON2_MEMORY_COST", 0),
		Argon2TimeCost:   env.GetInt("ARGON2_TIME_COST", 0),
		Argon2Threads:    env.GetInt("ARGON2_THREADS", 0),
		HashOptions:      env.GetString("HASH_OPTIONS", ""),

		// Verification limits
		VerifyMaxBcryptCost:       env.GetInt("VERIFY_MAX_BCRYPT_COST", hashingDomain.DefaultMaxVerifyBcryptCost),
		VerifyMaxArgon2MemoryCost: env.GetInt("VERIFY_MAX_ARGON2_MEMORY_COST", hashingDomain.DefaultMaxVerifyArgon2MemoryCost),
		VerifyMaxArgon2TimeCost:   env.GetInt("VERIFY_MAX_ARGON2_TIME_COST", hashingDomain.DefaultMaxVerifyArgon2TimeCost),
		VerifyMaxArgon2Threads:    env.GetInt("VERIFY_MAX_ARGON2_THREADS", hashingDomain.DefaultMaxVerifyArgon2Threads),

		// Pepper
		PepperSecret:           env.GetString("PEPPER_SECRET", ""),
		PepperCipher:           env.GetString("PEPPER_CIPHER", string(encryptionDomain.CipherOpenSSL)),
		PepperTrustEmbeddedKey: env.GetBool("PEPPER_TRUST_EMBEDDED_KEY", false),

		// Timing
		VerifyWait: env.GetDuration(
			"VERIFY_WAIT_MICROSECONDS",
			int64(hashingDomain.DefaultVerifyWait/time.Microsecond),
			time.Microsecond,
		),
		CalibrationMin: env.GetDuration(
			"CALIBRATION_MIN_MS",
			int64(hashingDomain.DefaultCalibrationMin/time.Millisecond),
			time.Millisecond,
		),

		// Calibration
		CalibrationEnabled: env.GetBool("CALIBRATION_ENABLED", false),
		CalibrationMaxCost: env.GetInt("CALIBRATION_MAX_COST", hashingDomain.DefaultMaxCalibrationCost),

		// Rate Limiting (verify and calibration endpoints, per IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "securepassword"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks ranges and enumerations. Errors wrap ErrInvalidInput and
// never include the pepper.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.HashAlgorithm, customValidation.AlgorithmName),
		validation.Field(&c.BcryptCost, validation.Min(0), validation.Max(hashingDomain.MaxBcryptCost)),
		validation.Field(&c.Argon2MemoryCost, validation.Min(0), validation.Max(math.MaxUint32)),
		validation.Field(&c.Argon2TimeCost, validation.Min(0), validation.Max(math.MaxUint32)),
		validation.Field(&c.Argon2Threads, validation.Min(0), validation.Max(math.MaxUint8)),
		validation.Field(&c.VerifyMaxBcryptCost,
			validation.Min(hashingDomain.MinBcryptCost), validation.Max(hashingDomain.MaxBcryptCost)),
		validation.Field(&c.VerifyMaxArgon2MemoryCost,
			validation.Min(8), validation.Max(math.MaxUint32)),
		validation.Field(&c.VerifyMaxArgon2TimeCost, validation.Min(1), validation.Max(math.MaxUint32)),
		validation.Field(&c.VerifyMaxArgon2Threads, validation.Min(1), validation.Max(math.MaxUint8)),
		validation.Field(&c.PepperCipher, validation.Required, customValidation.CipherName),
		validation.Field(&c.VerifyWait, validation.Min(time.Duration(0))),
		validation.Field(&c.CalibrationMin, validation.Min(time.Duration(0))),
		validation.Field(&c.CalibrationMaxCost,
			validation.Min(hashingDomain.MinBcryptCost), validation.Max(hashingDomain.MaxBcryptCost)),
		validation.Field(&c.RateLimitRequestsPerSec, validation.Min(0.0)),
		validation.Field(&c.RateLimitBurst, validation.Min(0)),
	)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}

	if c.RateLimitEnabled && (c.RateLimitRequestsPerSec <= 0 || c.RateLimitBurst <= 0) {
		return apperrors.Wrap(apperrors.ErrInvalidInput,
			"rate limiting requires positive RATE_LIMIT_REQUESTS_PER_SEC and RATE_LIMIT_BURST")
	}

	if c.HashOptions != "" {
		options, err := c.hashOptions()
		if err != nil {
			return err
		}
		if err := validation.Validate(options, customValidation.HashOptions); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "HASH_OPTIONS: "+err.Error())
		}
	}

	hashConfig, err := c.AlgorithmConfig()
	if err != nil {
		return err
	}
	if err := hashConfig.Validate(); err != nil {
		return err
	}
	return c.VerifyLimits().Check(hashConfig)
}

// VerifyLimits returns the ceilings applied to parameters read from stored
// hashes. Non-positive values keep the defaults.
func (c *Config) VerifyLimits() hashingDomain.VerifyLimits {
	limits := hashingDomain.DefaultVerifyLimits()
	if c.VerifyMaxBcryptCost > 0 {
		limits.MaxBcryptCost = c.VerifyMaxBcryptCost
	}
	if c.VerifyMaxArgon2MemoryCost > 0 {
		limits.MaxArgon2MemoryCost = uint32(min(c.VerifyMaxArgon2MemoryCost, math.MaxUint32))
	}
	if c.VerifyMaxArgon2TimeCost > 0 {
		limits.MaxArgon2TimeCost = uint32(min(c.VerifyMaxArgon2TimeCost, math.MaxUint32))
	}
	if c.VerifyMaxArgon2Threads > 0 {
		limits.MaxArgon2Threads = uint8(min(c.VerifyMaxArgon2Threads, math.MaxUint8))
	}
	return limits
}

func (c *Config) hashOptions() (map[string]any, error) {
	var options map[string]any
	if err := json.Unmarshal([]byte(c.HashOptions), &options); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "HASH_OPTIONS must be a JSON object")
	}
	return options, nil
}

// AlgorithmConfig builds the hashing configuration from HASH_OPTIONS when set,
// otherwise from the HASH_ALGORITHM, BCRYPT_COST and ARGON2_* variables.
func (c *Config) AlgorithmConfig() (hashingDomain.AlgorithmConfig, error) {
	if c.HashOptions != "" {
		options, err := c.hashOptions()
		if err != nil {
			return hashingDomain.AlgorithmConfig{}, err
		}
		return hashingDomain.ParseAlgorithmConfig(options)
	}

	algorithm, err := hashingDomain.ParseAlgorithm(c.HashAlgorithm)
	if err != nil {
		return hashingDomain.AlgorithmConfig{}, fmt.Errorf("HASH_ALGORITHM %q: %w", c.HashAlgorithm, err)
	}

	switch algorithm {
	case hashingDomain.AlgorithmBcrypt:
		return hashingDomain.BcryptConfig(c.BcryptCost), nil
	case hashingDomain.AlgorithmArgon2i, hashingDomain.AlgorithmArgon2id:
		if c.Argon2MemoryCost < 0 || c.Argon2TimeCost < 0 || c.Argon2Threads < 0 ||
			int64(c.Argon2MemoryCost) > math.MaxUint32 || int64(c.Argon2TimeCost) > math.MaxUint32 ||
			c.Argon2Threads > math.MaxUint8 {
			return hashingDomain.AlgorithmConfig{}, fmt.Errorf("%w: argon2 option out of range",
				hashingDomain.ErrInvalidOption)
		}
		return hashingDomain.Argon2Config(
			algorithm == hashingDomain.AlgorithmArgon2id,
			uint32(c.Argon2MemoryCost),
			uint32(c.Argon2TimeCost),
			uint8(c.Argon2Threads),
		), nil
	default:
		cfg := hashingDomain.DefaultConfig()
		cfg.Cost = c.BcryptCost
		return cfg, nil
	}
}

// Cipher returns the configured pepper cipher.
func (c *Config) Cipher() (encryptionDomain.Cipher, error) {
	return encryptionDomain.ParseCipher(c.PepperCipher)
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

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
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
