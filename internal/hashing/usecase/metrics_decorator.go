package usecase

import (
	"context"
	"time"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
	"github.com/allisson/securepassword/internal/metrics"
)

const (
	passwordDomain    = "password"
	calibrationDomain = "calibration"
)

// passwordUseCaseWithMetrics decorates PasswordUseCase with metrics instrumentation.
type passwordUseCaseWithMetrics struct {
	next      PasswordUseCase
	metrics   metrics.BusinessMetrics
	algorithm string
}

// NewPasswordUseCaseWithMetrics wraps a PasswordUseCase with metrics recording.
// Verification outcomes are labelled with the algorithm of cfg.
func NewPasswordUseCaseWithMetrics(
	useCase PasswordUseCase,
	m metrics.BusinessMetrics,
	cfg hashingDomain.AlgorithmConfig,
) PasswordUseCase {
	return &passwordUseCaseWithMetrics{
		next:      useCase,
		metrics:   m,
		algorithm: string(cfg.Resolve().Algorithm),
	}
}

func (p *passwordUseCaseWithMetrics) record(
	ctx context.Context,
	domain, operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.RecordOperation(ctx, domain, operation, status)
	p.metrics.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

// Hash records metrics for hash creation.
func (p *passwordUseCaseWithMetrics) Hash(ctx context.Context, password string) (*hashingDomain.HashResult, error) {
	start := time.Now()
	result, err := p.next.Hash(ctx, password)
	p.record(ctx, passwordDomain, "hash", start, err)
	return result, err
}

// Verify records metrics and the verification outcome.
func (p *passwordUseCaseWithMetrics) Verify(ctx context.Context, password, hash string) (bool, error) {
	start := time.Now()
	valid, err := p.next.Verify(ctx, password, hash)
	p.record(ctx, passwordDomain, "verify", start, err)

	result := metrics.VerificationInvalid
	switch {
	case err != nil:
		result = metrics.VerificationError
	case valid:
		result = metrics.VerificationValid
	}
	p.metrics.RecordVerification(ctx, p.algorithm, result)

	return valid, err
}

// Rehash records metrics for rehash checks.
func (p *passwordUseCaseWithMetrics) Rehash(
	ctx context.Context,
	password, hash string,
) (*hashingDomain.RehashResult, error) {
	start := time.Now()
	result, err := p.next.Rehash(ctx, password, hash)
	p.record(ctx, passwordDomain, "rehash", start, err)
	return result, err
}

// Info records metrics for hash inspection.
func (p *passwordUseCaseWithMetrics) Info(ctx context.Context, hash string) (hashingDomain.HashInfo, error) {
	start := time.Now()
	info, err := p.next.Info(ctx, hash)
	p.record(ctx, passwordDomain, "info", start, err)
	return info, err
}

// OptimalBcryptCost records metrics for the calibration scan.
func (p *passwordUseCaseWithMetrics) OptimalBcryptCost(
	ctx context.Context,
	password string,
	minDuration time.Duration,
) (int, error) {
	start := time.Now()
	cost, err := p.next.OptimalBcryptCost(ctx, password, minDuration)
	p.record(ctx, calibrationDomain, "optimal_bcrypt_cost", start, err)
	return cost, err
}

// BenchmarkCost records metrics for the benchmark scan.
func (p *passwordUseCaseWithMetrics) BenchmarkCost(ctx context.Context, password string, cost int) (int, error) {
	start := time.Now()
	result, err := p.next.BenchmarkCost(ctx, password, cost)
	p.record(ctx, calibrationDomain, "benchmark_cost", start, err)
	return result, err
}
