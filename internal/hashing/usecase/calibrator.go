package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// Calibrator measures bcrypt timings on the current machine. Calls are
// synchronous and may take several seconds. No cost above the configured
// maximum is ever timed.
type Calibrator struct {
	hash       func(password []byte, cost int) error
	now        func() time.Time
	since      func(time.Time) time.Duration
	defaultMin time.Duration
	maxCost    int
}

// CalibratorOption configures a Calibrator.
type CalibratorOption func(*Calibrator)

// WithClock replaces the wall clock used to time each hash.
func WithClock(now func() time.Time) CalibratorOption {
	return func(c *Calibrator) {
		c.now = now
		c.since = func(start time.Time) time.Duration { return now().Sub(start) }
	}
}

// WithHashFunc replaces the bcrypt call being timed.
func WithHashFunc(hash func(password []byte, cost int) error) CalibratorOption {
	return func(c *Calibrator) {
		c.hash = hash
	}
}

// WithDefaultMinimum sets the minimum used when OptimalBcryptCost gets a
// non-positive duration. Non-positive values keep 250ms.
func WithDefaultMinimum(d time.Duration) CalibratorOption {
	return func(c *Calibrator) {
		if d > 0 {
			c.defaultMin = d
		}
	}
}

// WithMaxCost caps the costs the calibrator will time. Values outside
// [4, 31] keep bcrypt's maximum of 31.
func WithMaxCost(cost int) CalibratorOption {
	return func(c *Calibrator) {
		if cost >= hashingDomain.MinBcryptCost && cost <= hashingDomain.MaxBcryptCost {
			c.maxCost = cost
		}
	}
}

// NewCalibrator creates a Calibrator timing golang.org/x/crypto/bcrypt.
func NewCalibrator(opts ...CalibratorOption) *Calibrator {
	c := &Calibrator{
		hash: func(password []byte, cost int) error {
			_, err := bcrypt.GenerateFromPassword(password, cost)
			return err
		},
		now:        time.Now,
		since:      time.Since,
		defaultMin: hashingDomain.DefaultCalibrationMin,
		maxCost:    hashingDomain.MaxBcryptCost,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calibrator) measure(password []byte, cost int) (time.Duration, error) {
	start := c.now()
	if err := c.hash(password, cost); err != nil {
		return 0, err
	}
	return c.since(start), nil
}

// fallback returns the calibration fallback cost, lowered to the maximum when
// the maximum is below it.
func (c *Calibrator) fallback() int {
	return min(hashingDomain.CalibrationFallbackCost, c.maxCost)
}

// OptimalBcryptCost scans costs 4 through 30 (or the configured maximum) and
// returns the first one whose hash takes longer than minDuration. It returns 12
// when no cost qualifies or hashing fails. An empty password is replaced by
// "test" and a non-positive minDuration by the default minimum (250ms unless
// WithDefaultMinimum is set). ctx is checked before every timed hash.
func (c *Calibrator) OptimalBcryptCost(ctx context.Context, password string, minDuration time.Duration) (int, error) {
	if password == "" {
		password = hashingDomain.DefaultCalibrationPassword
	}
	if minDuration <= 0 {
		minDuration = c.defaultMin
	}

	last := min(c.maxCost, hashingDomain.MaxBcryptCost-1)
	for cost := hashingDomain.MinBcryptCost; cost <= last; cost++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		elapsed, err := c.measure([]byte(password), cost)
		if err != nil {
			return c.fallback(), nil
		}
		if elapsed > minDuration {
			return cost, nil
		}
	}
	return c.fallback(), nil
}

// BenchmarkCost starts one above cost and returns the first cost whose hash
// takes longer than 350ms, never exceeding the configured maximum (bcrypt's 31
// by default). A non-positive cost is treated as 12. It returns 12 when hashing
// fails. ctx is checked before every timed hash.
func (c *Calibrator) BenchmarkCost(ctx context.Context, password string, cost int) (int, error) {
	if password == "" {
		password = hashingDomain.DefaultCalibrationPassword
	}
	if cost <= 0 {
		cost = hashingDomain.RecommendedBcryptCost
	}
	if cost >= c.maxCost {
		return c.maxCost, nil
	}

	for next := max(cost+1, hashingDomain.MinBcryptCost); next < c.maxCost; next++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		elapsed, err := c.measure([]byte(password), next)
		if err != nil {
			return c.fallback(), nil
		}
		if elapsed > hashingDomain.BenchmarkTarget {
			return next, nil
		}
	}
	return c.maxCost, nil
}
