package usecase

import (
	"context"
	"time"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
	hashingService "github.com/allisson/securepassword/internal/hashing/service"
)

// passwordUseCase implements PasswordUseCase. The PepperProvider and Primitive
// are shared; a SecurePassword is built for every call.
type passwordUseCase struct {
	primitive  hashingService.Primitive
	pepper     PepperProvider
	calibrator *Calibrator
	config     hashingDomain.AlgorithmConfig
	wait       time.Duration
}

// NewPasswordUseCase creates a PasswordUseCase hashing with cfg and sleeping
// wait after every verification.
func NewPasswordUseCase(
	primitive hashingService.Primitive,
	pepper PepperProvider,
	calibrator *Calibrator,
	cfg hashingDomain.AlgorithmConfig,
	wait time.Duration,
) PasswordUseCase {
	return &passwordUseCase{
		primitive:  primitive,
		pepper:     pepper,
		calibrator: calibrator,
		config:     cfg,
		wait:       wait,
	}
}

func (p *passwordUseCase) engine() *SecurePassword {
	return NewSecurePassword(p.primitive, p.pepper, WithConfig(p.config), WithWait(p.wait))
}

// Hash peppers and hashes password.
func (p *passwordUseCase) Hash(ctx context.Context, password string) (*hashingDomain.HashResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engine := p.engine()
	hash, err := engine.CreateHash(password)
	if err != nil {
		return nil, err
	}
	return &hashingDomain.HashResult{Hash: hash, Info: engine.HashInfo()}, nil
}

// Verify checks password against hash.
func (p *passwordUseCase) Verify(ctx context.Context, password, hash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return p.engine().VerifyHash(password, hash)
}

// Rehash produces a new hash when hash is outdated.
func (p *passwordUseCase) Rehash(ctx context.Context, password, hash string) (*hashingDomain.RehashResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	newHash, needsRehash, err := p.engine().NeedsRehash(password, hash)
	if err != nil {
		return nil, err
	}
	return &hashingDomain.RehashResult{NeedsRehash: needsRehash, Hash: newHash}, nil
}

// Info returns the metadata encoded in hash.
func (p *passwordUseCase) Info(ctx context.Context, hash string) (hashingDomain.HashInfo, error) {
	if err := ctx.Err(); err != nil {
		return hashingDomain.HashInfo{}, err
	}
	return p.primitive.Info(hash), nil
}

// OptimalBcryptCost runs the bcrypt calibration scan.
func (p *passwordUseCase) OptimalBcryptCost(
	ctx context.Context,
	password string,
	minDuration time.Duration,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.calibrator.OptimalBcryptCost(ctx, password, minDuration)
}

// BenchmarkCost runs the bcrypt benchmark starting above cost.
func (p *passwordUseCase) BenchmarkCost(ctx context.Context, password string, cost int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.calibrator.BenchmarkCost(ctx, password, cost)
}
