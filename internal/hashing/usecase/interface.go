package usecase

import (
	"context"
	"time"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// PepperProvider supplies the decrypted pepper and accepts replacements.
type PepperProvider interface {
	Pepper() (string, error)
	Set(secret string, cipher encryptionDomain.Cipher) error
}

// PasswordUseCase defines the password hashing operations exposed to the HTTP
// API and the CLI. Each call works on its own SecurePassword engine.
type PasswordUseCase interface {
	// Hash peppers and hashes password with the configured algorithm.
	Hash(ctx context.Context, password string) (*hashingDomain.HashResult, error)

	// Verify checks password against hash. The call always takes at least the
	// configured verification wait.
	Verify(ctx context.Context, password, hash string) (bool, error)

	// Rehash returns a fresh hash when hash does not match the configured
	// algorithm and options. It does not authenticate password.
	Rehash(ctx context.Context, password, hash string) (*hashingDomain.RehashResult, error)

	// Info returns the metadata encoded in hash.
	Info(ctx context.Context, hash string) (hashingDomain.HashInfo, error)

	// OptimalBcryptCost returns the lowest bcrypt cost slower than minDuration.
	OptimalBcryptCost(ctx context.Context, password string, minDuration time.Duration) (int, error)

	// BenchmarkCost returns the first cost above cost slower than the benchmark target.
	BenchmarkCost(ctx context.Context, password string, cost int) (int, error)
}
