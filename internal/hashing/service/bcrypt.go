package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// bcryptPrefix is the version prefix written on new hashes. golang.org/x/crypto
// emits $2a$; $2y$ is byte identical for ASCII input and is what password_hash
// writes, so stored hashes stay interchangeable.
const bcryptPrefix = "$2y$"

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	limits hashingDomain.VerifyLimits
}

// NewBcryptHasher creates a BcryptHasher with the default verification limits.
func NewBcryptHasher(opts ...HasherOption) *BcryptHasher {
	return &BcryptHasher{limits: applyHasherOptions(opts)}
}

// Algorithm returns AlgorithmBcrypt.
func (h *BcryptHasher) Algorithm() hashingDomain.Algorithm {
	return hashingDomain.AlgorithmBcrypt
}

// Hash hashes password at cfg.Cost.
func (h *BcryptHasher) Hash(password []byte, cfg hashingDomain.AlgorithmConfig) (string, error) {
	if cfg.Cost < hashingDomain.MinBcryptCost || cfg.Cost > hashingDomain.MaxBcryptCost {
		return "", fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			hashingDomain.ErrInvalidOption, cfg.Cost, hashingDomain.MinBcryptCost, hashingDomain.MaxBcryptCost)
	}
	if err := h.limits.CheckBcrypt(cfg.Cost); err != nil {
		return "", fmt.Errorf("%w: %v", hashingDomain.ErrInvalidOption, err)
	}

	hash, err := bcrypt.GenerateFromPassword(password, cfg.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password with bcrypt: %w", err)
	}
	return bcryptPrefix + string(hash[len(bcryptPrefix):]), nil
}

// Verify compares password with a $2a$, $2b$ or $2y$ hash. Hashes whose cost
// exceeds the verification limit are rejected before any work is done.
func (h *BcryptHasher) Verify(password []byte, hash string) (bool, error) {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false, fmt.Errorf("%w: %v", hashingDomain.ErrUnrecognizedHash, err)
	}
	if err := h.limits.CheckBcrypt(cost); err != nil {
		return false, fmt.Errorf("%w: %v", hashingDomain.ErrUnrecognizedHash, err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), password)
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", hashingDomain.ErrUnrecognizedHash, err)
	}
	return true, nil
}

// NeedsRehash reports true when cfg is not bcrypt or the stored cost differs.
func (h *BcryptHasher) NeedsRehash(hash string, cfg hashingDomain.AlgorithmConfig) bool {
	if cfg.Algorithm != hashingDomain.AlgorithmBcrypt {
		return true
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost != cfg.Cost
}

// Info returns the cost encoded in hash.
func (h *BcryptHasher) Info(hash string) (hashingDomain.HashInfo, error) {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return hashingDomain.UnknownHashInfo(), fmt.Errorf("%w: %v", hashingDomain.ErrUnrecognizedHash, err)
	}
	return hashingDomain.HashInfo{
		Algorithm:     hashingDomain.AlgorithmBcrypt,
		AlgorithmName: hashingDomain.AlgorithmBcrypt.Name(),
		Options:       map[string]any{hashingDomain.OptionCost: cost},
	}, nil
}
