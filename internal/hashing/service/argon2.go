package service

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// maxArgon2KeyLength bounds the key length read from a stored hash.
const maxArgon2KeyLength = 64

// Argon2Hasher hashes passwords with Argon2i or Argon2id and encodes the result
// as a PHC string with a 16-byte salt and a 32-byte key.
type Argon2Hasher struct {
	algorithm hashingDomain.Algorithm
	limits    hashingDomain.VerifyLimits
}

// NewArgon2iHasher creates an Argon2i hasher.
func NewArgon2iHasher(opts ...HasherOption) *Argon2Hasher {
	return &Argon2Hasher{algorithm: hashingDomain.AlgorithmArgon2i, limits: applyHasherOptions(opts)}
}

// NewArgon2idHasher creates an Argon2id hasher.
func NewArgon2idHasher(opts ...HasherOption) *Argon2Hasher {
	return &Argon2Hasher{algorithm: hashingDomain.AlgorithmArgon2id, limits: applyHasherOptions(opts)}
}

// Algorithm returns the Argon2 variant.
func (h *Argon2Hasher) Algorithm() hashingDomain.Algorithm {
	return h.algorithm
}

func (h *Argon2Hasher) derive(password, salt []byte, timeCost, memoryCost uint32, threads uint8, keyLen uint32) []byte {
	if h.algorithm == hashingDomain.AlgorithmArgon2id {
		return argon2.IDKey(password, salt, timeCost, memoryCost, threads, keyLen)
	}
	return argon2.Key(password, salt, timeCost, memoryCost, threads, keyLen)
}

// Hash hashes password with a fresh random salt.
func (h *Argon2Hasher) Hash(password []byte, cfg hashingDomain.AlgorithmConfig) (string, error) {
	cfg.Algorithm = h.algorithm
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := h.limits.CheckArgon2(cfg.MemoryCost, cfg.TimeCost, cfg.Threads); err != nil {
		return "", fmt.Errorf("%w: %v", hashingDomain.ErrInvalidOption, err)
	}

	salt, err := randomSalt()
	if err != nil {
		return "", err
	}

	key := h.derive(password, salt, cfg.TimeCost, cfg.MemoryCost, cfg.Threads, hashingDomain.Argon2KeyLength)
	defer encryptionDomain.Zero(key)

	return encodePHC(argon2Params{
		algorithm:  h.algorithm,
		version:    hashingDomain.Argon2Version,
		memoryCost: cfg.MemoryCost,
		timeCost:   cfg.TimeCost,
		threads:    cfg.Threads,
		salt:       salt,
		key:        key,
	}), nil
}

// Verify recomputes the key with the parameters stored in hash. Parameters
// above the verification limits are rejected before any key is derived.
func (h *Argon2Hasher) Verify(password []byte, hash string) (bool, error) {
	p, err := h.decode(hash)
	if err != nil {
		return false, err
	}
	if err := h.limits.CheckArgon2(p.memoryCost, p.timeCost, p.threads); err != nil {
		return false, fmt.Errorf("%w: %v", hashingDomain.ErrUnrecognizedHash, err)
	}
	if len(p.key) > maxArgon2KeyLength {
		return false, fmt.Errorf("%w: key length %d exceeds %d", hashingDomain.ErrUnrecognizedHash, len(p.key), maxArgon2KeyLength)
	}

	computed := h.derive(password, p.salt, p.timeCost, p.memoryCost, p.threads, uint32(len(p.key)))
	defer encryptionDomain.Zero(computed)

	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

// NeedsRehash reports true when cfg selects another algorithm or any of the
// memory, time or threads parameters differ.
func (h *Argon2Hasher) NeedsRehash(hash string, cfg hashingDomain.AlgorithmConfig) bool {
	if cfg.Algorithm != h.algorithm {
		return true
	}
	p, err := h.decode(hash)
	if err != nil {
		return true
	}
	return p.memoryCost != cfg.MemoryCost || p.timeCost != cfg.TimeCost || p.threads != cfg.Threads
}

// Info returns the variant and parameters encoded in hash.
func (h *Argon2Hasher) Info(hash string) (hashingDomain.HashInfo, error) {
	p, err := h.decode(hash)
	if err != nil {
		return hashingDomain.UnknownHashInfo(), err
	}
	return hashingDomain.HashInfo{
		Algorithm:     p.algorithm,
		AlgorithmName: p.algorithm.Name(),
		Options: map[string]any{
			hashingDomain.OptionMemoryCost: int(p.memoryCost),
			hashingDomain.OptionTimeCost:   int(p.timeCost),
			hashingDomain.OptionThreads:    int(p.threads),
		},
	}, nil
}

func (h *Argon2Hasher) decode(hash string) (*argon2Params, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return nil, err
	}
	if p.algorithm != h.algorithm {
		return nil, fmt.Errorf("%w: hash is %s, not %s", hashingDomain.ErrUnrecognizedHash, p.algorithm, h.algorithm)
	}
	return p, nil
}

func randomSalt() ([]byte, error) {
	salt := make([]byte, hashingDomain.Argon2SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate argon2 salt: %w", err)
	}
	return salt, nil
}
