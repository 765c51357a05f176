package service

import (
	"fmt"
	"strings"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// PrimitiveService implements Primitive over the bcrypt and Argon2 hashers.
type PrimitiveService struct {
	hashers map[hashingDomain.Algorithm]Hasher
}

// HasherOption configures the bcrypt and Argon2 hashers.
type HasherOption func(*hashingDomain.VerifyLimits)

// WithVerifyLimits replaces the default verification limits.
func WithVerifyLimits(limits hashingDomain.VerifyLimits) HasherOption {
	return func(l *hashingDomain.VerifyLimits) {
		*l = limits
	}
}

func applyHasherOptions(opts []HasherOption) hashingDomain.VerifyLimits {
	limits := hashingDomain.DefaultVerifyLimits()
	for _, opt := range opts {
		opt(&limits)
	}
	return limits
}

// NewPrimitive creates a PrimitiveService with bcrypt, Argon2i and Argon2id
// registered, all sharing the given options.
func NewPrimitive(opts ...HasherOption) *PrimitiveService {
	hashers := []Hasher{NewBcryptHasher(opts...), NewArgon2iHasher(opts...), NewArgon2idHasher(opts...)}

	p := &PrimitiveService{hashers: make(map[hashingDomain.Algorithm]Hasher, len(hashers))}
	for _, h := range hashers {
		p.hashers[h.Algorithm()] = h
	}
	return p
}

// Identify detects the algorithm of hash from its prefix without verifying it.
func Identify(hash string) (hashingDomain.Algorithm, bool) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return hashingDomain.AlgorithmArgon2id, true
	case strings.HasPrefix(hash, "$argon2i$"):
		return hashingDomain.AlgorithmArgon2i, true
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return hashingDomain.AlgorithmBcrypt, true
	default:
		return "", false
	}
}

// Identify detects the algorithm of hash.
func (p *PrimitiveService) Identify(hash string) (hashingDomain.Algorithm, bool) {
	return Identify(hash)
}

// Hash resolves and validates cfg, then hashes password with the selected hasher.
func (p *PrimitiveService) Hash(password []byte, cfg hashingDomain.AlgorithmConfig) (string, error) {
	resolved := cfg.Resolve()
	if err := resolved.Validate(); err != nil {
		return "", err
	}

	h, ok := p.hashers[resolved.Algorithm]
	if !ok {
		return "", fmt.Errorf("%w: %q", hashingDomain.ErrUnsupportedAlgorithm, resolved.Algorithm)
	}
	return h.Hash(password, resolved)
}

// Verify compares password with hash using the hasher that produced it.
// Returns ErrUnrecognizedHash when the hash format is not supported.
func (p *PrimitiveService) Verify(password []byte, hash string) (bool, error) {
	algorithm, ok := Identify(hash)
	if !ok {
		return false, hashingDomain.ErrUnrecognizedHash
	}
	return p.hashers[algorithm].Verify(password, hash)
}

// NeedsRehash reports whether hash differs from the resolved cfg in algorithm or
// parameters. Unrecognized hashes always need a rehash.
func (p *PrimitiveService) NeedsRehash(hash string, cfg hashingDomain.AlgorithmConfig) bool {
	algorithm, ok := Identify(hash)
	if !ok {
		return true
	}
	return p.hashers[algorithm].NeedsRehash(hash, cfg.Resolve())
}

// Info returns the metadata encoded in hash, or UnknownHashInfo when the hash
// cannot be parsed.
func (p *PrimitiveService) Info(hash string) hashingDomain.HashInfo {
	algorithm, ok := Identify(hash)
	if !ok {
		return hashingDomain.UnknownHashInfo()
	}
	info, err := p.hashers[algorithm].Info(hash)
	if err != nil {
		return hashingDomain.UnknownHashInfo()
	}
	return info
}
