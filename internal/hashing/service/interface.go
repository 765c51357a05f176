// Package service implements the password hashing primitives (bcrypt, Argon2i,
// Argon2id) and a dispatcher that selects one from an AlgorithmConfig or from
// the format of a stored hash.
package service

import (
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// Hasher is a single hashing primitive. Implementations are stateless and safe
// for concurrent use.
type Hasher interface {
	// Algorithm returns the identifier stored with hashes produced by this hasher.
	Algorithm() hashingDomain.Algorithm

	// Hash derives a self-describing hash string for password using cfg.
	Hash(password []byte, cfg hashingDomain.AlgorithmConfig) (string, error)

	// Verify compares password against hash in constant time. A mismatch is
	// (false, nil); a hash this hasher cannot parse is (false, err).
	Verify(password []byte, hash string) (bool, error)

	// NeedsRehash reports whether hash was produced with parameters other than cfg.
	NeedsRehash(hash string, cfg hashingDomain.AlgorithmConfig) bool

	// Info recovers the algorithm and parameters encoded in hash.
	Info(hash string) (hashingDomain.HashInfo, error)
}

// Primitive dispatches hashing operations to the right Hasher.
type Primitive interface {
	Hash(password []byte, cfg hashingDomain.AlgorithmConfig) (string, error)
	Verify(password []byte, hash string) (bool, error)
	NeedsRehash(hash string, cfg hashingDomain.AlgorithmConfig) bool
	Info(hash string) hashingDomain.HashInfo
	Identify(hash string) (hashingDomain.Algorithm, bool)
}
