// Package domain defines the hashing algorithms, their option sets and the
// metadata recovered from stored hashes.
package domain

import "time"

// Algorithm identifies a password hashing primitive. The values match the
// identifiers stored alongside hashes by password_hash, so configurations and
// HashInfo output stay interchangeable with existing deployments.
type Algorithm string

const (
	// AlgorithmDefault selects the recommended primitive (bcrypt cost 10).
	AlgorithmDefault Algorithm = "default"

	// AlgorithmBcrypt selects bcrypt.
	AlgorithmBcrypt Algorithm = "2y"

	// AlgorithmArgon2i selects Argon2i (data-independent memory access).
	AlgorithmArgon2i Algorithm = "argon2i"

	// AlgorithmArgon2id selects Argon2id.
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Bcrypt parameters.
const (
	MinBcryptCost         = 4
	MaxBcryptCost         = 31
	DefaultBcryptCost     = 10
	RecommendedBcryptCost = 12
)

// Argon2 parameters. The defaults mirror PASSWORD_ARGON2_DEFAULT_*.
const (
	DefaultArgon2MemoryCost uint32 = 65536
	DefaultArgon2TimeCost   uint32 = 4
	DefaultArgon2Threads    uint8  = 1
)

const (
	Argon2SaltLength = 16
	Argon2KeyLength  = 32
	Argon2Version    = 19
)

// Timing parameters for verification and calibration.
const (
	DefaultVerifyWait          = 250 * time.Millisecond
	DefaultCalibrationMin      = 250 * time.Millisecond
	BenchmarkTarget            = 350 * time.Millisecond
	CalibrationFallbackCost    = 12
	DefaultMaxCalibrationCost  = 16
	DefaultCalibrationPassword = "test"
)

// ParseAlgorithm converts a configuration string into an Algorithm.
// "bcrypt" is accepted as an alias of "2y".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", string(AlgorithmDefault):
		return AlgorithmDefault, nil
	case string(AlgorithmBcrypt), "bcrypt":
		return AlgorithmBcrypt, nil
	case string(AlgorithmArgon2i):
		return AlgorithmArgon2i, nil
	case string(AlgorithmArgon2id):
		return AlgorithmArgon2id, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}

// Name returns the human readable algorithm name used in HashInfo.
func (a Algorithm) Name() string {
	switch a {
	case AlgorithmBcrypt:
		return "bcrypt"
	case AlgorithmArgon2i:
		return "argon2i"
	case AlgorithmArgon2id:
		return "argon2id"
	default:
		return "unknown"
	}
}

// IsArgon2 reports whether a is one of the Argon2 variants.
func (a Algorithm) IsArgon2() bool {
	return a == AlgorithmArgon2i || a == AlgorithmArgon2id
}
