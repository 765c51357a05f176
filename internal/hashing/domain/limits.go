package domain

import "fmt"

// Default ceilings on the work a stored hash may demand from the verifier.
const (
	DefaultMaxVerifyBcryptCost       = 16
	DefaultMaxVerifyArgon2MemoryCost = 1 << 20 // KiB, 1 GiB
	DefaultMaxVerifyArgon2TimeCost   = 16
	DefaultMaxVerifyArgon2Threads    = 16
)

// VerifyLimits bounds the parameters accepted from a hash before it is
// recomputed. Hashes above a limit are treated as unrecognized. Configs above a
// limit are rejected when hashing.
type VerifyLimits struct {
	MaxBcryptCost       int
	MaxArgon2MemoryCost uint32
	MaxArgon2TimeCost   uint32
	MaxArgon2Threads    uint8
}

// DefaultVerifyLimits returns the default ceilings.
func DefaultVerifyLimits() VerifyLimits {
	return VerifyLimits{
		MaxBcryptCost:       DefaultMaxVerifyBcryptCost,
		MaxArgon2MemoryCost: DefaultMaxVerifyArgon2MemoryCost,
		MaxArgon2TimeCost:   DefaultMaxVerifyArgon2TimeCost,
		MaxArgon2Threads:    DefaultMaxVerifyArgon2Threads,
	}
}

// CheckBcrypt reports an error when cost exceeds MaxBcryptCost.
func (l VerifyLimits) CheckBcrypt(cost int) error {
	if cost > l.MaxBcryptCost {
		return fmt.Errorf("bcrypt cost %d exceeds limit %d", cost, l.MaxBcryptCost)
	}
	return nil
}

// CheckArgon2 reports an error when any Argon2 parameter exceeds its limit.
func (l VerifyLimits) CheckArgon2(memoryCost, timeCost uint32, threads uint8) error {
	switch {
	case memoryCost > l.MaxArgon2MemoryCost:
		return fmt.Errorf("argon2 memory cost %d KiB exceeds limit %d", memoryCost, l.MaxArgon2MemoryCost)
	case timeCost > l.MaxArgon2TimeCost:
		return fmt.Errorf("argon2 time cost %d exceeds limit %d", timeCost, l.MaxArgon2TimeCost)
	case threads > l.MaxArgon2Threads:
		return fmt.Errorf("argon2 threads %d exceeds limit %d", threads, l.MaxArgon2Threads)
	default:
		return nil
	}
}

// Check applies the limits to a config about to be used for hashing.
func (l VerifyLimits) Check(cfg AlgorithmConfig) error {
	r := cfg.Resolve()
	var err error
	switch {
	case r.Algorithm == AlgorithmBcrypt:
		err = l.CheckBcrypt(r.Cost)
	case r.Algorithm.IsArgon2():
		err = l.CheckArgon2(r.MemoryCost, r.TimeCost, r.Threads)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	return nil
}
