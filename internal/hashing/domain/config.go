package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Option keys accepted by ParseAlgorithmConfig.
const (
	OptionAlgo       = "algo"
	OptionCost       = "cost"
	OptionMemoryCost = "memory_cost"
	OptionTimeCost   = "time_cost"
	OptionThreads    = "threads"
)

// AlgorithmConfig is an immutable algorithm choice plus its options. Only the
// fields relevant to Algorithm are meaningful; the others are zero.
type AlgorithmConfig struct {
	Algorithm  Algorithm
	Cost       int
	MemoryCost uint32
	TimeCost   uint32
	Threads    uint8
}

// DefaultConfig selects the recommended primitive with no options.
func DefaultConfig() AlgorithmConfig {
	return AlgorithmConfig{Algorithm: AlgorithmDefault}
}

// BcryptConfig selects bcrypt. A zero cost picks RecommendedBcryptCost.
func BcryptConfig(cost int) AlgorithmConfig {
	if cost == 0 {
		cost = RecommendedBcryptCost
	}
	return AlgorithmConfig{Algorithm: AlgorithmBcrypt, Cost: cost}
}

// Argon2Config selects Argon2i, or Argon2id when useArgon2id is set.
// Zero values pick the Argon2 defaults.
func Argon2Config(useArgon2id bool, memoryCost, timeCost uint32, threads uint8) AlgorithmConfig {
	algorithm := AlgorithmArgon2i
	if useArgon2id {
		algorithm = AlgorithmArgon2id
	}
	if memoryCost == 0 {
		memoryCost = DefaultArgon2MemoryCost
	}
	if timeCost == 0 {
		timeCost = DefaultArgon2TimeCost
	}
	if threads == 0 {
		threads = DefaultArgon2Threads
	}
	return AlgorithmConfig{
		Algorithm:  algorithm,
		MemoryCost: memoryCost,
		TimeCost:   timeCost,
		Threads:    threads,
	}
}

// ParseAlgorithmConfig builds a config from an option map with the keys
// algo, cost, memory_cost, time_cost and threads. A missing algo selects the
// default algorithm. Unknown keys fail with ErrUnknownConfigKey; keys that do
// not apply to the chosen algorithm fail with ErrInvalidOption.
func ParseAlgorithmConfig(options map[string]any) (AlgorithmConfig, error) {
	for key := range options {
		switch key {
		case OptionAlgo, OptionCost, OptionMemoryCost, OptionTimeCost, OptionThreads:
		default:
			return AlgorithmConfig{}, fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
		}
	}

	algorithm := AlgorithmDefault
	if raw, ok := options[OptionAlgo]; ok {
		name, ok := raw.(string)
		if !ok {
			return AlgorithmConfig{}, fmt.Errorf("%w: algo must be a string", ErrInvalidOption)
		}
		parsed, err := ParseAlgorithm(name)
		if err != nil {
			return AlgorithmConfig{}, err
		}
		algorithm = parsed
	}

	values := make(map[string]uint64, len(options))
	for key, raw := range options {
		if key == OptionAlgo {
			continue
		}
		if !appliesTo(algorithm, key) {
			return AlgorithmConfig{}, fmt.Errorf("%w: %q does not apply to %s", ErrInvalidOption, key, algorithm)
		}
		v, err := toUint(raw)
		if err != nil {
			return AlgorithmConfig{}, fmt.Errorf("%w: %q: %v", ErrInvalidOption, key, err)
		}
		values[key] = v
	}

	switch algorithm {
	case AlgorithmBcrypt:
		cost, ok := values[OptionCost]
		if !ok {
			return BcryptConfig(0), nil
		}
		if cost > MaxBcryptCost {
			return AlgorithmConfig{}, fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidOption, cost)
		}
		return AlgorithmConfig{Algorithm: AlgorithmBcrypt, Cost: int(cost)}, nil
	case AlgorithmArgon2i, AlgorithmArgon2id:
		if values[OptionMemoryCost] > math.MaxUint32 || values[OptionTimeCost] > math.MaxUint32 ||
			values[OptionThreads] > math.MaxUint8 {
			return AlgorithmConfig{}, fmt.Errorf("%w: argon2 option out of range", ErrInvalidOption)
		}
		return Argon2Config(
			algorithm == AlgorithmArgon2id,
			uint32(values[OptionMemoryCost]),
			uint32(values[OptionTimeCost]),
			uint8(values[OptionThreads]),
		), nil
	default:
		cfg := DefaultConfig()
		if cost, ok := values[OptionCost]; ok {
			if cost > MaxBcryptCost {
				return AlgorithmConfig{}, fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidOption, cost)
			}
			cfg.Cost = int(cost)
		}
		return cfg, nil
	}
}

func appliesTo(algorithm Algorithm, key string) bool {
	switch key {
	case OptionCost:
		return algorithm == AlgorithmBcrypt || algorithm == AlgorithmDefault
	case OptionMemoryCost, OptionTimeCost, OptionThreads:
		return algorithm.IsArgon2()
	default:
		return false
	}
}

func toUint(raw any) (uint64, error) {
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative value %d", v)
		}
		return uint64(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative value %d", v)
		}
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxUint32 {
			return 0, fmt.Errorf("not a non-negative integer: %v", v)
		}
		return uint64(v), nil
	case json.Number:
		return strconv.ParseUint(v.String(), 10, 64)
	case string:
		return strconv.ParseUint(v, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
}

// Resolve returns the concrete config used for hashing. The default algorithm
// becomes bcrypt with its cost (DefaultBcryptCost when unset); every other
// config is returned unchanged.
func (c AlgorithmConfig) Resolve() AlgorithmConfig {
	if c.Algorithm != AlgorithmDefault && c.Algorithm != "" {
		return c
	}
	cost := c.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return AlgorithmConfig{Algorithm: AlgorithmBcrypt, Cost: cost}
}

// Validate reports ErrInvalidOption when a parameter is out of range for the
// resolved algorithm, or ErrUnsupportedAlgorithm for an unknown algorithm.
func (c AlgorithmConfig) Validate() error {
	r := c.Resolve()
	switch r.Algorithm {
	case AlgorithmBcrypt:
		if r.Cost < MinBcryptCost || r.Cost > MaxBcryptCost {
			return fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
				ErrInvalidOption, r.Cost, MinBcryptCost, MaxBcryptCost)
		}
		return nil
	case AlgorithmArgon2i, AlgorithmArgon2id:
		if r.TimeCost < 1 {
			return fmt.Errorf("%w: argon2 time cost must be at least 1", ErrInvalidOption)
		}
		if r.Threads < 1 {
			return fmt.Errorf("%w: argon2 threads must be at least 1", ErrInvalidOption)
		}
		if r.MemoryCost < 8*uint32(r.Threads) {
			return fmt.Errorf("%w: argon2 memory cost %d KiB must be at least 8 x threads",
				ErrInvalidOption, r.MemoryCost)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, r.Algorithm)
	}
}

// Options returns the option set in password_get_info form.
func (c AlgorithmConfig) Options() map[string]any {
	switch {
	case c.Algorithm.IsArgon2():
		return map[string]any{
			OptionMemoryCost: int(c.MemoryCost),
			OptionTimeCost:   int(c.TimeCost),
			OptionThreads:    int(c.Threads),
		}
	case c.Cost != 0:
		return map[string]any{OptionCost: c.Cost}
	default:
		return map[string]any{}
	}
}
