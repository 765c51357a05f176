// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
	customValidation "github.com/allisson/securepassword/internal/validation"
)

// Input limits for password endpoints.
const (
	MaxPasswordLength = 4096
	MaxHashLength     = 1024
	MaxCalibrationMS  = 10000
)

// HashRequest contains the password to hash.
type HashRequest struct {
	Password string `json:"password"` //nolint:gosec // request field, never logged
}

// Validate checks if the hash request is valid.
func (r *HashRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, MaxPasswordLength),
		),
	)
}

// VerifyRequest contains a password and the stored hash to check it against.
type VerifyRequest struct {
	Password string `json:"password"` //nolint:gosec // request field, never logged
	Hash     string `json:"hash"`
}

// Validate checks if the verify request is valid.
func (r *VerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, MaxPasswordLength),
		),
		validation.Field(&r.Hash,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, MaxHashLength),
		),
	)
}

// RehashRequest contains a password and the stored hash that may need replacing.
type RehashRequest struct {
	Password string `json:"password"` //nolint:gosec // request field, never logged
	Hash     string `json:"hash"`
}

// Validate checks if the rehash request is valid.
func (r *RehashRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, MaxPasswordLength),
		),
		validation.Field(&r.Hash,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, MaxHashLength),
		),
	)
}

// InfoRequest contains the hash to inspect.
type InfoRequest struct {
	Hash string `json:"hash"`
}

// Validate checks if the info request is valid.
func (r *InfoRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Hash,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, MaxHashLength),
		),
	)
}

// OptimalBcryptCostRequest contains the calibration password and the minimum
// duration in milliseconds. Zero values select the defaults.
type OptimalBcryptCostRequest struct {
	Password string `json:"password"` //nolint:gosec // request field, never logged
	MinMS    int    `json:"min_ms"`
}

// Validate checks if the calibration request is valid.
func (r *OptimalBcryptCostRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Length(0, MaxPasswordLength)),
		validation.Field(&r.MinMS, validation.Min(0), validation.Max(MaxCalibrationMS)),
	)
}

// BenchmarkCostRequest contains the benchmark password and the cost to start
// above. A zero cost selects the recommended bcrypt cost.
type BenchmarkCostRequest struct {
	Password string `json:"password"` //nolint:gosec // request field, never logged
	Cost     int    `json:"cost"`
}

// Validate checks if the benchmark request is valid.
func (r *BenchmarkCostRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Length(0, MaxPasswordLength)),
		validation.Field(&r.Cost, validation.Min(0), validation.Max(hashingDomain.MaxBcryptCost)),
	)
}
