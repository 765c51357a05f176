// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	apperrors "github.com/allisson/securepassword/internal/errors"
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// CipherName validates that a string names a supported pepper cipher.
// Empty strings pass so Required can decide.
var CipherName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := encryptionDomain.ParseCipher(s)
		return err == nil
	},
	validation.NewError("validation_cipher", "must be one of: openssl, sodium"),
)

// AlgorithmName validates that a string names a supported hashing algorithm.
var AlgorithmName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := hashingDomain.ParseAlgorithm(s)
		return err == nil
	},
	validation.NewError("validation_algorithm", "must be one of: default, 2y, bcrypt, argon2i, argon2id"),
)

// HashOptions validates an option map accepted by ParseAlgorithmConfig.
var HashOptions = validation.By(func(value interface{}) error {
	options, ok := value.(map[string]any)
	if !ok {
		return validation.NewError("validation_hash_options_type", "must be an object")
	}
	if len(options) == 0 {
		return nil
	}
	cfg, err := hashingDomain.ParseAlgorithmConfig(options)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return validation.NewError("validation_hash_options", err.Error())
	}
	return nil
})
