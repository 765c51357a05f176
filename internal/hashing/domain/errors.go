package domain

import (
	apperrors "github.com/allisson/securepassword/internal/errors"
)

// Hashing domain errors.
var (
	// ErrUnknownConfigKey indicates an option map contained a key no algorithm understands.
	ErrUnknownConfigKey = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown config key")

	// ErrInvalidOption indicates an option value is out of range or not meaningful
	// for the selected algorithm.
	ErrInvalidOption = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid option")

	// ErrUnsupportedAlgorithm indicates an algorithm identifier is not recognized.
	ErrUnsupportedAlgorithm = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnrecognizedHash indicates a hash string matches no supported format.
	ErrUnrecognizedHash = apperrors.New("unrecognized hash format")
)
