package domain

import (
	"github.com/allisson/securepassword/internal/errors"
)

// Encryption adapter error definitions.
//
// Construction errors wrap errors.ErrInvalidInput. Decryption errors are plain
// sentinels: the pepper layer decides how they surface to callers.
var (
	// ErrInvalidKey indicates an adapter was constructed with an empty key.
	ErrInvalidKey = errors.Wrap(errors.ErrInvalidInput, "invalid key")

	// ErrUnsupportedCipher indicates the requested cipher name is unknown.
	//
	// Supported ciphers: "openssl" (AES-256-CBC), "sodium" (XSalsa20-Poly1305).
	ErrUnsupportedCipher = errors.Wrap(errors.ErrInvalidInput, "unsupported cipher")

	// ErrMalformedToken indicates the token cannot be parsed: invalid base64,
	// missing delimiter, invalid IV encoding or a truncated payload.
	ErrMalformedToken = errors.New("malformed token")

	// ErrAuthenticationFailed indicates the secretbox authenticator did not match.
	// The token was tampered with or was sealed under another key.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrDecryptionFailed indicates the CBC adapter produced no plaintext
	// (bad ciphertext encoding, block misalignment or invalid padding).
	ErrDecryptionFailed = errors.New("decryption failed")
)
