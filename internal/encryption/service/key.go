package service

import (
	"bytes"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
)

// deriveKey turns the key string into cipher key material.
//
// The string is hashed with SHA-512 and hex encoded; the first KeySize bytes of
// the 128-char hex string are the key. OpenSSL applies the same truncation when
// handed the full hex string for AES-256, so both adapters share this rule.
func deriveKey(key string) ([]byte, error) {
	if key == "" {
		return nil, encryptionDomain.ErrInvalidKey
	}

	sum := sha512.Sum512([]byte(key))
	encoded := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(encoded, sum[:])

	derived := make([]byte, encryptionDomain.KeySize)
	copy(derived, encoded[:encryptionDomain.KeySize])
	encryptionDomain.Zero(encoded)

	return derived, nil
}

// splitToken decodes a base64 token and splits it on the last delimiter.
// The trailing segment is always hex or ASCII key material and never contains
// the delimiter, so splitting on the last occurrence keeps binary payloads that
// contain "&&" reversible.
func splitToken(token string, decode func(string) ([]byte, error)) (payload, trailer []byte, err error) {
	raw, err := decode(token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid base64", encryptionDomain.ErrMalformedToken)
	}

	idx := bytes.LastIndex(raw, []byte(encryptionDomain.TokenDelimiter))
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: missing delimiter", encryptionDomain.ErrMalformedToken)
	}

	return raw[:idx], raw[idx+len(encryptionDomain.TokenDelimiter):], nil
}

// randomBytes returns n cryptographically random bytes from crypto/rand.
func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("failed to generate %d random bytes: %w", n, err)
	}
	return b, nil
}
