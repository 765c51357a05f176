package service

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
)

const (
	// sodiumNonceSize is the secretbox nonce length (crypto_secretbox_NONCEBYTES).
	sodiumNonceSize = 24
)

// SodiumAdapter implements Adapter using XSalsa20-Poly1305 (NaCl secretbox).
//
// Token layout (byte compatible with libsodium crypto_secretbox tokens):
//
//	base64( nonce || sealed || "&&" || derivedKey )
//
// The derived key is embedded in every token. By default Decrypt ignores it and
// opens the box with the adapter's own key, so a token alone is not enough to
// recover the plaintext. WithEmbeddedKey restores opening with the key found in
// the token, for interop with tokens written by older deployments.
type SodiumAdapter struct {
	key              [encryptionDomain.KeySize]byte
	trustEmbeddedKey bool
}

// SodiumOption configures a SodiumAdapter.
type SodiumOption func(*SodiumAdapter)

// WithEmbeddedKey makes Decrypt open boxes with the key embedded in the token.
// Anyone holding such a token can decrypt it; enable only for legacy interop.
func WithEmbeddedKey() SodiumOption {
	return func(a *SodiumAdapter) {
		a.trustEmbeddedKey = true
	}
}

// NewSodiumAdapter creates a secretbox adapter keyed by key.
// Returns ErrInvalidKey when key is empty.
func NewSodiumAdapter(key string, opts ...SodiumOption) (*SodiumAdapter, error) {
	derived, err := deriveKey(key)
	if err != nil {
		return nil, err
	}

	a := &SodiumAdapter{}
	copy(a.key[:], derived)
	encryptionDomain.Zero(derived)

	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Cipher returns CipherSodium.
func (a *SodiumAdapter) Cipher() encryptionDomain.Cipher {
	return encryptionDomain.CipherSodium
}

// Encrypt seals plaintext under a fresh random nonce and returns the token.
func (a *SodiumAdapter) Encrypt(plaintext []byte) (string, error) {
	nonceBytes, err := randomBytes(sodiumNonceSize)
	if err != nil {
		return "", err
	}

	var nonce [sodiumNonceSize]byte
	copy(nonce[:], nonceBytes)

	out := make([]byte, 0, sodiumNonceSize+secretbox.Overhead+len(plaintext)+
		len(encryptionDomain.TokenDelimiter)+encryptionDomain.KeySize)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, &a.key)
	out = append(out, encryptionDomain.TokenDelimiter...)
	out = append(out, a.key[:]...)

	token := base64.StdEncoding.EncodeToString(out)
	encryptionDomain.Zero(out)
	return token, nil
}

// Decrypt parses the token and opens the box.
//
// Returns ErrMalformedToken when the token is not base64, has no delimiter or
// is shorter than nonce plus authenticator. Returns ErrAuthenticationFailed when
// the box does not open.
func (a *SodiumAdapter) Decrypt(token string) ([]byte, error) {
	payload, embeddedKey, err := splitToken(token, base64.StdEncoding.DecodeString)
	if err != nil {
		return nil, err
	}

	if len(payload) < sodiumNonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("%w: token was truncated", encryptionDomain.ErrMalformedToken)
	}

	key := a.key
	if a.trustEmbeddedKey {
		if len(embeddedKey) != encryptionDomain.KeySize {
			return nil, fmt.Errorf("%w: invalid embedded key length", encryptionDomain.ErrMalformedToken)
		}
		copy(key[:], embeddedKey)
	}
	defer encryptionDomain.Zero(key[:])

	var nonce [sodiumNonceSize]byte
	copy(nonce[:], payload[:sodiumNonceSize])

	plaintext, ok := secretbox.Open(nil, payload[sodiumNonceSize:], &nonce, &key)
	if !ok {
		return nil, encryptionDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
