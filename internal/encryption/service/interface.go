// Package service implements the symmetric encryption adapters that protect
// the pepper at rest: AES-256-CBC ("openssl") and XSalsa20-Poly1305 secretbox
// ("sodium").
package service

import (
	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
)

// Adapter encrypts and decrypts opaque byte strings under a key derived from
// the string the adapter was constructed with.
type Adapter interface {
	// Encrypt returns a self-describing base64 token for plaintext.
	Encrypt(plaintext []byte) (string, error)

	// Decrypt reverses Encrypt. Malformed or foreign tokens return an error,
	// never a panic.
	Decrypt(token string) ([]byte, error)

	// Cipher reports which adapter variant produced the token.
	Cipher() encryptionDomain.Cipher
}

// AdapterManager creates adapters by cipher name.
type AdapterManager interface {
	// CreateAdapter builds an adapter of the given cipher keyed by key.
	CreateAdapter(key string, cipher encryptionDomain.Cipher) (Adapter, error)
}
