// Package domain defines the cipher identifiers, token layout constants and
// errors shared by the pepper encryption adapters.
package domain

// Cipher names the encryption adapter used to protect a pepper at rest.
//
// The values match the names accepted by configuration and the CLI:
//   - CipherOpenSSL selects AES-256-CBC with a per-adapter IV
//   - CipherSodium selects XSalsa20-Poly1305 (NaCl secretbox) with a per-call nonce
type Cipher string

const (
	// CipherOpenSSL represents the AES-256-CBC adapter.
	//
	// CBC provides confidentiality only. A corrupted or foreign token can decrypt
	// to garbage instead of failing, so callers must never treat a successful
	// decryption as proof of integrity.
	CipherOpenSSL Cipher = "openssl"

	// CipherSodium represents the XSalsa20-Poly1305 secretbox adapter.
	//
	// Key features:
	//   - 32-byte key
	//   - 24-byte random nonce per encryption
	//   - 16-byte Poly1305 authenticator
	CipherSodium Cipher = "sodium"
)

// TokenDelimiter separates the ciphertext segment from the trailing IV or key
// segment inside a decoded token.
const TokenDelimiter = "&&"

// KeySize is the key length in bytes used by both adapters.
const KeySize = 32

// ParseCipher converts a configuration string into a Cipher.
func ParseCipher(name string) (Cipher, error) {
	switch Cipher(name) {
	case CipherOpenSSL:
		return CipherOpenSSL, nil
	case CipherSodium:
		return CipherSodium, nil
	default:
		return "", ErrUnsupportedCipher
	}
}
