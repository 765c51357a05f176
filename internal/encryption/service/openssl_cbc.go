package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
)

// OpenSSLAdapter implements Adapter using AES-256-CBC with PKCS#7 padding.
//
// Token layout (byte compatible with openssl_encrypt in its default base64 mode):
//
//	base64( base64(ciphertext) || "&&" || hex(iv) )
//
// One random IV is drawn per adapter instance and reused by every Encrypt call
// on it. Each instance is expected to encrypt a single pepper; create a new
// adapter for every new secret.
//
// CBC carries no integrity check. Decrypting a token produced under another key
// usually fails the padding check, but may return garbage instead.
type OpenSSLAdapter struct {
	key []byte
	iv  []byte
}

// NewOpenSSLAdapter creates an AES-256-CBC adapter keyed by key.
// Returns ErrInvalidKey when key is empty.
func NewOpenSSLAdapter(key string) (*OpenSSLAdapter, error) {
	derived, err := deriveKey(key)
	if err != nil {
		return nil, err
	}

	iv, err := randomBytes(aes.BlockSize)
	if err != nil {
		return nil, err
	}

	return &OpenSSLAdapter{key: derived, iv: iv}, nil
}

// Cipher returns CipherOpenSSL.
func (a *OpenSSLAdapter) Cipher() encryptionDomain.Cipher {
	return encryptionDomain.CipherOpenSSL
}

// Encrypt pads plaintext, encrypts it under the instance IV and returns the token.
func (a *OpenSSLAdapter) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(a.key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, a.iv).CryptBlocks(ciphertext, padded)
	encryptionDomain.Zero(padded)

	var inner bytes.Buffer
	inner.WriteString(base64.StdEncoding.EncodeToString(ciphertext))
	inner.WriteString(encryptionDomain.TokenDelimiter)
	inner.WriteString(hex.EncodeToString(a.iv))

	return base64.StdEncoding.EncodeToString(inner.Bytes()), nil
}

// Decrypt parses the token and decrypts it with the instance key.
//
// Returns ErrMalformedToken when the token is not base64, has no delimiter or
// carries an IV that is not 16 hex-encoded bytes. Returns ErrDecryptionFailed
// when the ciphertext segment cannot be decoded or the padding is invalid.
// The IV embedded in the token is used for this call only.
func (a *OpenSSLAdapter) Decrypt(token string) ([]byte, error) {
	encoded, ivHex, err := splitToken(token, base64.StdEncoding.DecodeString)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, hex.DecodedLen(len(ivHex)))
	if _, err := hex.Decode(iv, ivHex); err != nil {
		return nil, fmt.Errorf("%w: invalid iv encoding", encryptionDomain.ErrMalformedToken)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: invalid iv length %d", encryptionDomain.ErrMalformedToken, len(iv))
	}

	ciphertext, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ciphertext encoding", encryptionDomain.ErrDecryptionFailed)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not block aligned", encryptionDomain.ErrDecryptionFailed)
	}

	block, err := aes.NewCipher(a.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		encryptionDomain.Zero(padded)
		return nil, err
	}
	return plaintext, nil
}

// pkcs7Pad appends PKCS#7 padding to a copy of src. A full block is appended
// when src is already block aligned.
func pkcs7Pad(src []byte, blockSize int) []byte {
	padding := blockSize - (len(src) % blockSize)
	out := make([]byte, len(src), len(src)+padding)
	copy(out, src)
	return append(out, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// pkcs7Unpad validates and strips PKCS#7 padding.
func pkcs7Unpad(src []byte, blockSize int) ([]byte, error) {
	length := len(src)
	if length == 0 || length%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length", encryptionDomain.ErrDecryptionFailed)
	}

	padding := int(src[length-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("%w: invalid padding", encryptionDomain.ErrDecryptionFailed)
	}
	for i := length - padding; i < length; i++ {
		if src[i] != byte(padding) {
			return nil, fmt.Errorf("%w: invalid padding", encryptionDomain.ErrDecryptionFailed)
		}
	}
	return src[:length-padding], nil
}
