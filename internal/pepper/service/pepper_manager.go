// Package service manages the server-held pepper mixed into every password
// before hashing. The pepper is kept encrypted in memory and only decrypted
// for the duration of a single peppering call.
package service

import (
	"sync"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	encryptionService "github.com/allisson/securepassword/internal/encryption/service"
	apperrors "github.com/allisson/securepassword/internal/errors"
)

// DefaultPepper is the pepper installed by NewManager until Set is called.
// Deployments must replace it.
const DefaultPepper = "default_hash"

// ErrPepperUnavailable indicates the stored pepper could not be decrypted.
// Hashing and verification must fail closed when they see it.
var ErrPepperUnavailable = apperrors.Wrap(apperrors.ErrUnavailable, "pepper unavailable")

// Manager owns the encrypted pepper and the adapter that can decrypt it.
// It is safe for concurrent use.
type Manager struct {
	adapterManager encryptionService.AdapterManager

	mu      sync.RWMutex
	adapter encryptionService.Adapter
	token   string
	cipher  encryptionDomain.Cipher
}

// NewManager creates a Manager holding DefaultPepper under the openssl cipher.
func NewManager(adapterManager encryptionService.AdapterManager) (*Manager, error) {
	m := &Manager{adapterManager: adapterManager}
	if err := m.Set(DefaultPepper, encryptionDomain.CipherOpenSSL); err != nil {
		return nil, err
	}
	return m, nil
}

// Set replaces the pepper. The secret keys a new adapter of the given cipher and
// is stored only in its encrypted form. On error the previous pepper is kept.
func (m *Manager) Set(secret string, cipher encryptionDomain.Cipher) error {
	adapter, err := m.adapterManager.CreateAdapter(secret, cipher)
	if err != nil {
		return err
	}

	plaintext := []byte(secret)
	token, err := adapter.Encrypt(plaintext)
	encryptionDomain.Zero(plaintext)
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt pepper")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.adapter = adapter
	m.token = token
	m.cipher = cipher
	return nil
}

// Pepper decrypts and returns the current pepper.
// Any decryption failure is reported as ErrPepperUnavailable; the token is never
// returned in its place.
func (m *Manager) Pepper() (string, error) {
	m.mu.RLock()
	adapter, token := m.adapter, m.token
	m.mu.RUnlock()

	if adapter == nil {
		return "", ErrPepperUnavailable
	}

	plaintext, err := adapter.Decrypt(token)
	if err != nil {
		return "", apperrors.Join(ErrPepperUnavailable, err)
	}
	defer encryptionDomain.Zero(plaintext)

	return string(plaintext), nil
}

// Token returns the encrypted pepper token.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Cipher returns the cipher protecting the pepper.
func (m *Manager) Cipher() encryptionDomain.Cipher {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cipher
}
