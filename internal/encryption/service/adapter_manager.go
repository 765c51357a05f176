package service

import (
	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
)

// AdapterManagerService implements the AdapterManager interface.
type AdapterManagerService struct {
	sodiumOpts []SodiumOption
}

// NewAdapterManager creates a new AdapterManagerService. The options are applied
// to every sodium adapter it creates.
func NewAdapterManager(sodiumOpts ...SodiumOption) *AdapterManagerService {
	return &AdapterManagerService{sodiumOpts: sodiumOpts}
}

// CreateAdapter creates an adapter for the specified cipher.
// Returns ErrInvalidKey if key is empty or ErrUnsupportedCipher if cipher is unknown.
func (m *AdapterManagerService) CreateAdapter(key string, cipher encryptionDomain.Cipher) (Adapter, error) {
	switch cipher {
	case encryptionDomain.CipherOpenSSL:
		return NewOpenSSLAdapter(key)
	case encryptionDomain.CipherSodium:
		return NewSodiumAdapter(key, m.sodiumOpts...)
	default:
		return nil, encryptionDomain.ErrUnsupportedCipher
	}
}
