package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	encryptionService "github.com/allisson/securepassword/internal/encryption/service"
	apperrors "github.com/allisson/securepassword/internal/errors"
)

type mockAdapter struct {
	mock.Mock
}

func (m *mockAdapter) Encrypt(plaintext []byte) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *mockAdapter) Decrypt(token string) ([]byte, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockAdapter) Cipher() encryptionDomain.Cipher {
	return encryptionDomain.CipherSodium
}

type mockAdapterManager struct {
	mock.Mock
}

func (m *mockAdapterManager) CreateAdapter(
	key string,
	cipher encryptionDomain.Cipher,
) (encryptionService.Adapter, error) {
	args := m.Called(key, cipher)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(encryptionService.Adapter), args.Error(1)
}

func TestNewManager(t *testing.T) {
	t.Run("installs default pepper", func(t *testing.T) {
		manager, err := NewManager(encryptionService.NewAdapterManager())
		require.NoError(t, err)

		assert.Equal(t, encryptionDomain.CipherOpenSSL, manager.Cipher())
		assert.NotEmpty(t, manager.Token())
		assert.NotEqual(t, DefaultPepper, manager.Token())

		pepper, err := manager.Pepper()
		require.NoError(t, err)
		assert.Equal(t, DefaultPepper, pepper)
	})

	t.Run("adapter creation fails", func(t *testing.T) {
		adapterManager := &mockAdapterManager{}
		adapterManager.On("CreateAdapter", DefaultPepper, encryptionDomain.CipherOpenSSL).
			Return(nil, encryptionDomain.ErrUnsupportedCipher).
			Once()

		manager, err := NewManager(adapterManager)
		assert.Nil(t, manager)
		assert.ErrorIs(t, err, encryptionDomain.ErrUnsupportedCipher)
		adapterManager.AssertExpectations(t)
	})
}

func TestManager_Set(t *testing.T) {
	manager, err := NewManager(encryptionService.NewAdapterManager())
	require.NoError(t, err)

	for _, cipher := range []encryptionDomain.Cipher{
		encryptionDomain.CipherSodium,
		encryptionDomain.CipherOpenSSL,
	} {
		t.Run(string(cipher), func(t *testing.T) {
			require.NoError(t, manager.Set("euyq74tjfdskjFDSGq74", cipher))
			assert.Equal(t, cipher, manager.Cipher())

			pepper, err := manager.Pepper()
			require.NoError(t, err)
			assert.Equal(t, "euyq74tjfdskjFDSGq74", pepper)
		})
	}

	t.Run("invalid input keeps previous pepper", func(t *testing.T) {
		require.NoError(t, manager.Set("kept", encryptionDomain.CipherSodium))
		token := manager.Token()

		err := manager.Set("", encryptionDomain.CipherSodium)
		assert.ErrorIs(t, err, encryptionDomain.ErrInvalidKey)

		err = manager.Set("other", encryptionDomain.Cipher("rot13"))
		assert.ErrorIs(t, err, encryptionDomain.ErrUnsupportedCipher)

		assert.Equal(t, token, manager.Token())
		pepper, err := manager.Pepper()
		require.NoError(t, err)
		assert.Equal(t, "kept", pepper)
	})

	t.Run("encrypt fails", func(t *testing.T) {
		adapter := &mockAdapter{}
		adapter.On("Encrypt", []byte("secret")).Return("", errors.New("entropy exhausted")).Once()

		defaultAdapter, err := encryptionService.NewOpenSSLAdapter(DefaultPepper)
		require.NoError(t, err)

		adapterManager := &mockAdapterManager{}
		adapterManager.On("CreateAdapter", DefaultPepper, encryptionDomain.CipherOpenSSL).
			Return(defaultAdapter, nil).
			Once()
		adapterManager.On("CreateAdapter", "secret", encryptionDomain.CipherSodium).Return(adapter, nil).Once()

		m, err := NewManager(adapterManager)
		require.NoError(t, err)

		err = m.Set("secret", encryptionDomain.CipherSodium)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encrypt pepper")
		assert.Equal(t, encryptionDomain.CipherOpenSSL, m.Cipher())
		adapter.AssertExpectations(t)
		adapterManager.AssertExpectations(t)
	})
}

func TestManager_Pepper(t *testing.T) {
	t.Run("decrypt failure fails closed", func(t *testing.T) {
		adapter := &mockAdapter{}
		adapter.On("Encrypt", []byte("secret")).Return("token", nil).Once()
		adapter.On("Decrypt", "token").Return(nil, encryptionDomain.ErrAuthenticationFailed).Once()

		adapterManager := &mockAdapterManager{}
		adapterManager.On("CreateAdapter", mock.Anything, mock.Anything).Return(adapter, nil)

		m := &Manager{adapterManager: adapterManager}
		require.NoError(t, m.Set("secret", encryptionDomain.CipherSodium))

		pepper, err := m.Pepper()
		assert.Empty(t, pepper)
		assert.ErrorIs(t, err, ErrPepperUnavailable)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.ErrorIs(t, err, encryptionDomain.ErrAuthenticationFailed)
		adapter.AssertExpectations(t)
	})

	t.Run("zero value manager", func(t *testing.T) {
		m := &Manager{}
		pepper, err := m.Pepper()
		assert.Empty(t, pepper)
		assert.ErrorIs(t, err, ErrPepperUnavailable)
	})

	t.Run("concurrent readers and writer", func(t *testing.T) {
		m, err := NewManager(encryptionService.NewAdapterManager())
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 20; j++ {
					pepper, err := m.Pepper()
					assert.NoError(t, err)
					assert.Contains(t, []string{DefaultPepper, "rotated"}, pepper)
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Set("rotated", encryptionDomain.CipherSodium))
		}()
		wg.Wait()
	})
}
