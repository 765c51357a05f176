package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
)

func TestAdapterManagerService_CreateAdapter(t *testing.T) {
	manager := NewAdapterManager()

	t.Run("create openssl adapter", func(t *testing.T) {
		adapter, err := manager.CreateAdapter("key", encryptionDomain.CipherOpenSSL)
		require.NoError(t, err)
		_, ok := adapter.(*OpenSSLAdapter)
		assert.True(t, ok, "adapter should be of type *OpenSSLAdapter")
	})

	t.Run("create sodium adapter", func(t *testing.T) {
		adapter, err := manager.CreateAdapter("key", encryptionDomain.CipherSodium)
		require.NoError(t, err)
		_, ok := adapter.(*SodiumAdapter)
		assert.True(t, ok, "adapter should be of type *SodiumAdapter")
	})

	t.Run("unsupported cipher", func(t *testing.T) {
		_, err := manager.CreateAdapter("key", encryptionDomain.Cipher("aes-gcm"))
		assert.ErrorIs(t, err, encryptionDomain.ErrUnsupportedCipher)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := manager.CreateAdapter("", encryptionDomain.CipherOpenSSL)
		assert.ErrorIs(t, err, encryptionDomain.ErrInvalidKey)

		_, err = manager.CreateAdapter("", encryptionDomain.CipherSodium)
		assert.ErrorIs(t, err, encryptionDomain.ErrInvalidKey)
	})

	t.Run("sodium options are forwarded", func(t *testing.T) {
		legacy := NewAdapterManager(WithEmbeddedKey())
		adapter, err := legacy.CreateAdapter("key", encryptionDomain.CipherSodium)
		require.NoError(t, err)
		assert.True(t, adapter.(*SodiumAdapter).trustEmbeddedKey)
	})

	t.Run("round trip through every cipher", func(t *testing.T) {
		for _, cipher := range []encryptionDomain.Cipher{
			encryptionDomain.CipherOpenSSL,
			encryptionDomain.CipherSodium,
		} {
			adapter, err := manager.CreateAdapter("secret", cipher)
			require.NoError(t, err)

			token, err := adapter.Encrypt([]byte("pepper"))
			require.NoError(t, err)

			plaintext, err := adapter.Decrypt(token)
			require.NoError(t, err)
			assert.Equal(t, []byte("pepper"), plaintext, string(cipher))
		}
	})
}

func TestDeriveKey(t *testing.T) {
	t.Run("deterministic hex prefix", func(t *testing.T) {
		k1, err := deriveKey("key")
		require.NoError(t, err)
		k2, err := deriveKey("key")
		require.NoError(t, err)
		assert.Equal(t, k1, k2)
		assert.Len(t, k1, encryptionDomain.KeySize)
		// sha512("key") hex starts with 8335fa56d487562d...
		assert.Equal(t, "8335fa56d487562d", string(k1[:16]))
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := deriveKey("")
		assert.ErrorIs(t, err, encryptionDomain.ErrInvalidKey)
	})
}
