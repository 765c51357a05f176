package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		hash     string
		expected hashingDomain.Algorithm
		ok       bool
	}{
		{hash: "$2y$10$abc", expected: hashingDomain.AlgorithmBcrypt, ok: true},
		{hash: "$2a$10$abc", expected: hashingDomain.AlgorithmBcrypt, ok: true},
		{hash: "$2b$10$abc", expected: hashingDomain.AlgorithmBcrypt, ok: true},
		{hash: "$argon2i$v=19$", expected: hashingDomain.AlgorithmArgon2i, ok: true},
		{hash: "$argon2id$v=19$", expected: hashingDomain.AlgorithmArgon2id, ok: true},
		{hash: "$1$md5crypt"},
		{hash: "plain"},
		{hash: ""},
	}

	for _, tt := range tests {
		t.Run(tt.hash, func(t *testing.T) {
			algorithm, ok := Identify(tt.hash)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, algorithm)
		})
	}
}

func TestPrimitiveService(t *testing.T) {
	p := NewPrimitive()
	password := []byte("peppered-password")

	t.Run("default resolves to bcrypt cost 10", func(t *testing.T) {
		hash, err := p.Hash(password, hashingDomain.DefaultConfig())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2y$10$"), hash)

		assert.False(t, p.NeedsRehash(hash, hashingDomain.DefaultConfig()))
		assert.False(t, p.NeedsRehash(hash, hashingDomain.BcryptConfig(10)))
		assert.True(t, p.NeedsRehash(hash, hashingDomain.BcryptConfig(12)))
	})

	configs := []hashingDomain.AlgorithmConfig{
		hashingDomain.BcryptConfig(4),
		hashingDomain.Argon2Config(false, 1024, 1, 1),
		hashingDomain.Argon2Config(true, 1024, 1, 1),
	}
	for _, cfg := range configs {
		t.Run(string(cfg.Algorithm), func(t *testing.T) {
			hash, err := p.Hash(password, cfg)
			require.NoError(t, err)

			algorithm, ok := p.Identify(hash)
			require.True(t, ok)
			assert.Equal(t, cfg.Algorithm, algorithm)

			valid, err := p.Verify(password, hash)
			require.NoError(t, err)
			assert.True(t, valid)

			valid, err = p.Verify([]byte("other"), hash)
			require.NoError(t, err)
			assert.False(t, valid)

			assert.False(t, p.NeedsRehash(hash, cfg))

			info := p.Info(hash)
			assert.Equal(t, cfg.Algorithm, info.Algorithm)
			assert.Equal(t, cfg.Options(), info.Options)
		})
	}

	t.Run("argon2i hash needs rehash under bcrypt", func(t *testing.T) {
		hash, err := p.Hash(password, hashingDomain.Argon2Config(false, 1024, 1, 1))
		require.NoError(t, err)
		assert.True(t, p.NeedsRehash(hash, hashingDomain.BcryptConfig(4)))
		assert.True(t, p.NeedsRehash(hash, hashingDomain.Argon2Config(true, 1024, 1, 1)))
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := p.Hash(password, hashingDomain.BcryptConfig(50))
		assert.ErrorIs(t, err, hashingDomain.ErrInvalidOption)

		_, err = p.Hash(password, hashingDomain.AlgorithmConfig{Algorithm: "scrypt"})
		assert.ErrorIs(t, err, hashingDomain.ErrUnsupportedAlgorithm)
	})

	t.Run("unrecognized hash", func(t *testing.T) {
		valid, err := p.Verify(password, "not-a-hash")
		assert.False(t, valid)
		assert.ErrorIs(t, err, hashingDomain.ErrUnrecognizedHash)

		assert.True(t, p.NeedsRehash("not-a-hash", hashingDomain.DefaultConfig()))
		assert.Equal(t, hashingDomain.UnknownHashInfo(), p.Info("not-a-hash"))
		assert.Equal(t, hashingDomain.UnknownHashInfo(), p.Info("$argon2i$broken"))
	})
}
