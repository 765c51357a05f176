package service

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

func TestArgon2Hasher(t *testing.T) {
	tests := []struct {
		name   string
		hasher *Argon2Hasher
		cfg    hashingDomain.AlgorithmConfig
		prefix string
	}{
		{
			name:   "argon2i",
			hasher: NewArgon2iHasher(),
			cfg:    hashingDomain.Argon2Config(false, 1024, 1, 1),
			prefix: "$argon2i$v=19$m=1024,t=1,p=1$",
		},
		{
			name:   "argon2id",
			hasher: NewArgon2idHasher(),
			cfg:    hashingDomain.Argon2Config(true, 2048, 2, 2),
			prefix: "$argon2id$v=19$m=2048,t=2,p=2$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := tt.hasher.Hash([]byte("my_password"), tt.cfg)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, tt.prefix), hash)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			salt, err := base64.RawStdEncoding.DecodeString(parts[4])
			require.NoError(t, err)
			assert.Len(t, salt, hashingDomain.Argon2SaltLength)
			key, err := base64.RawStdEncoding.DecodeString(parts[5])
			require.NoError(t, err)
			assert.Len(t, key, hashingDomain.Argon2KeyLength)

			ok, err := tt.hasher.Verify([]byte("my_password"), hash)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = tt.hasher.Verify([]byte("wrong"), hash)
			require.NoError(t, err)
			assert.False(t, ok)

			other, err := tt.hasher.Hash([]byte("my_password"), tt.cfg)
			require.NoError(t, err)
			assert.NotEqual(t, hash, other, "salt must be random")

			assert.False(t, tt.hasher.NeedsRehash(hash, tt.cfg))
			changed := tt.cfg
			changed.TimeCost++
			assert.True(t, tt.hasher.NeedsRehash(hash, changed))
			assert.True(t, tt.hasher.NeedsRehash(hash, hashingDomain.BcryptConfig(10)))

			info, err := tt.hasher.Info(hash)
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Algorithm, info.Algorithm)
			assert.Equal(t, tt.name, info.AlgorithmName)
			assert.Equal(t, map[string]any{
				"memory_cost": int(tt.cfg.MemoryCost),
				"time_cost":   int(tt.cfg.TimeCost),
				"threads":     int(tt.cfg.Threads),
			}, info.Options)
		})
	}

	t.Run("variant mismatch", func(t *testing.T) {
		hash, err := NewArgon2idHasher().Hash([]byte("pw"), hashingDomain.Argon2Config(true, 1024, 1, 1))
		require.NoError(t, err)

		ok, err := NewArgon2iHasher().Verify([]byte("pw"), hash)
		assert.False(t, ok)
		assert.ErrorIs(t, err, hashingDomain.ErrUnrecognizedHash)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewArgon2iHasher().Hash([]byte("pw"), hashingDomain.AlgorithmConfig{MemoryCost: 1024, Threads: 1})
		assert.ErrorIs(t, err, hashingDomain.ErrInvalidOption)
	})
}

// argon2Hash builds a well-formed PHC string without deriving a key.
func argon2Hash(variant, params string) string {
	salt := base64.RawStdEncoding.EncodeToString([]byte("saltsaltsaltsalt"))
	key := base64.RawStdEncoding.EncodeToString(make([]byte, hashingDomain.Argon2KeyLength))
	return "$" + variant + "$v=19$" + params + "$" + salt + "$" + key
}

func TestArgon2Hasher_VerifyLimits(t *testing.T) {
	t.Run("parameters above the defaults are rejected without deriving", func(t *testing.T) {
		hashes := map[string]string{
			"max memory":   argon2Hash("argon2i", "m=4294967295,t=1,p=1"),
			"4 GiB memory": argon2Hash("argon2i", "m=4194304,t=3,p=1"),
			"max time":     argon2Hash("argon2i", "m=1024,t=4294967295,p=1"),
			"255 threads":  argon2Hash("argon2i", "m=1024,t=1,p=255"),
			"argon2id":     argon2Hash("argon2id", "m=4294967295,t=4294967295,p=255"),
		}
		for name, hash := range hashes {
			t.Run(name, func(t *testing.T) {
				h := NewArgon2iHasher()
				if strings.HasPrefix(hash, "$argon2id$") {
					h = NewArgon2idHasher()
				}

				start := time.Now()
				ok, err := h.Verify([]byte("x"), hash)

				assert.False(t, ok)
				assert.ErrorIs(t, err, hashingDomain.ErrUnrecognizedHash)
				assert.Less(t, time.Since(start), time.Second)
			})
		}
	})

	t.Run("oversized key is rejected", func(t *testing.T) {
		salt := base64.RawStdEncoding.EncodeToString([]byte("saltsaltsaltsalt"))
		key := base64.RawStdEncoding.EncodeToString(make([]byte, 1<<20))

		ok, err := NewArgon2iHasher().Verify([]byte("x"), "$argon2i$v=19$m=1024,t=1,p=1$"+salt+"$"+key)
		assert.False(t, ok)
		assert.ErrorIs(t, err, hashingDomain.ErrUnrecognizedHash)
	})

	t.Run("custom limits", func(t *testing.T) {
		limits := hashingDomain.DefaultVerifyLimits()
		limits.MaxArgon2MemoryCost = 1024
		h := NewArgon2idHasher(WithVerifyLimits(limits))

		hash, err := h.Hash([]byte("pw"), hashingDomain.Argon2Config(true, 1024, 1, 1))
		require.NoError(t, err)
		ok, err := h.Verify([]byte("pw"), hash)
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = h.Hash([]byte("pw"), hashingDomain.Argon2Config(true, 2048, 1, 1))
		assert.ErrorIs(t, err, hashingDomain.ErrInvalidOption)

		bigger, err := NewArgon2idHasher().Hash([]byte("pw"), hashingDomain.Argon2Config(true, 2048, 1, 1))
		require.NoError(t, err)
		ok, err = h.Verify([]byte("pw"), bigger)
		assert.False(t, ok)
		assert.ErrorIs(t, err, hashingDomain.ErrUnrecognizedHash)
	})

	t.Run("hash above the default limits is refused", func(t *testing.T) {
		_, err := NewArgon2iHasher().Hash([]byte("pw"), hashingDomain.Argon2Config(false, 1024, 17, 1))
		assert.ErrorIs(t, err, hashingDomain.ErrInvalidOption)

		_, err = NewArgon2iHasher().Hash([]byte("pw"), hashingDomain.Argon2Config(false, 1024, 1, 17))
		assert.ErrorIs(t, err, hashingDomain.ErrInvalidOption)
	})
}

func TestDecodePHC(t *testing.T) {
	valid := "$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g"

	t.Run("valid", func(t *testing.T) {
		p, err := decodePHC(valid)
		require.NoError(t, err)
		assert.Equal(t, hashingDomain.AlgorithmArgon2i, p.algorithm)
		assert.Equal(t, 19, p.version)
		assert.Equal(t, uint32(1024), p.memoryCost)
		assert.Equal(t, uint32(1), p.timeCost)
		assert.Equal(t, uint8(1), p.threads)
		assert.Equal(t, []byte("saltsaltsaltsalt"), p.salt)
		assert.Equal(t, encodePHC(*p), valid)
	})

	invalid := map[string]string{
		"empty":            "",
		"too few segments": "$argon2i$v=19$m=1024,t=1,p=1$salt",
		"no leading $":     "argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA$",
		"argon2d":          "$argon2d$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"version 16":       "$argon2i$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"no version":       "$argon2i$19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"missing param":    "$argon2i$v=19$m=1024,t=1$c2FsdA$aGFzaA",
		"unknown param":    "$argon2i$v=19$m=1024,t=1,x=1$c2FsdA$aGFzaA",
		"zero threads":     "$argon2i$v=19$m=1024,t=1,p=0$c2FsdA$aGFzaA",
		"threads overflow": "$argon2i$v=19$m=1024,t=1,p=256$c2FsdA$aGFzaA",
		"bad number":       "$argon2i$v=19$m=abc,t=1,p=1$c2FsdA$aGFzaA",
		"bad salt":         "$argon2i$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"empty key":        "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$",
	}
	for name, hash := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := decodePHC(hash)
			assert.ErrorIs(t, err, hashingDomain.ErrUnrecognizedHash)
		})
	}
}
