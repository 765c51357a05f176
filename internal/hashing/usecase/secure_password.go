// Package usecase implements the peppered hashing engine, bcrypt cost
// calibration and the PasswordUseCase facade consumed by the HTTP API and CLI.
//
// # Peppering
//
// Every password is turned into hex(HMAC-SHA256(key=pepper, msg=password))
// before it reaches bcrypt or Argon2. The 64-char digest stays below bcrypt's
// 72-byte limit regardless of the password length.
//
// # Verification timing
//
// Verification sleeps for a configured wait (250ms by default) on every return
// path, after the comparison, so the total time is at least comparison + wait.
//
// # Usage Example
//
//	engine := usecase.NewSecurePassword(primitive, pepperManager).UseArgon2(true, 0, 0, 0)
//	hash, err := engine.CreateHash("my_password")
//	ok, err := engine.VerifyHash("my_password", hash)
package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
	hashingService "github.com/allisson/securepassword/internal/hashing/service"
)

// SecurePassword peppers passwords and delegates hashing to a Primitive.
//
// After CreateHash it remembers the last password and hash so Verify and
// HashInfo can be called without arguments. It is not safe for concurrent use;
// create one per logical operation.
type SecurePassword struct {
	primitive hashingService.Primitive
	pepper    PepperProvider
	config    hashingDomain.AlgorithmConfig
	wait      time.Duration
	sleep     func(time.Duration)

	password string
	hash     string
}

// Option configures a SecurePassword.
type Option func(*SecurePassword)

// WithConfig sets the initial algorithm configuration.
func WithConfig(cfg hashingDomain.AlgorithmConfig) Option {
	return func(s *SecurePassword) {
		s.config = cfg
	}
}

// WithWait sets the delay applied after every verification.
func WithWait(wait time.Duration) Option {
	return func(s *SecurePassword) {
		s.wait = wait
	}
}

// WithSleep replaces time.Sleep for the post-verification delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *SecurePassword) {
		s.sleep = sleep
	}
}

// NewSecurePassword creates an engine using the default algorithm and a 250ms
// verification wait.
func NewSecurePassword(primitive hashingService.Primitive, pepper PepperProvider, opts ...Option) *SecurePassword {
	s := &SecurePassword{
		primitive: primitive,
		pepper:    pepper,
		config:    hashingDomain.DefaultConfig(),
		wait:      hashingDomain.DefaultVerifyWait,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UseDefault selects the recommended algorithm with no options.
func (s *SecurePassword) UseDefault() *SecurePassword {
	s.config = hashingDomain.DefaultConfig()
	return s
}

// UseBcrypt selects bcrypt. A zero cost selects cost 12.
func (s *SecurePassword) UseBcrypt(cost int) *SecurePassword {
	s.config = hashingDomain.BcryptConfig(cost)
	return s
}

// UseArgon2 selects Argon2i, or Argon2id when useArgon2id is set. Zero values
// select the Argon2 defaults.
func (s *SecurePassword) UseArgon2(useArgon2id bool, memoryCost, timeCost uint32, threads uint8) *SecurePassword {
	s.config = hashingDomain.Argon2Config(useArgon2id, memoryCost, timeCost, threads)
	return s
}

// UseConfig replaces the algorithm configuration.
func (s *SecurePassword) UseConfig(cfg hashingDomain.AlgorithmConfig) *SecurePassword {
	s.config = cfg
	return s
}

// Config returns the current algorithm configuration.
func (s *SecurePassword) Config() hashingDomain.AlgorithmConfig {
	return s.config
}

// SetPepper replaces the pepper used by this engine's PepperProvider.
func (s *SecurePassword) SetPepper(secret string, cipher encryptionDomain.Cipher) error {
	return s.pepper.Set(secret, cipher)
}

// Pepper returns the decrypted pepper.
func (s *SecurePassword) Pepper() (string, error) {
	return s.pepper.Pepper()
}

// peppered returns hex(HMAC-SHA256(key=pepper, msg=password)).
// The caller must zero the result.
func (s *SecurePassword) peppered(password string) ([]byte, error) {
	pepper, err := s.pepper.Pepper()
	if err != nil {
		return nil, err
	}

	key := []byte(pepper)
	mac := hmac.New(sha256.New, key)
	encryptionDomain.Zero(key)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	encryptionDomain.Zero(sum)
	return out, nil
}

// CreateHash peppers and hashes password, remembering both for Verify and Hash.
// Fails with ErrPepperUnavailable when the pepper cannot be decrypted, or with
// ErrInvalidOption when the algorithm options are out of range.
func (s *SecurePassword) CreateHash(password string) (string, error) {
	peppered, err := s.peppered(password)
	if err != nil {
		return "", err
	}
	defer encryptionDomain.Zero(peppered)

	hash, err := s.primitive.Hash(peppered, s.config)
	if err != nil {
		return "", err
	}

	s.password = password
	s.hash = hash
	return hash, nil
}

// Hash returns the hash produced by the last CreateHash.
func (s *SecurePassword) Hash() string {
	return s.hash
}

// Verify checks the remembered password against the remembered hash.
func (s *SecurePassword) Verify() (bool, error) {
	return s.VerifyHashWithWait("", "", s.wait)
}

// VerifyHash checks password against hash with the configured wait.
func (s *SecurePassword) VerifyHash(password, hash string) (bool, error) {
	return s.VerifyHashWithWait(password, hash, s.wait)
}

// VerifyHashWithWait checks password against hash, then sleeps for wait on every
// return path. Empty arguments fall back to the values remembered by CreateHash.
// A hash in an unrecognized format verifies as false. The error is non-nil only
// when the pepper is unavailable.
func (s *SecurePassword) VerifyHashWithWait(password, hash string, wait time.Duration) (bool, error) {
	defer s.sleep(wait)

	if password == "" {
		password = s.password
	}
	if hash == "" {
		hash = s.hash
	}

	if _, ok := s.primitive.Identify(hash); !ok {
		return false, nil
	}

	peppered, err := s.peppered(password)
	if err != nil {
		return false, err
	}
	defer encryptionDomain.Zero(peppered)

	valid, err := s.primitive.Verify(peppered, hash)
	if err != nil {
		// Malformed or over-limit hashes are a plain mismatch, never an error.
		return false, nil
	}
	return valid, nil
}

// NeedsRehash returns a new hash of password when hash was not produced with
// the current algorithm and options. It does not check that password matches
// hash; callers should verify first.
func (s *SecurePassword) NeedsRehash(password, hash string) (string, bool, error) {
	if !s.primitive.NeedsRehash(hash, s.config) {
		return "", false, nil
	}

	newHash, err := s.CreateHash(password)
	if err != nil {
		return "", true, err
	}
	return newHash, true, nil
}

// HashInfo returns the metadata of the remembered hash.
func (s *SecurePassword) HashInfo() hashingDomain.HashInfo {
	return s.primitive.Info(s.hash)
}

// HashInfoFor returns the metadata of hash.
func (s *SecurePassword) HashInfoFor(hash string) hashingDomain.HashInfo {
	return s.primitive.Info(hash)
}
