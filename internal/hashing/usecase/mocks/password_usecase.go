// Package mocks provides mock implementations of the hashing use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
)

// MockPasswordUseCase is a mock implementation of PasswordUseCase for testing.
type MockPasswordUseCase struct {
	mock.Mock
}

// Hash mocks the Hash method of PasswordUseCase.
func (m *MockPasswordUseCase) Hash(ctx context.Context, password string) (*hashingDomain.HashResult, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hashingDomain.HashResult), args.Error(1)
}

// Verify mocks the Verify method of PasswordUseCase.
func (m *MockPasswordUseCase) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

// Rehash mocks the Rehash method of PasswordUseCase.
func (m *MockPasswordUseCase) Rehash(
	ctx context.Context,
	password, hash string,
) (*hashingDomain.RehashResult, error) {
	args := m.Called(ctx, password, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hashingDomain.RehashResult), args.Error(1)
}

// Info mocks the Info method of PasswordUseCase.
func (m *MockPasswordUseCase) Info(ctx context.Context, hash string) (hashingDomain.HashInfo, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(hashingDomain.HashInfo), args.Error(1)
}

// OptimalBcryptCost mocks the OptimalBcryptCost method of PasswordUseCase.
func (m *MockPasswordUseCase) OptimalBcryptCost(
	ctx context.Context,
	password string,
	minDuration time.Duration,
) (int, error) {
	args := m.Called(ctx, password, minDuration)
	return args.Int(0), args.Error(1)
}

// BenchmarkCost mocks the BenchmarkCost method of PasswordUseCase.
func (m *MockPasswordUseCase) BenchmarkCost(ctx context.Context, password string, cost int) (int, error) {
	args := m.Called(ctx, password, cost)
	return args.Int(0), args.Error(1)
}

// MockPepperProvider is a mock implementation of PepperProvider for testing.
type MockPepperProvider struct {
	mock.Mock
}

// Pepper mocks the Pepper method of PepperProvider.
func (m *MockPepperProvider) Pepper() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// Set mocks the Set method of PepperProvider.
func (m *MockPepperProvider) Set(secret string, cipher encryptionDomain.Cipher) error {
	args := m.Called(secret, cipher)
	return args.Error(0)
}
