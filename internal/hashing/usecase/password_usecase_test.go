package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
	hashingService "github.com/allisson/securepassword/internal/hashing/service"
	"github.com/allisson/securepassword/internal/hashing/usecase/mocks"
	pepperService "github.com/allisson/securepassword/internal/pepper/service"
)

func newTestUseCase(t *testing.T, cfg hashingDomain.AlgorithmConfig) PasswordUseCase {
	t.Helper()
	f := &fakeBcrypt{durations: doubling}
	return NewPasswordUseCase(hashingService.NewPrimitive(), newPepperManager(t), f.calibrator(), cfg, 0)
}

func TestPasswordUseCase_HashVerify(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, hashingDomain.BcryptConfig(4))

	result, err := uc.Hash(ctx, "my_password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Hash, "$2y$04$"))
	assert.Equal(t, hashingDomain.AlgorithmBcrypt, result.Info.Algorithm)
	assert.Equal(t, map[string]any{"cost": 4}, result.Info.Options)

	valid, err := uc.Verify(ctx, "my_password", result.Hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = uc.Verify(ctx, "other", result.Hash)
	require.NoError(t, err)
	assert.False(t, valid)

	t.Run("verify does not reuse state between calls", func(t *testing.T) {
		valid, err := uc.Verify(ctx, "", "")
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestPasswordUseCase_Rehash(t *testing.T) {
	ctx := context.Background()
	argon := newTestUseCase(t, hashingDomain.Argon2Config(false, 1024, 1, 1))
	bcryptUC := newTestUseCase(t, hashingDomain.BcryptConfig(4))

	old, err := argon.Hash(ctx, "my_password")
	require.NoError(t, err)

	result, err := bcryptUC.Rehash(ctx, "my_password", old.Hash)
	require.NoError(t, err)
	assert.True(t, result.NeedsRehash)
	assert.True(t, strings.HasPrefix(result.Hash, "$2y$04$"))

	result, err = bcryptUC.Rehash(ctx, "my_password", result.Hash)
	require.NoError(t, err)
	assert.False(t, result.NeedsRehash)
	assert.Empty(t, result.Hash)
}

func TestPasswordUseCase_Info(t *testing.T) {
	uc := newTestUseCase(t, hashingDomain.DefaultConfig())

	info, err := uc.Info(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, hashingDomain.UnknownHashInfo(), info)
}

func TestPasswordUseCase_Calibration(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, hashingDomain.DefaultConfig())

	cost, err := uc.OptimalBcryptCost(ctx, "secret", 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 11, cost)

	cost, err = uc.BenchmarkCost(ctx, "secret", 10)
	require.NoError(t, err)
	assert.Equal(t, 13, cost)
}

func TestPasswordUseCase_PepperUnavailable(t *testing.T) {
	pepper := &mocks.MockPepperProvider{}
	pepper.On("Pepper").Return("", pepperService.ErrPepperUnavailable)

	uc := NewPasswordUseCase(hashingService.NewPrimitive(), pepper, NewCalibrator(), hashingDomain.BcryptConfig(4), 0)

	result, err := uc.Hash(context.Background(), "my_password")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, pepperService.ErrPepperUnavailable)

	result2, err := uc.Rehash(context.Background(), "my_password", "unknown")
	assert.Nil(t, result2)
	assert.ErrorIs(t, err, pepperService.ErrPepperUnavailable)
}

func TestPasswordUseCase_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pepper := &mocks.MockPepperProvider{}
	uc := NewPasswordUseCase(hashingService.NewPrimitive(), pepper, NewCalibrator(), hashingDomain.DefaultConfig(), 0)

	_, err := uc.Hash(ctx, "pw")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = uc.Verify(ctx, "pw", "$2y$10$x")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = uc.Rehash(ctx, "pw", "x")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = uc.Info(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = uc.OptimalBcryptCost(ctx, "pw", time.Second)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = uc.BenchmarkCost(ctx, "pw", 12)
	assert.ErrorIs(t, err, context.Canceled)

	pepper.AssertNotCalled(t, "Pepper")
}
