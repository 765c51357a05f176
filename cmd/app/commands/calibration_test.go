package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	usecaseMocks "github.com/allisson/securepassword/internal/hashing/usecase/mocks"
)

func TestRunOptimalBcryptCost(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("text output", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		mockUseCase.On("OptimalBcryptCost", mock.Anything, "", 100*time.Millisecond).Return(11, nil)

		ioTuple, out := newTestIO("")
		err := RunOptimalBcryptCost(ctx, mockUseCase, logger, "", 100, "text", ioTuple)
		require.NoError(t, err)
		assert.Equal(t, "Cost: 11\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json output with default minimum", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		mockUseCase.On("OptimalBcryptCost", mock.Anything, "sample", time.Duration(0)).Return(10, nil)

		ioTuple, out := newTestIO("")
		err := RunOptimalBcryptCost(ctx, mockUseCase, logger, "sample", 0, "json", ioTuple)
		require.NoError(t, err)
		assert.JSONEq(t, `{"cost":10}`, out.String())
	})

	t.Run("out of range minimum", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		ioTuple, _ := newTestIO("")

		err := RunOptimalBcryptCost(ctx, mockUseCase, logger, "", -1, "text", ioTuple)
		require.Error(t, err)
		err = RunOptimalBcryptCost(ctx, mockUseCase, logger, "", 10001, "text", ioTuple)
		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "OptimalBcryptCost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("use case error", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		mockUseCase.On("OptimalBcryptCost", mock.Anything, "", 100*time.Millisecond).
			Return(0, errors.New("boom"))

		ioTuple, _ := newTestIO("")
		err := RunOptimalBcryptCost(ctx, mockUseCase, logger, "", 100, "text", ioTuple)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to calibrate bcrypt cost")
	})
}

func TestRunBenchmarkCost(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("text output", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		mockUseCase.On("BenchmarkCost", mock.Anything, "", 10).Return(13, nil)

		ioTuple, out := newTestIO("")
		err := RunBenchmarkCost(ctx, mockUseCase, logger, "", 10, "text", ioTuple)
		require.NoError(t, err)
		assert.Equal(t, "Cost: 13\n", out.String())
	})

	t.Run("json output", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		mockUseCase.On("BenchmarkCost", mock.Anything, "sample", 0).Return(14, nil)

		ioTuple, out := newTestIO("")
		err := RunBenchmarkCost(ctx, mockUseCase, logger, "sample", 0, "json", ioTuple)
		require.NoError(t, err)
		assert.JSONEq(t, `{"cost":14}`, out.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		ioTuple, _ := newTestIO("")
		err := RunBenchmarkCost(ctx, mockUseCase, logger, "", 10, "csv", ioTuple)
		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "BenchmarkCost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("use case error", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockPasswordUseCase{}
		mockUseCase.On("BenchmarkCost", mock.Anything, "", 10).Return(0, context.Canceled)

		ioTuple, _ := newTestIO("")
		err := RunBenchmarkCost(ctx, mockUseCase, logger, "", 10, "text", ioTuple)
		require.ErrorIs(t, err, context.Canceled)
	})
}
