package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/allisson/securepassword/internal/hashing/http/dto"
	hashingUseCase "github.com/allisson/securepassword/internal/hashing/usecase"
)

// RunOptimalBcryptCost prints the lowest bcrypt cost whose hash takes longer
// than minMS milliseconds on this machine. A zero minMS uses the configured
// calibration minimum.
func RunOptimalBcryptCost(
	ctx context.Context,
	passwordUseCase hashingUseCase.PasswordUseCase,
	logger *slog.Logger,
	password string,
	minMS int,
	format string,
	io IOTuple,
) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	if minMS < 0 || minMS > dto.MaxCalibrationMS {
		return fmt.Errorf("invalid min-ms: %d (must be between 0 and %d)", minMS, dto.MaxCalibrationMS)
	}

	logger.Info("calibrating bcrypt cost", slog.Int("min_ms", minMS))

	cost, err := passwordUseCase.OptimalBcryptCost(ctx, password, time.Duration(minMS)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to calibrate bcrypt cost: %w", err)
	}

	return outputCost(cost, format, io)
}

// RunBenchmarkCost prints the first bcrypt cost above cost that is slower than
// the benchmark target.
func RunBenchmarkCost(
	ctx context.Context,
	passwordUseCase hashingUseCase.PasswordUseCase,
	logger *slog.Logger,
	password string,
	cost int,
	format string,
	io IOTuple,
) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	logger.Info("benchmarking bcrypt cost", slog.Int("cost", cost))

	result, err := passwordUseCase.BenchmarkCost(ctx, password, cost)
	if err != nil {
		return fmt.Errorf("failed to benchmark bcrypt cost: %w", err)
	}

	return outputCost(result, format, io)
}

func outputCost(cost int, format string, io IOTuple) error {
	if format == formatJSON {
		return writeJSON(io.Writer, dto.CostResponse{Cost: cost})
	}
	_, _ = fmt.Fprintf(io.Writer, "Cost: %d\n", cost)
	return nil
}
