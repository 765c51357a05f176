package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	hashingDomain "github.com/allisson/securepassword/internal/hashing/domain"
	"github.com/allisson/securepassword/internal/hashing/http/dto"
	hashingUseCase "github.com/allisson/securepassword/internal/hashing/usecase"
)

// RunHash peppers and hashes password with the configured algorithm. When
// password is empty it is read from the first line of io.Reader so it does not
// have to appear in the shell history.
func RunHash(
	ctx context.Context,
	passwordUseCase hashingUseCase.PasswordUseCase,
	logger *slog.Logger,
	password string,
	format string,
	io IOTuple,
) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	if password == "" {
		if password, err = readLine(io, "password"); err != nil {
			return err
		}
	}

	result, err := passwordUseCase.Hash(ctx, password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	logger.Info("password hashed", slog.String("algorithm", result.Info.AlgorithmName))

	if format == formatJSON {
		return writeJSON(io.Writer, dto.MapHashResultToResponse(result))
	}

	_, _ = fmt.Fprintln(io.Writer, result.Hash)
	return nil
}

// RunVerify checks password against hash. The configured verification wait
// applies, as it does for the HTTP API.
func RunVerify(
	ctx context.Context,
	passwordUseCase hashingUseCase.PasswordUseCase,
	logger *slog.Logger,
	password string,
	hash string,
	format string,
	io IOTuple,
) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	if password == "" {
		if password, err = readLine(io, "password"); err != nil {
			return err
		}
	}

	valid, err := passwordUseCase.Verify(ctx, password, hash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	logger.Info("password verified", slog.Bool("valid", valid))

	if format == formatJSON {
		return writeJSON(io.Writer, dto.VerifyResponse{Valid: valid})
	}

	if valid {
		_, _ = fmt.Fprintln(io.Writer, "Password is valid")
	} else {
		_, _ = fmt.Fprintln(io.Writer, "Password is invalid")
	}
	return nil
}

// RunNeedsRehash reports whether hash was created with different settings than
// the configured ones and prints the replacement hash when it was.
func RunNeedsRehash(
	ctx context.Context,
	passwordUseCase hashingUseCase.PasswordUseCase,
	logger *slog.Logger,
	password string,
	hash string,
	format string,
	io IOTuple,
) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	if password == "" {
		if password, err = readLine(io, "password"); err != nil {
			return err
		}
	}

	result, err := passwordUseCase.Rehash(ctx, password, hash)
	if err != nil {
		return fmt.Errorf("failed to check rehash: %w", err)
	}

	logger.Info("rehash checked", slog.Bool("needs_rehash", result.NeedsRehash))

	if format == formatJSON {
		return writeJSON(io.Writer, dto.MapRehashResultToResponse(result))
	}

	if !result.NeedsRehash {
		_, _ = fmt.Fprintln(io.Writer, "Hash is up to date")
		return nil
	}
	_, _ = fmt.Fprintln(io.Writer, "Hash needs rehash")
	_, _ = fmt.Fprintf(io.Writer, "New hash: %s\n", result.Hash)
	return nil
}

// RunHashInfo prints the algorithm and options encoded in hash.
func RunHashInfo(
	ctx context.Context,
	passwordUseCase hashingUseCase.PasswordUseCase,
	hash string,
	format string,
	io IOTuple,
) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	info, err := passwordUseCase.Info(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to read hash info: %w", err)
	}

	if format == formatJSON {
		return writeJSON(io.Writer, dto.MapHashInfoToResponse(info))
	}

	outputInfoText(info, io)
	return nil
}

func outputInfoText(info hashingDomain.HashInfo, io IOTuple) {
	_, _ = fmt.Fprintf(io.Writer, "Algorithm: %s\n", info.AlgorithmName)
	if !info.Known() {
		return
	}
	_, _ = fmt.Fprintf(io.Writer, "Identifier: %s\n", info.Algorithm)

	keys := make([]string, 0, len(info.Options))
	for key := range info.Options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		_, _ = fmt.Fprintf(io.Writer, "%s: %v\n", key, info.Options[key])
	}
}
