package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	encryptionDomain "github.com/allisson/securepassword/internal/encryption/domain"
	encryptionService "github.com/allisson/securepassword/internal/encryption/service"
	pepperService "github.com/allisson/securepassword/internal/pepper/service"
)

// Bounds for generated pepper length in bytes.
const (
	DefaultPepperLength = 32
	MinPepperLength     = 16
	MaxPepperLength     = 1024
)

// RunGeneratePepper prints a random pepper of length bytes, hex encoded and
// ready to be used as PEPPER_SECRET.
func RunGeneratePepper(length int, format string, io IOTuple) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	if length < MinPepperLength || length > MaxPepperLength {
		return fmt.Errorf(
			"invalid length: %d (must be between %d and %d bytes)",
			length,
			MinPepperLength,
			MaxPepperLength,
		)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate pepper: %w", err)
	}
	secret := hex.EncodeToString(buf)
	encryptionDomain.Zero(buf)

	if format == formatJSON {
		return writeJSON(io.Writer, map[string]any{
			"pepper": secret,
			"length": length,
		})
	}

	_, _ = fmt.Fprintln(io.Writer, "# Add this to your .env file:")
	_, _ = fmt.Fprintf(io.Writer, "PEPPER_SECRET=%s\n", secret)
	return nil
}

// RunEncryptPepper encrypts secret with the named cipher the way the pepper
// manager stores it and prints the resulting token. When secret is empty it is
// read from the first line of io.Reader.
func RunEncryptPepper(
	adapterManager encryptionService.AdapterManager,
	logger *slog.Logger,
	secret string,
	cipherName string,
	format string,
	io IOTuple,
) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}

	cipher, err := encryptionDomain.ParseCipher(cipherName)
	if err != nil {
		return err
	}

	if secret == "" {
		if secret, err = readLine(io, "secret"); err != nil {
			return err
		}
	}

	manager, err := pepperService.NewManager(adapterManager)
	if err != nil {
		return fmt.Errorf("failed to create pepper manager: %w", err)
	}
	if err := manager.Set(secret, cipher); err != nil {
		return fmt.Errorf("failed to encrypt pepper: %w", err)
	}

	logger.Info("pepper encrypted", slog.String("cipher", string(cipher)))

	if format == formatJSON {
		return writeJSON(io.Writer, map[string]any{
			"cipher": string(manager.Cipher()),
			"token":  manager.Token(),
		})
	}

	_, _ = fmt.Fprintf(io.Writer, "Cipher: %s\n", manager.Cipher())
	_, _ = fmt.Fprintf(io.Writer, "Token: %s\n", manager.Token())
	return nil
}
