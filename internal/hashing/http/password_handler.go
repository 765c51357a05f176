// Package http provides HTTP handlers for password hashing and bcrypt cost calibration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/securepassword/internal/hashing/http/dto"
	hashingUseCase "github.com/allisson/securepassword/internal/hashing/usecase"
	"github.com/allisson/securepassword/internal/httputil"
	customValidation "github.com/allisson/securepassword/internal/validation"
)

// PasswordHandler handles HTTP requests for hashing, verifying and inspecting passwords.
// Request bodies carry plaintext passwords, so only errors and outcomes are logged.
type PasswordHandler struct {
	passwordUseCase hashingUseCase.PasswordUseCase
	logger          *slog.Logger
}

// NewPasswordHandler creates a new password handler with required dependencies.
func NewPasswordHandler(
	passwordUseCase hashingUseCase.PasswordUseCase,
	logger *slog.Logger,
) *PasswordHandler {
	return &PasswordHandler{
		passwordUseCase: passwordUseCase,
		logger:          logger,
	}
}

// HashHandler peppers and hashes a password with the configured algorithm.
// POST /v1/passwords/hash
// Returns 200 OK with the hash and its metadata.
func (h *PasswordHandler) HashHandler(c *gin.Context) {
	var req dto.HashRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.passwordUseCase.Hash(c.Request.Context(), req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHashResultToResponse(result))
}

// VerifyHandler checks a password against a stored hash.
// POST /v1/passwords/verify
// Returns 200 OK with valid set to the outcome. A mismatch is not an error.
func (h *PasswordHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	valid, err := h.passwordUseCase.Verify(c.Request.Context(), req.Password, req.Hash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: valid})
}

// RehashHandler reports whether a stored hash is outdated and returns its replacement.
// POST /v1/passwords/rehash
// Callers must verify the password first; this endpoint does not authenticate it.
func (h *PasswordHandler) RehashHandler(c *gin.Context) {
	var req dto.RehashRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.passwordUseCase.Rehash(c.Request.Context(), req.Password, req.Hash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRehashResultToResponse(result))
}

// InfoHandler returns the algorithm and options encoded in a hash.
// POST /v1/passwords/info
// Unrecognized hashes return 200 OK with algorithm_name "unknown".
func (h *PasswordHandler) InfoHandler(c *gin.Context) {
	var req dto.InfoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	info, err := h.passwordUseCase.Info(c.Request.Context(), req.Hash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHashInfoToResponse(info))
}
