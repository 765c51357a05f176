package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/securepassword/internal/hashing/http/dto"
	hashingUseCase "github.com/allisson/securepassword/internal/hashing/usecase"
	"github.com/allisson/securepassword/internal/httputil"
	customValidation "github.com/allisson/securepassword/internal/validation"
)

// CalibrationHandler handles HTTP requests for bcrypt cost calibration.
// Calibration hashes repeatedly and can take seconds per request.
type CalibrationHandler struct {
	passwordUseCase hashingUseCase.PasswordUseCase
	logger          *slog.Logger
}

// NewCalibrationHandler creates a new calibration handler with required dependencies.
func NewCalibrationHandler(
	passwordUseCase hashingUseCase.PasswordUseCase,
	logger *slog.Logger,
) *CalibrationHandler {
	return &CalibrationHandler{
		passwordUseCase: passwordUseCase,
		logger:          logger,
	}
}

// OptimalBcryptCostHandler returns the lowest bcrypt cost whose hash takes longer than min_ms.
// POST /v1/calibration/bcrypt
func (h *CalibrationHandler) OptimalBcryptCostHandler(c *gin.Context) {
	var req dto.OptimalBcryptCostRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	minDuration := time.Duration(req.MinMS) * time.Millisecond
	cost, err := h.passwordUseCase.OptimalBcryptCost(c.Request.Context(), req.Password, minDuration)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CostResponse{Cost: cost})
}

// BenchmarkCostHandler returns the first bcrypt cost above cost that exceeds the benchmark target.
// POST /v1/calibration/benchmark
func (h *CalibrationHandler) BenchmarkCostHandler(c *gin.Context) {
	var req dto.BenchmarkCostRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	cost, err := h.passwordUseCase.BenchmarkCost(c.Request.Context(), req.Password, req.Cost)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CostResponse{Cost: cost})
}
