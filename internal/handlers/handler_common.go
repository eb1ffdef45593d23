package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/SscSPs/athena_ledger/internal/core/domain"
	"github.com/SscSPs/athena_ledger/internal/middleware"
	"github.com/SscSPs/athena_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators installs the "currency" binding rule: an ISO-4217 shaped
// code that is also in the configured allow-list.
func registerValidators(cfg *config.Config) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		return domain.IsCurrencyCode(code) && cfg.IsCurrencyAllowed(code)
	})
}

// requestIdentity returns the caller's ledger scope and user id set by AuthMiddleware.
// It writes 401 and returns false when either is missing.
func requestIdentity(c *gin.Context, logger *slog.Logger) (domain.Scope, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Scope{}, "", false
	}
	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		logger.Error("Ledger scope not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Scope{}, "", false
	}
	return scope, userID, true
}

// respondServiceError maps service errors onto status codes. Internal errors
// are logged and replaced by fallbackMsg.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
