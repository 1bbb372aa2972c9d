package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/estately/internal/database/service"
)

// StatusValidationFailed is the status the API historically returns for
// validation failures and signup conflicts. Clients depend on it.
const StatusValidationFailed = 411

// respondError writes the API's error body and stops the handler chain.
// Every error path must go through here exactly once; handlers return
// immediately after calling it.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}

// handleServiceError maps service errors to HTTP responses. forbiddenMsg is
// the operation-specific ownership message.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, forbiddenMsg string) {
	if ve, ok := service.AsValidationError(err); ok {
		respondError(c, StatusValidationFailed, ve.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, StatusValidationFailed, "Email already taken")
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(c, StatusValidationFailed, "Username already taken")
	case errors.Is(err, service.ErrWrongCredentials):
		respondError(c, http.StatusUnauthorized, "Wrong credentials!")
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found!")
	case errors.Is(err, service.ErrListingNotFound):
		respondError(c, http.StatusNotFound, "Listing not found!")
	case errors.Is(err, service.ErrNotOwner):
		respondError(c, http.StatusForbidden, forbiddenMsg)
	default:
		logger.Error("❌ [Handler] Internal server error", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
