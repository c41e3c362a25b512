// Package handlers wires the HTTP surface. Handlers bind and validate the
// request shape, pull the caller identity from the request context, delegate
// to a service facade and translate the outcome into a status code. No
// business rule lives here.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
)

// respondError maps a service failure onto an HTTP status. Sentinel wrapping
// in the service layer is what makes this single switch sufficient.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

func respondUnauthorized(c *gin.Context, logger *slog.Logger) {
	logger.Error("User ID not found in context")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
