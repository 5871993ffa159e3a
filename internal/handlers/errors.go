package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/postad/postad-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps a service error onto its HTTP status
func respondServiceError(c *gin.Context, err error) {
	var fieldErr *pkgerrors.FieldError
	switch {
	case errors.As(err, &fieldErr):
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed",
			[]ValidationError{{Field: fieldErr.Field, Message: fieldErr.Message}}, err)
	case errors.Is(err, pkgerrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, pkgerrors.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", err)
	case errors.Is(err, pkgerrors.ErrTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "File too large", err)
	case errors.Is(err, pkgerrors.ErrUnavailable):
		respondError(c, http.StatusServiceUnavailable, "Service unavailable", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		respondError(c, http.StatusGatewayTimeout, "Request timed out", err)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
