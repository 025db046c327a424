package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Persistence
// failures keep the driver message.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, domain.ErrBadLogin):
		respondError(c, http.StatusUnauthorized, "bad_login", err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCredential):
		respondError(c, http.StatusUnauthorized, "invalid_token", domain.ErrInvalidCredential.Error(), nil)
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, "unauthenticated", err.Error(), nil)
	case domain.IsPersistence(err):
		respondError(c, http.StatusInternalServerError, "persistence_error", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
