package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/logger"
	"moneta/internal/models"
	"moneta/internal/services"
)

// getPrincipal builds the acting principal from the authenticated request
// context. Returns ErrUnauthorized if the auth middleware did not run.
func getPrincipal(c *gin.Context) (services.Principal, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return services.Principal{}, apperrors.ErrUnauthorized
	}
	role, exists := c.Get("userRole")
	if !exists {
		return services.Principal{}, apperrors.ErrUnauthorized
	}
	return services.Principal{
		ID:   userID.(string),
		Role: role.(models.Role),
	}, nil
}

// parseQueryInt parses an integer query parameter, required. Returns
// ErrInvalidInput when missing or malformed.
func parseQueryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" query parameter is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name)
	}
	return n, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
