package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/pkg/apperrors"
	"github.com/edutech/studify/internal/pkg/logger"
)

// ErrorHandler serializes any error attached to the context into the
// uniform failure envelope. Handlers attach errors with c.Error and return;
// nothing is swallowed and internals never leak to the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		HandleAPIError(c, c.Errors.Last().Err)
	}
}

// HandleAPIError maps an error to its HTTP status and writes the envelope.
func HandleAPIError(c *gin.Context, err error) {
	status, reason := classify(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		resp := dto.NewErrorResponse(status, reason, "an unexpected error occurred", c.Request.URL.Path)
		c.AbortWithStatusJSON(status, resp)
		return
	}

	resp := dto.NewErrorResponse(status, reason, err.Error(), c.Request.URL.Path)
	if fields := fieldErrorsOf(err); len(fields) > 0 {
		resp = resp.WithFieldErrors(fields)
	}
	c.AbortWithStatusJSON(status, resp)
}

func classify(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, "Bad Request"
	case apperrors.Is(err, apperrors.ErrBusinessRule, apperrors.ErrCourseFull):
		return http.StatusBadRequest, "Bad Request"
	case apperrors.Is(err, apperrors.ErrInvalidCredentials,
		apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid, apperrors.ErrAccountDisabled):
		return http.StatusUnauthorized, "Unauthorized"
	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, "Forbidden"
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, "Not Found"
	case apperrors.Is(err, apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists, apperrors.ErrUsernameExists,
		apperrors.ErrDepartmentAlreadyExists, apperrors.ErrCourseCodeExists,
		apperrors.ErrAlreadyEnrolled):
		return http.StatusConflict, "Conflict"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func fieldErrorsOf(err error) map[string]string {
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || len(custom.Details) == 0 {
		return nil
	}

	fields := make(map[string]string, len(custom.Details))
	for name, value := range custom.Details {
		fields[name] = fmt.Sprintf("%v", value)
	}
	return fields
}
