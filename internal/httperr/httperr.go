package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/logger"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// InvalidRequest reports a binding or domain validation failure, naming the
// first offending field when it is known.
func InvalidRequest(c *gin.Context, err error) {
	resp := HTTPError{Code: "invalid_request", Message: "Invalid request."}

	var ve ValidationError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		resp.Field = ve.Field
		resp.Message = ve.Reason
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		resp.Field = fe.Field()
		resp.Message = "failed on '" + fe.Tag() + "' rule"
	default:
		resp.Message = err.Error()
	}

	c.JSON(http.StatusBadRequest, resp)
}

// FromError maps use case and store errors onto the HTTP surface.
func FromError(c *gin.Context, err error) {
	var ve ValidationError
	var be BusinessError
	var ae AuthenticationError

	switch {
	case errors.As(err, &ve):
		InvalidRequest(c, err)
	case errors.As(err, &ae):
		BadRequest(c, "authentication_failed", ae.Reason)
	case errors.As(err, &be):
		if strings.HasSuffix(be.Code, "_not_found") {
			NotFound(c, be.Code, "Resource not found.")
			return
		}
		Write(c, http.StatusConflict, be.Code, "Operation not allowed in the current state.")
	case IsUnavailable(err):
		logger.WithContext(c.Request.Context()).WithError(err).Warn("store unavailable")
		Unavailable(c, "database_unavailable", "Database not available, retry later.")
	default:
		logger.WithContext(c.Request.Context()).WithError(err).Error("request failed")
		Internal(c, "internal_error", "Unexpected error.")
	}
}
