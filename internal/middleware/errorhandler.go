package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
	"github.com/JoaoVF25/dashboard/internal/domain/dto"
	"github.com/JoaoVF25/dashboard/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors collected on the
// context into a standardized JSON error response after the handlers ran.
//
// Handlers can either respond themselves (usually via AbortWithError) or
// just attach an error with c.Error(err) and let this middleware map it to
// a status code from the application's sentinel errors.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status := statusFor(err)

	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Str("request_id", toString(rid)).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Err(err).
		Msg("request failed")

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(http.StatusText(status), err))
}

// statusFor maps application sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUnsupportedFormat),
		errors.Is(err, apperr.ErrNoReadableTable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrVersionNotFound),
		errors.Is(err, apperr.ErrSymbolNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError logs err, writes a standardized error body with the given
// status, and aborts the chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Str("request_id", toString(rid)).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Err(err).
		Msg(message)

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
