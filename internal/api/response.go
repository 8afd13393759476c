// Package api defines the JSON envelope shared by every endpoint.
//
//	success: {"success": true,  "data":  <payload>}
//	failure: {"success": false, "error": "<fixed message>"}
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"market_gateway/internal/shared/apperr"
)

// SuccessResponse wraps a successful payload.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorResponse wraps a failure message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK writes data with status 200.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// Fail writes msg with the given status and stops the handler chain.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: msg})
}

// Error classifies err and writes the matching failure envelope. Only the
// fixed message reaches the caller; the cause is logged.
func Error(c *gin.Context, err error) {
	e := apperr.From(err)

	attrs := []any{
		"kind", e.Kind.String(),
		"status", e.Status,
		"path", c.FullPath(),
		"request_id", c.GetString(RequestIDKey),
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}

	switch e.Kind {
	case apperr.KindValidation:
		slog.Info("request rejected", attrs...)
	case apperr.KindUpstream:
		slog.Warn("upstream call failed", attrs...)
	case apperr.KindInternal:
		slog.Error("request failed", attrs...)
	}

	Fail(c, e.Status, e.Message)
}

// BindError turns a gin binding failure into a validation error that names
// the first offending field, e.g. "invalid range: failed gt".
func BindError(err error) *apperr.Error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return apperr.Validation(fmt.Sprintf("invalid %s: failed %s", lowerFirst(fe.Field()), fe.Tag()))
	}
	return apperr.Validation("invalid request")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"
