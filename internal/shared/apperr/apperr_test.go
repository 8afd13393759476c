package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) StatusCode() int { return int(s) }

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestValidation(t *testing.T) {
	t.Parallel()

	err := Validation("currency is required")

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "currency is required", err.Message)
	assert.Nil(t, err.Unwrap())
}

func TestInternal_DefaultsMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := Internal("", cause)

	assert.Equal(t, KindInternal, err.Kind)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, GenericMessage, err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestUpstream_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{"forwards provider 503", statusErr(http.StatusServiceUnavailable), http.StatusServiceUnavailable},
		{"forwards provider 404", fmt.Errorf("wrapped: %w", statusErr(http.StatusNotFound)), http.StatusNotFound},
		{"ignores non-error status", statusErr(http.StatusOK), http.StatusInternalServerError},
		{"deadline becomes 504", fmt.Errorf("get: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"net timeout becomes 504", timeoutErr{}, http.StatusGatewayTimeout},
		{"anything else is 500", errors.New("unexpected EOF"), http.StatusInternalServerError},
		{"nil cause is 500", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Upstream("failed to fetch", tt.cause)

			assert.Equal(t, KindUpstream, err.Kind)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, "failed to fetch", err.Message)
		})
	}
}

func TestFrom(t *testing.T) {
	t.Parallel()

	v := Validation("bad")
	assert.Same(t, v, From(fmt.Errorf("ctx: %w", v)))

	other := From(errors.New("plain"))
	assert.Equal(t, KindInternal, other.Kind)
	assert.Equal(t, GenericMessage, other.Message)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "upstream", KindUpstream.String())
	assert.Equal(t, "internal", KindInternal.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
