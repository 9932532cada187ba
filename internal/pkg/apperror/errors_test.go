package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeNotFound:     http.StatusNotFound,
		ErrCodeUnauthorized: http.StatusUnauthorized,
		ErrCodeForbidden:    http.StatusForbidden,
		ErrCodeValidation:   http.StatusBadRequest,
		ErrCodeConflict:     http.StatusConflict,
		ErrCodeUpstream:     http.StatusBadGateway,
		ErrCodeInternal:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, New(code, "x").HTTPStatus, string(code))
	}
}

func TestAs_WrappedChain(t *testing.T) {
	cause := errors.New("db down")
	err := fmt.Errorf("service: %w", Internal(cause))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrap: %w", ErrPostNotFound)))
}
