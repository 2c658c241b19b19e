package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeThroughWrapping(t *testing.T) {
	base := New(CodeNotFound, "Category 'x' not found.")
	wrapped := fmt.Errorf("load: %w", base)

	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(wrapped, CodeConflict))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeUpstream, "Failed to send land charge to mint-api")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to send land charge to mint-api: connection reset", err.Error())
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeUpstream:     http.StatusInternalServerError,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, ToHTTPStatus(code), string(code))
	}
}
