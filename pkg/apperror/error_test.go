package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("list jobs: %w", Internal(cause))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.ErrorIs(t, wrapped, cause)

	_, ok = As(cause)
	assert.False(t, ok)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, Conflict("taken").Code)
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, PayloadTooLarge("big").Code)

	v := Validation([]string{"Title is required"})
	assert.Equal(t, http.StatusBadRequest, v.Code)
	assert.Equal(t, []string{"Title is required"}, v.Details)
}
