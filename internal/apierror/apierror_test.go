package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOfTypedErrors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("absent")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(Invalid("mauvaise requête")))
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("doublon")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(Internal("cassé")))
	assert.Equal(t, http.StatusTeapot, StatusOf(New("thé", http.StatusTeapot)))
}

func TestStatusOfUntypedErrorIs500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("brut")))
}

func TestStatusOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("contexte: %w", NotFound("absent"))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("absent")))
	assert.False(t, IsNotFound(Invalid("autre")))
	assert.False(t, IsNotFound(errors.New("brut")))
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("Aucun document pour cet id 42")
	assert.Equal(t, "Aucun document pour cet id 42", err.Error())
}
