package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.Status())
	assert.Equal(t, http.StatusBadRequest, KindMalformedID.Status())
	assert.Equal(t, http.StatusBadRequest, KindInvalidReference.Status())
	assert.Equal(t, http.StatusBadRequest, KindConflict.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.Status())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.Status())
}

func TestMalformedIDMessage(t *testing.T) {
	err := MalformedID("abc")
	assert.Equal(t, "invalid ID format: abc", err.Error())
	assert.Equal(t, KindMalformedID, err.Kind)
}

func TestFromDomainError(t *testing.T) {
	orig := NotFound("order not found for ID: %s", "deadbeef")
	got := From(fmt.Errorf("handler: %w", orig))
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "order not found for ID: deadbeef", got.Message)
}

func TestFromUnknownErrorBecomesInternal(t *testing.T) {
	cause := errors.New("connection reset")
	got := From(cause)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "internal server error", got.Message)
	assert.True(t, errors.Is(got, cause))
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("cursor closed")
	err := Internal("dashboard aggregation failed", cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "cursor closed")
}

func TestIs(t *testing.T) {
	err := Conflict("email %q is already in use", "a@b.c")
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(err, KindNotFound))
	assert.False(t, Is(errors.New("plain"), KindConflict))
}
