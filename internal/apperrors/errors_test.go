// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationHelpers(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("quantity must be at least %d", 1)))
	assert.True(t, IsNotFound(NewNotFound("product")))
	assert.True(t, IsAuthorization(NewAuthorization("not the review owner")))
	assert.True(t, IsConflict(NewConflict("email already registered")))
	assert.True(t, IsDependency(NewDependency("object storage", errors.New("timeout"))))

	plain := errors.New("boom")
	assert.False(t, IsValidation(plain))
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsAuthorization(plain))
	assert.False(t, IsConflict(plain))
	assert.False(t, IsDependency(plain))
}

func TestClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("placing order: %w", NewNotFound("product"))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestDependencyErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDependency("identity provider", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "identity provider unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "product not found", NewNotFound("product").Error())
	assert.Equal(t, "rating must be between 1 and 5", NewValidation("rating must be between %d and %d", 1, 5).Error())
}
