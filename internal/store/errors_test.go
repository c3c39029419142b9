package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorWrapping(t *testing.T) {
	t.Run("entity_specific_not_found_errors_match_generic", func(t *testing.T) {
		assert.True(t, errors.Is(ErrTaskNotFound, ErrNotFound))
		assert.True(t, errors.Is(ErrUserNotFound, ErrNotFound))
		assert.False(t, errors.Is(ErrTaskNotFound, ErrUserNotFound))
	})

	t.Run("email_exists_is_a_duplicate", func(t *testing.T) {
		assert.True(t, errors.Is(ErrEmailExists, ErrDuplicate))
		assert.False(t, errors.Is(ErrEmailExists, ErrNotFound))
	})

	t.Run("wrapped_errors_still_match", func(t *testing.T) {
		err := fmt.Errorf("get task: %w", ErrTaskNotFound)
		assert.True(t, errors.Is(err, ErrTaskNotFound))
		assert.True(t, IsNotFoundError(err))
	})
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.False(t, IsNotFoundError(errors.New("some other error")))
	assert.False(t, IsNotFoundError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.True(t, IsDuplicateError(fmt.Errorf("create user: %w", ErrEmailExists)))
}
