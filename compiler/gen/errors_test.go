package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("FieldNaming", "snake", "unsupported naming")

		assert.Contains(t, err.Error(), "dbgen: config error")
		assert.Contains(t, err.Error(), "FieldNaming")
		assert.Contains(t, err.Error(), "snake")
		assert.Contains(t, err.Error(), "unsupported naming")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Package")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("write failed")
		err := NewGenerationError("users", "users.go", "cannot write file", cause)

		assert.Contains(t, err.Error(), "dbgen: generation error")
		assert.Contains(t, err.Error(), "for table users")
		assert.Contains(t, err.Error(), "file: users.go")
		assert.Contains(t, err.Error(), "cannot write file")
		assert.Contains(t, err.Error(), "write failed")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("io error")
		err := NewGenerationError("users", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("As GenerationError", func(t *testing.T) {
		err := NewGenerationError("users", "users.go", "failed", nil)
		var genErr *GenerationError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, "users", genErr.Table)
		assert.Equal(t, "users.go", genErr.File)
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "dbgen: missing configuration", ErrMissingConfig.Error())
	assert.Equal(t, "dbgen: code generation failed", ErrGenerationFailed.Error())
}
