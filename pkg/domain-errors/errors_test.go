package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeNotFound, "customer not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeConflict, "catalog in use"))
		assert.True(t, HasCode(err, CodeConflict))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("keeps cause reachable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, CodeInternal, "failed to load customer")
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to load customer: connection reset", err.Error())
	})
}

func TestWithDetail(t *testing.T) {
	base := New(CodeValidation, "value too long")
	withField := base.WithDetail("field", "income")

	v, ok := DetailOf(withField, "field")
	require.True(t, ok)
	assert.Equal(t, "income", v)

	_, ok = DetailOf(base, "field")
	assert.False(t, ok, "original error must not be mutated")
}
