package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsContractViolation(nil))
	assert.False(t, IsConfigurationError(nil))
	assert.False(t, IsNotFoundError(nil))
}

func TestInvalidIdentifierError(t *testing.T) {
	err := NewInvalidIdentifierError("interval")

	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidIdentifier))
	assert.True(t, IsContractViolation(err))
	assert.False(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "interval must be a non-empty identifier")
}

func TestReferenceSystemErrors(t *testing.T) {
	t.Run("unknown system carries a hint", func(t *testing.T) {
		err := NewUnknownReferenceSystemError("urn:trs:mars")

		assert.True(t, Is(err, ErrUnknownReferenceSystem))
		assert.True(t, IsConfigurationError(err))
		assert.False(t, IsContractViolation(err))
		assert.Contains(t, err.Error(), `"urn:trs:mars"`)

		hints := GetAllHints(err)
		require.Len(t, hints, 1)
		assert.Contains(t, hints[0], "reference_systems")
	})

	t.Run("wrong kind", func(t *testing.T) {
		err := NewReferenceSystemKindError("gregorian", "position", "calendar")

		assert.True(t, Is(err, ErrReferenceSystemKind))
		assert.True(t, IsConfigurationError(err))
		assert.Contains(t, err.Error(), `"gregorian" is a calendar system, position required`)
	})

	t.Run("survives further wrapping", func(t *testing.T) {
		err := Wrap(NewUnknownReferenceSystemError("x"), "resolve instant")
		assert.True(t, IsConfigurationError(err))
	})
}

func TestInvalidRequestError(t *testing.T) {
	err := NewInvalidRequestError("unknown rule %q", "time:foo")
	assert.True(t, Is(err, ErrInvalidRequest))
	assert.True(t, IsContractViolation(err))
	assert.Contains(t, err.Error(), `unknown rule "time:foo"`)
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func ExampleWrap() {
	baseErr := New("connection failed")
	err := Wrap(baseErr, "failed to open fact store")
	fmt.Println(err)
	// Output: failed to open fact store: connection failed
}
