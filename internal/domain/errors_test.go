package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrValidation, ErrUnavailable, ErrCorrupt}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b, "sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{name: "with id", entity: "quote", id: "local_1", expectedMsg: `quote with id "local_1" not found`},
		{name: "without id", entity: "last viewed quote", expectedMsg: "last viewed quote not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
		})
	}
}

func TestConflictError(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		err := NewConflictError("sync", "already running")
		assert.Equal(t, "sync conflict: already running", err.Error())
		assert.True(t, IsConflict(err))
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := NewDuplicateIDError("local_42")
		assert.Equal(t, "quote conflict: duplicate id (id local_42)", err.Error())

		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "local_42", conflict.ID)
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{name: "with field", field: "text", message: "must not be empty", expectedMsg: "validation failed for text: must not be empty"},
		{name: "without field", message: "document must be an array", expectedMsg: "validation failed: document must be an array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("quote-remote", "connection refused")

	assert.Equal(t, `service "quote-remote" unavailable: connection refused`, err.Error())
	assert.True(t, IsUnavailable(err))
	assert.Equal(t, `service "badger" unavailable`, NewUnavailableError("badger", "").Error())
}

func TestCorruptDataError(t *testing.T) {
	var target map[string]any
	cause := json.Unmarshal([]byte("{not json"), &target)
	require.Error(t, cause)

	err := NewCorruptDataError("quotes", cause)

	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `slot "quotes"`)
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isFunc   func(error) bool
		expected bool
	}{
		{"IsNotFound typed", NewNotFoundError("quote", "1"), IsNotFound, true},
		{"IsNotFound wrapped", fmt.Errorf("wrapped: %w", ErrNotFound), IsNotFound, true},
		{"IsNotFound other", ErrConflict, IsNotFound, false},
		{"IsNotFound nil", nil, IsNotFound, false},

		{"IsConflict typed", NewDuplicateIDError("x"), IsConflict, true},
		{"IsConflict other", ErrValidation, IsConflict, false},

		{"IsValidation typed", NewValidationError("text", "empty"), IsValidation, true},
		{"IsValidation wrapped", fmt.Errorf("add: %w", NewValidationError("category", "empty")), IsValidation, true},
		{"IsValidation nil", nil, IsValidation, false},

		{"IsUnavailable typed", NewUnavailableError("remote", ""), IsUnavailable, true},
		{"IsUnavailable other", ErrCorrupt, IsUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.isFunc(tt.err))
		})
	}
}
