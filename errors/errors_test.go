package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestTaxonomyHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"storage", WrapStorage(New("disk full"), "store ontology"), IsStorageError},
		{"validation", NewValidationError("missing field: %s", "label"), IsValidationError},
		{"not found", NewNotFoundError("ontology %q", "eth:core"), IsNotFoundError},
		{"data integrity", NewDataIntegrityError("cycle at ontology %d", 7), IsDataIntegrityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(nil))
			// A wrapped error keeps its kind.
			assert.True(t, tt.check(Wrap(tt.err, "outer context")))
		})
	}
}

func TestKindsAreDistinct(t *testing.T) {
	err := NewValidationError("bad input")

	assert.True(t, IsValidationError(err))
	assert.False(t, IsNotFoundError(err))
	assert.False(t, IsStorageError(err))
	assert.False(t, IsDataIntegrityError(err))
}

func TestWrapStorageKeepsOriginalMessage(t *testing.T) {
	cause := New("database is locked")
	err := WrapStorage(cause, "flip current version")

	assert.Contains(t, err.Error(), "database is locked")
	assert.Contains(t, err.Error(), "flip current version")
	assert.True(t, IsStorageError(err))
}
