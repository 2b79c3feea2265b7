package errorvalues_test

import (
	"errors"
	"fmt"
	"testing"

	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/stretchr/testify/assert"
)

func TestStorageErrorUnwrap(t *testing.T) {
	var err error = &errorvalues.StorageError{Op: "save", Err: errorvalues.ErrRecordNotFound}
	wrapped := fmt.Errorf("day 2026-01-01: %w", err)

	var storageErr *errorvalues.StorageError
	assert.True(t, errors.As(wrapped, &storageErr))
	assert.Equal(t, "save", storageErr.Op)
	assert.ErrorIs(t, wrapped, errorvalues.ErrRecordNotFound)
	assert.EqualError(t, err, "storage error on save: daily record doesn't exist")
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := &errorvalues.ProviderError{Query: "steps", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "provider error on steps: permission denied")
}
