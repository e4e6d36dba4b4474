package apperrors

import (
	"errors"
	"os"
	"testing"

	"github.com/katcli/kat/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("rust.yaml", "schema violation")
	assert.Equal(t, "validation failed: rust.yaml: schema violation", err.Error())

	err = NewValidationError("rust.yaml", "schema violation", "a", "b")
	assert.Equal(t, "validation failed: rust.yaml: schema violation (2 issues)", err.Error())
}

func TestSkippedEntriesError(t *testing.T) {
	first := &entities.EntryAccessError{Path: "/x/locked", Cause: os.ErrPermission}
	second := &entities.EntryAccessError{Path: "/x/other", Cause: os.ErrPermission}

	single := NewSkippedEntriesError([]*entities.EntryAccessError{first})
	assert.Contains(t, single.Error(), "strict mode")
	assert.Contains(t, single.Error(), "/x/locked")

	multi := NewSkippedEntriesError([]*entities.EntryAccessError{first, second})
	assert.Contains(t, multi.Error(), "2 entries could not be read")
	assert.ErrorIs(t, multi, os.ErrPermission)

	var access *entities.EntryAccessError
	assert.True(t, errors.As(multi, &access))
	assert.Equal(t, "/x/locked", access.Path)

	assert.NoError(t, (&SkippedEntriesError{}).Unwrap())
}

func TestConfigurationError(t *testing.T) {
	cause := os.ErrNotExist
	err := NewConfigurationError("profiles", "profiles directory not found: /nope", cause)

	assert.Equal(t, "configuration error (profiles): profiles directory not found: /nope: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)

	bare := NewConfigurationError("viewer", "empty command", nil)
	assert.Equal(t, "configuration error (viewer): empty command", bare.Error())
}
