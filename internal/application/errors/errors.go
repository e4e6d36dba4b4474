// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"

	"github.com/katcli/kat/internal/domain/entities"
)

// ValidationError indicates profile or filter validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// SkippedEntriesError is returned in strict mode when the walk could not
// read some entries.
type SkippedEntriesError struct {
	Skipped []*entities.EntryAccessError
}

func (e *SkippedEntriesError) Error() string {
	if len(e.Skipped) == 1 {
		return fmt.Sprintf("strict mode: %v", e.Skipped[0])
	}
	return fmt.Sprintf("strict mode: %d entries could not be read, first: %v", len(e.Skipped), e.Skipped[0])
}

// Unwrap returns the first skipped entry.
func (e *SkippedEntriesError) Unwrap() error {
	if len(e.Skipped) == 0 {
		return nil
	}
	return e.Skipped[0]
}

// NewSkippedEntriesError creates a new strict mode error. skipped must not
// be empty.
func NewSkippedEntriesError(skipped []*entities.EntryAccessError) *SkippedEntriesError {
	return &SkippedEntriesError{Skipped: skipped}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
