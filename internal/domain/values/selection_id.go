// Package values contains domain value objects that encapsulate
// primitive types with validation and such.
package values

import (
	"fmt"

	"github.com/google/uuid"
)

// SelectionID identifies a single selection run. It carries no semantics
// beyond correlating log lines and output documents of the same run.
type SelectionID struct {
	value uuid.UUID
}

// NewSelectionID creates a new random selection ID
func NewSelectionID() SelectionID {
	return SelectionID{value: uuid.New()}
}

// ParseSelectionID parses a string into a SelectionID
func ParseSelectionID(s string) (SelectionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SelectionID{}, fmt.Errorf("invalid selection ID: %w", err)
	}
	return SelectionID{value: id}, nil
}

// String returns the string representation
func (s SelectionID) String() string {
	return s.value.String()
}

// IsZero returns true if this is the zero value
func (s SelectionID) IsZero() bool {
	return s.value == uuid.Nil
}

// Equals checks if two SelectionIDs are equal
func (s SelectionID) Equals(other SelectionID) bool {
	return s.value == other.value
}

// MarshalText implements encoding.TextMarshaler, which both the JSON and
// YAML encoders honour.
func (s SelectionID) MarshalText() ([]byte, error) {
	return []byte(s.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SelectionID) UnmarshalText(data []byte) error {
	id, err := ParseSelectionID(string(data))
	if err != nil {
		return err
	}
	*s = id
	return nil
}
