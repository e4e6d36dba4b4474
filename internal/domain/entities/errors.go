package entities

import (
	"errors"
	"fmt"
)

// ProfileNotFoundError indicates the requested profile has no definition.
type ProfileNotFoundError struct {
	Name string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %q", e.Name)
}

// PathNotFoundError indicates the base path could not be canonicalized.
// It is raised before any traversal begins.
type PathNotFoundError struct {
	Cause error
	Path  string
}

func (e *PathNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("path not found: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("path not found: %s", e.Path)
}

func (e *PathNotFoundError) Unwrap() error {
	return e.Cause
}

// PatternSyntaxError indicates a raw glob string is not a valid pattern.
type PatternSyntaxError struct {
	Cause   error
	Pattern string
}

func (e *PatternSyntaxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Cause)
	}
	return fmt.Sprintf("invalid pattern %q", e.Pattern)
}

func (e *PatternSyntaxError) Unwrap() error {
	return e.Cause
}

// EntryAccessError records a directory entry that could not be read during
// traversal. It is non-fatal: the walker skips the entry and continues.
type EntryAccessError struct {
	Cause error
	Path  string
}

func (e *EntryAccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Cause)
}

func (e *EntryAccessError) Unwrap() error {
	return e.Cause
}

// ViewerInvocationError indicates the viewer could not be started or exited
// with a non-zero status. ExitCode is -1 when the process never ran.
type ViewerInvocationError struct {
	Cause    error
	Viewer   string
	Path     string
	ExitCode int
}

func (e *ViewerInvocationError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("viewer %s failed on %s with exit status %d", e.Viewer, e.Path, e.ExitCode)
	}
	return fmt.Sprintf("failed to run viewer %s on %s: %v", e.Viewer, e.Path, e.Cause)
}

func (e *ViewerInvocationError) Unwrap() error {
	return e.Cause
}

// IsProfileNotFound reports whether err wraps a ProfileNotFoundError.
func IsProfileNotFound(err error) bool {
	var target *ProfileNotFoundError
	return errors.As(err, &target)
}
