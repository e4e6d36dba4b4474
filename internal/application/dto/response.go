package dto

import (
	"time"

	"github.com/katcli/kat/internal/domain/execution"
	"github.com/katcli/kat/internal/domain/values"
)

// RunProfileResponse contains the result of running a profile.
type RunProfileResponse struct {
	// Selection is nil in patterns mode.
	Selection *execution.SelectionResult

	// Patterns are the resolved include and exclude lists.
	Patterns values.PatternSet

	// Rendered counts files passed to the viewer in content mode.
	Rendered int

	Metadata ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	// ProcessedAt is when the request was processed
	ProcessedAt time.Time

	// Duration is how long the request took
	Duration time.Duration
}
