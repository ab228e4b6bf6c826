package generation

import "errors"

// Common errors returned by remote generators. The template generator never
// fails; these values exist so the fallback orchestrator can branch on an
// explicit error instead of suppressing a broad exception class.
var (
	// ErrNotConfigured is returned when the remote path is invoked without a
	// configured service credential.
	ErrNotConfigured = errors.New("remote generation service not configured")

	// ErrRemoteFailure is returned when the HTTP call to the remote service
	// does not succeed (non-2xx status, transport failure, or timeout).
	ErrRemoteFailure = errors.New("remote generation service call failed")

	// ErrInvalidResponse is returned when the remote response cannot be
	// parsed as the expected structured object or lacks a required field.
	ErrInvalidResponse = errors.New("invalid response from remote generation service")
)
