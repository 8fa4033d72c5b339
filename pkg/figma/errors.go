package figma

import "errors"

// Client errors.
// Package-level sentinels so that callers can branch with errors.Is while the
// wrapped message still carries the offending file key or node id.
var (
	// ErrMissingCredentials is returned when a client is constructed without
	// either supported credential kind (personal access token or OAuth
	// bearer token).
	ErrMissingCredentials = errors.New("figma: no credentials: provide a personal access token or an OAuth token")

	// ErrInvalidURL is returned when a Figma URL does not match the expected
	// figma.com /file/ or /design/ pattern.
	ErrInvalidURL = errors.New("figma: invalid URL: must be a figma.com URL with a /file/ or /design/ path")

	// ErrUnauthorized is returned on a 401 or 403 response, meaning the
	// credential is missing a scope or is not valid for the file.
	ErrUnauthorized = errors.New("figma: unauthorized")

	// ErrNotFound is returned on a 404 response for a file key or node id.
	ErrNotFound = errors.New("figma: not found")

	// ErrRateLimited is returned when the API keeps responding 429 after all
	// retry attempts are exhausted.
	ErrRateLimited = errors.New("figma: rate limited")
)
