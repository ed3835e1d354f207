package core

import "errors"

// Sentinel errors for the webhook processing pipeline. The handler maps these
// to HTTP statuses; everything unclassified becomes an internal error.
var (
	// ErrParseFailure means a recognized command had malformed arguments.
	ErrParseFailure = errors.New("parse failure")

	// ErrUpstreamFailure means a downstream API returned non-success or a malformed body.
	ErrUpstreamFailure = errors.New("upstream failure")
)

// IsParseFailure checks if an error is a command parse failure
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrParseFailure)
}

// IsUpstreamFailure checks if an error came from a downstream API call
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrUpstreamFailure)
}
