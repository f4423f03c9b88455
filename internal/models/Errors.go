package models

import "github.com/pkg/errors"

// Error taxonomy for the advisory pipeline. InvalidFormat and NotFound are
// user-correctable; Upstream is retryable by the caller. Escalation failures
// never surface here - the delegated strategy absorbs them.
var (
	ErrInvalidFormat = errors.New("message does not contain a valid 5-digit ZIP code")
	ErrNotFound      = errors.New("no weather data for that ZIP code")
	ErrUpstream      = errors.New("weather service temporarily unavailable")
)

// ErrorKind classifies a terminal pipeline error for transport mapping.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindInvalidFormat ErrorKind = "invalid_format"
	KindNotFound      ErrorKind = "not_found"
	KindUpstream      ErrorKind = "upstream_failure"
)

// KindOf reduces any pipeline error to its taxonomy kind. Unclassified
// errors count as upstream failures so callers always get a retry hint.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUpstream
	}
}

// UserMessage renders the short, actionable message for a terminal error.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindInvalidFormat:
		return "Please include a 5-digit US ZIP code in your message, e.g. \"what should I wear in 80302?\""
	case KindNotFound:
		return "That ZIP code is not recognized. Try a different, valid US ZIP code."
	case KindUpstream:
		return "The weather service is temporarily unavailable. Please try again in a moment."
	}
	return ""
}
