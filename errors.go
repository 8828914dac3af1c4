package passage

import "github.com/cockroachdb/errors"

// Sentinel errors for common failure modes.
var (
	// ErrInvalidBaseURL indicates a completion backend location that cannot
	// be turned into a request URL.
	ErrInvalidBaseURL = errors.New("invalid api base url")

	// ErrMalformedResponse indicates a completion backend answered with a body
	// that lacks the expected text content.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrUnknownProvider indicates a prompt names a provider with no
	// registered completer.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrEmptyHeader indicates a prompt file has no header content to decode.
	ErrEmptyHeader = errors.New("empty prompt header")

	// ErrInvalidOutput indicates an output declaration with an unknown type
	// or merge method.
	ErrInvalidOutput = errors.New("invalid output")
)
