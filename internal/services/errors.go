package services

import "errors"

// Failure taxonomy for the relay pipeline. Callers match these with
// errors.Is; every service wraps its transport error around one of them.
var (
	// ErrLookupFailed means the customer profile or order history could
	// not be fetched. Aborts the inquiry's success path.
	ErrLookupFailed = errors.New("customer lookup failed")

	// ErrSuggestionFailed means the AI backend call itself errored. It is
	// always absorbed by the staff notifier, never surfaced further up.
	ErrSuggestionFailed = errors.New("ai suggestion generation failed")

	// ErrNotificationFailed means the Slack delivery failed.
	ErrNotificationFailed = errors.New("slack notification failed")

	// ErrRelayFailed means LINE rejected the reply. Reply tokens are
	// single-use, so there is nothing sensible to retry.
	ErrRelayFailed = errors.New("line reply failed")
)
