package trigger

import "errors"

// Domain errors for the trigger package.
//
// These never escape to HTTP clients: a failed or suppressed trigger only
// surfaces as an ERROR status on the affected device result. They exist so
// logs and tests can tell the failure modes apart with errors.Is().
var (
	// ErrUnexpectedStatus is returned when the webhook responds with a
	// non-200 status.
	ErrUnexpectedStatus = errors.New("trigger: unexpected webhook status")

	// ErrUnreachable is returned when the webhook call fails at the
	// transport level (connection refused, DNS, timeout).
	ErrUnreachable = errors.New("trigger: webhook unreachable")
)
