// Package trigger forwards smart-home EXECUTE commands to the automation
// webhook, with a cooldown gate in front.
//
// Google delivers EXECUTE intents at-least-once: a flaky connection or a
// hasty user can produce the same command several times within seconds. The
// webhook on the other side starts a Terraform run, which is expensive and
// must not be double-fired. The Debouncer is the protection: one shared gate
// for the whole process (not per device, not per client) that drops any
// trigger arriving less than the configured interval after the previous one.
//
// A dropped trigger is not an error and is not retried or queued - the
// command's state change still applies, only the side effect is skipped.
//
// # Concurrency
//
// The cooldown check-and-set runs under a mutex; the outbound HTTP call does
// not, so concurrent unrelated requests are never serialised behind a slow
// webhook. The gate uses Go's monotonic clock (time.Time retains a monotonic
// reading), so wall-clock adjustments cannot reopen or jam the window.
package trigger
