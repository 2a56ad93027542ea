package trigger

import (
	"context"
	"sync"
	"time"
)

// Actions forwarded to the automation webhook.
const (
	// ActionApply runs the automation job (device turned on).
	ActionApply = "apply"

	// ActionDestroy tears the job's resources down (device turned off).
	ActionDestroy = "destroy"
)

// Logger defines the logging interface used by the Debouncer.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Caller performs the actual webhook invocation.
// Implemented by WebhookClient; faked in tests.
type Caller interface {
	Call(ctx context.Context, action string) error
}

// Telemetry records trigger attempts for observability.
// Implemented by the InfluxDB client; optional.
type Telemetry interface {
	WriteTriggerEvent(action string, forwarded bool, duration time.Duration)
}

// Debouncer is the single process-wide gate in front of the webhook.
//
// All public methods are thread-safe.
type Debouncer struct {
	mu   sync.Mutex
	last time.Time // zero until the first forwarded trigger

	interval  time.Duration
	caller    Caller
	logger    Logger
	telemetry Telemetry

	// now is the clock source; replaceable in tests.
	now func() time.Time
}

// NewDebouncer creates a debouncer with the given minimum interval between
// forwarded calls.
func NewDebouncer(interval time.Duration, caller Caller) *Debouncer {
	return &Debouncer{
		interval: interval,
		caller:   caller,
		logger:   noopLogger{},
		now:      time.Now,
	}
}

// SetLogger sets the logger for the debouncer.
func (d *Debouncer) SetLogger(logger Logger) {
	d.logger = logger
}

// SetTelemetry sets an optional telemetry sink for trigger events.
func (d *Debouncer) SetTelemetry(t Telemetry) {
	d.telemetry = t
}

// TryTrigger forwards an action to the webhook unless the cooldown window is
// still open.
//
// The window is claimed before the call is made, so a failed webhook call
// still consumes the window - matching the invariant that no two actuation
// attempts happen within the interval, successful or not.
//
// Parameters:
//   - ctx: Context for the outbound call
//   - action: ActionApply or ActionDestroy
//
// Returns:
//   - bool: true only if the call reached the webhook and it answered 200.
//     false for a suppressed (cooldown) or failed call; neither is an error.
func (d *Debouncer) TryTrigger(ctx context.Context, action string) bool {
	start := d.now()

	d.mu.Lock()
	if !d.last.IsZero() && start.Sub(d.last) < d.interval {
		d.mu.Unlock()
		d.logger.Info("duplicate trigger ignored due to cooldown", "action", action)
		d.record(action, false, 0)
		return false
	}
	// Claim the window while still holding the lock, then release before
	// the network call so other request batches are not serialised.
	d.last = start
	d.mu.Unlock()

	err := d.caller.Call(ctx, action)
	elapsed := d.now().Sub(start)
	if err != nil {
		d.logger.Error("webhook trigger failed", "action", action, "error", err)
		d.record(action, false, elapsed)
		return false
	}

	d.logger.Info("webhook trigger forwarded", "action", action, "duration_ms", elapsed.Milliseconds())
	d.record(action, true, elapsed)
	return true
}

// record writes a trigger event to the telemetry sink if one is configured.
func (d *Debouncer) record(action string, forwarded bool, duration time.Duration) {
	if d.telemetry != nil {
		d.telemetry.WriteTriggerEvent(action, forwarded, duration)
	}
}
