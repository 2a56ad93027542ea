package smarthome

import (
	"context"

	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/config"
	"github.com/nerrad567/gray-cloud-bridge/internal/trigger"
)

// Device descriptor constants for the single exposed switch.
const (
	deviceType  = "action.devices.types.SWITCH"
	onOffTrait  = "action.devices.traits.OnOff"
	defaultName = "Terraform Job"
	nickname    = "terraform"
)

// Logger defines the logging interface used by the Dispatcher.
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

// Trigger gates and forwards actuation to the automation webhook.
// Implemented by trigger.Debouncer.
type Trigger interface {
	TryTrigger(ctx context.Context, action string) bool
}

// StatePublisher announces device state changes to interested subscribers.
// Implemented by the MQTT state announcer; optional.
type StatePublisher interface {
	PublishDeviceState(deviceID string, on bool) error
}

// Dispatcher routes fulfillment intents to their handlers.
//
// All public methods are thread-safe.
type Dispatcher struct {
	agentUserID string
	deviceID    string
	deviceName  string

	states    *StateTable
	trigger   Trigger
	publisher StatePublisher
	logger    Logger
}

// NewDispatcher creates a dispatcher for the configured device.
//
// Parameters:
//   - cfg: Smart home identity (agent user, device ID and display name)
//   - states: Device state table, shared with nothing else
//   - trig: Debounced webhook gate invoked on EXECUTE
func NewDispatcher(cfg config.SmartHomeConfig, states *StateTable, trig Trigger) *Dispatcher {
	return &Dispatcher{
		agentUserID: cfg.AgentUserID,
		deviceID:    cfg.DeviceID,
		deviceName:  cfg.DeviceName,
		states:      states,
		trigger:     trig,
		logger:      noopLogger{},
	}
}

// SetLogger sets the logger for the dispatcher.
func (d *Dispatcher) SetLogger(logger Logger) {
	d.logger = logger
}

// SetPublisher sets an optional state publisher notified after EXECUTE.
func (d *Dispatcher) SetPublisher(p StatePublisher) {
	d.publisher = p
}

// Dispatch handles one fulfillment request and always produces a response.
//
// Only the first input is examined. A request with no inputs or an
// unrecognised intent yields an unsupported_intent error payload; the
// request ID is echoed back in every case.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	if len(req.Inputs) == 0 {
		d.logger.Warn("fulfillment request with no inputs", "request_id", req.RequestID)
		return Response{
			RequestID: req.RequestID,
			Payload:   ErrorPayload{ErrorCode: ErrorCodeUnsupportedIntent},
		}
	}

	input := req.Inputs[0]
	d.logger.Debug("dispatching intent", "intent", input.Intent, "request_id", req.RequestID)

	switch input.Intent {
	case IntentSync:
		return d.handleSync(req.RequestID)
	case IntentQuery:
		return d.handleQuery(req.RequestID, input.Payload)
	case IntentExecute:
		return d.handleExecute(ctx, req.RequestID, input.Payload)
	default:
		d.logger.Warn("unsupported intent", "intent", input.Intent, "request_id", req.RequestID)
		return Response{
			RequestID: req.RequestID,
			Payload:   ErrorPayload{ErrorCode: ErrorCodeUnsupportedIntent},
		}
	}
}

// handleSync returns the fixed single-device inventory.
func (d *Dispatcher) handleSync(requestID string) Response {
	return Response{
		RequestID: requestID,
		Payload: SyncPayload{
			AgentUserID: d.agentUserID,
			Devices: []Device{
				{
					ID:     d.deviceID,
					Type:   deviceType,
					Traits: []string{onOffTrait},
					Name: DeviceName{
						DefaultNames: []string{defaultName},
						Name:         d.deviceName,
						Nicknames:    []string{nickname},
					},
					WillReportState: true,
				},
			},
		},
	}
}

// handleQuery reports the recorded state for each requested device.
// Devices never written report off; every device reports online.
func (d *Dispatcher) handleQuery(requestID string, payload InputPayload) Response {
	devices := make(map[string]DeviceState, len(payload.Devices))
	for _, ref := range payload.Devices {
		devices[ref.ID] = DeviceState{
			On:     d.states.Get(ref.ID),
			Online: true,
		}
	}
	return Response{
		RequestID: requestID,
		Payload:   QueryPayload{Devices: devices},
	}
}

// handleExecute applies each command to each targeted device.
//
// The state change is optimistic: the new value is recorded and reported
// before the webhook outcome is known. Only the result status reflects
// whether the trigger was actually forwarded, so a suppressed or failed
// call surfaces as ERROR with the requested state attached.
func (d *Dispatcher) handleExecute(ctx context.Context, requestID string, payload InputPayload) Response {
	var results []ExecuteResult

	for _, cmd := range payload.Commands {
		on := false
		if len(cmd.Execution) > 0 {
			on = cmd.Execution[0].Params.On
		}

		for _, ref := range cmd.Devices {
			d.states.Set(ref.ID, on)
			d.announce(ref.ID, on)

			action := trigger.ActionDestroy
			if on {
				action = trigger.ActionApply
			}

			status := StatusError
			if d.trigger.TryTrigger(ctx, action) {
				status = StatusSuccess
			}

			d.logger.Info("execute command handled",
				"request_id", requestID,
				"device_id", ref.ID,
				"on", on,
				"status", status,
			)

			results = append(results, ExecuteResult{
				IDs:    []string{ref.ID},
				Status: status,
				States: DeviceState{On: on, Online: true},
			})
		}
	}

	return Response{
		RequestID: requestID,
		Payload:   ExecutePayload{Commands: results},
	}
}

// announce publishes the new state if a publisher is configured. Publish
// failures are logged and otherwise ignored; state announcements are best
// effort.
func (d *Dispatcher) announce(deviceID string, on bool) {
	if d.publisher == nil {
		return
	}
	if err := d.publisher.PublishDeviceState(deviceID, on); err != nil {
		d.logger.Warn("state announcement failed", "device_id", deviceID, "error", err)
	}
}
