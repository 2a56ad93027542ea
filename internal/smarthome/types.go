package smarthome

// Intent names delivered by the fulfillment platform.
const (
	IntentSync    = "action.devices.SYNC"
	IntentQuery   = "action.devices.QUERY"
	IntentExecute = "action.devices.EXECUTE"
)

// Command and status strings used on the EXECUTE path.
const (
	CommandOnOff = "action.devices.commands.OnOff"

	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// ErrorCodeUnsupportedIntent is returned in the payload when the request
// carries an intent this bridge does not implement.
const ErrorCodeUnsupportedIntent = "unsupported_intent"

// Request is the fulfillment request envelope. The platform batches inputs,
// but in practice each request carries exactly one; only the first is acted
// upon.
type Request struct {
	RequestID string  `json:"requestId"`
	Inputs    []Input `json:"inputs"`
}

// Input is a single intent within a request envelope.
type Input struct {
	Intent  string       `json:"intent"`
	Payload InputPayload `json:"payload"`
}

// InputPayload carries the intent-specific request body. SYNC sends none,
// QUERY sends device references, EXECUTE sends commands.
type InputPayload struct {
	Devices  []DeviceRef `json:"devices,omitempty"`
	Commands []Command   `json:"commands,omitempty"`
}

// DeviceRef identifies a device in a QUERY or EXECUTE payload.
type DeviceRef struct {
	ID string `json:"id"`
}

// Command pairs target devices with the executions to apply to each.
type Command struct {
	Devices   []DeviceRef `json:"devices"`
	Execution []Execution `json:"execution"`
}

// Execution is a single command invocation with its parameters.
type Execution struct {
	Command string          `json:"command"`
	Params  ExecutionParams `json:"params"`
}

// ExecutionParams holds the OnOff trait parameters. A missing "on" key
// decodes to false, which maps to the destroy action.
type ExecutionParams struct {
	On bool `json:"on"`
}

// Response is the fulfillment response envelope. Payload is intent-specific.
type Response struct {
	RequestID string `json:"requestId"`
	Payload   any    `json:"payload"`
}

// SyncPayload lists every device the agent manages.
type SyncPayload struct {
	AgentUserID string   `json:"agentUserId"`
	Devices     []Device `json:"devices"`
}

// Device is the SYNC descriptor for a single device.
type Device struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Traits          []string   `json:"traits"`
	Name            DeviceName `json:"name"`
	WillReportState bool       `json:"willReportState"`
}

// DeviceName holds the display names the platform shows and listens for.
type DeviceName struct {
	DefaultNames []string `json:"defaultNames"`
	Name         string   `json:"name"`
	Nicknames    []string `json:"nicknames"`
}

// QueryPayload maps device IDs to their reported state.
type QueryPayload struct {
	Devices map[string]DeviceState `json:"devices"`
}

// DeviceState is the reported state for one device. Online is always true;
// the bridge has no concept of an offline device.
type DeviceState struct {
	On     bool `json:"on"`
	Online bool `json:"online"`
}

// ExecutePayload lists the per-device results of an EXECUTE intent.
type ExecutePayload struct {
	Commands []ExecuteResult `json:"commands"`
}

// ExecuteResult is the outcome for one device within an EXECUTE command.
// Status is SUCCESS only when the side effect was actually forwarded; the
// reported state always reflects the requested value regardless.
type ExecuteResult struct {
	IDs    []string    `json:"ids"`
	Status string      `json:"status"`
	States DeviceState `json:"states"`
}

// ErrorPayload is returned for intents the bridge does not implement.
type ErrorPayload struct {
	ErrorCode string `json:"errorCode"`
}
