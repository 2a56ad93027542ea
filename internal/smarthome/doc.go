// Package smarthome implements the fulfillment side of the bridge: the
// SYNC, QUERY and EXECUTE intents the assistant platform sends after
// account linking.
//
// The bridge exposes exactly one device, a virtual switch whose on/off
// commands map to apply/destroy runs of the downstream automation job.
// SYNC returns its fixed descriptor, QUERY reads the in-memory state
// table, and EXECUTE records the requested state then hands the side
// effect to the trigger package's debounced webhook gate.
//
// # Design
//
// EXECUTE is optimistic on state and honest on status. The requested
// value is stored and echoed back unconditionally so the assistant's UI
// stays responsive, while the result status is SUCCESS only when the
// webhook call was actually forwarded and accepted. A command dropped by
// the cooldown gate therefore reports ERROR with the new state attached.
//
// Unknown intents and empty requests produce an unsupported_intent error
// payload rather than an HTTP error; the platform expects a 200 with an
// error code in the body.
package smarthome
