package smarthome

import "sync"

// StateTable tracks the last commanded on/off value per device.
//
// The table is deliberately forgiving: reading a device that was never
// written reports off rather than failing, and reads never create entries.
// State lives only in memory; a restart resets every device to off, which
// matches the downstream job semantics (the switch represents "a run was
// requested", not a persistent actuator).
//
// All methods are thread-safe.
type StateTable struct {
	mu     sync.RWMutex
	states map[string]bool
}

// NewStateTable creates an empty state table.
func NewStateTable() *StateTable {
	return &StateTable{
		states: make(map[string]bool),
	}
}

// Get returns the recorded on/off value for a device. Unknown devices
// report false.
func (t *StateTable) Get(deviceID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[deviceID]
}

// Set records the on/off value for a device, creating the entry if needed.
func (t *StateTable) Set(deviceID string, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[deviceID] = on
}

// Len returns the number of devices with recorded state.
func (t *StateTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.states)
}
