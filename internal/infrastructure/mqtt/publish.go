package mqtt

import (
	"encoding/json"
	"fmt"
	"time"
)

// Maximum payload size for MQTT messages (1MB).
// This prevents resource exhaustion and aligns with typical broker limits.
const maxPayloadSize = 1 << 20 // 1MB

// Publish sends a message to the specified MQTT topic.
//
// Parameters:
//   - topic: The topic to publish to (e.g., "graylogic/state/cloud/jenkins_job")
//   - payload: The message payload (typically JSON, max 1MB)
//   - qos: Quality of Service level (0, 1, or 2)
//   - retained: Whether the broker should retain the message for new subscribers
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	// Validate inputs
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	// Check connection state
	if !c.IsConnected() {
		return ErrNotConnected
	}

	// Publish with timeout
	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishRetained publishes a retained message with the configured default QoS.
//
// Use for state updates where new subscribers should receive the current state.
func (c *Client) PublishRetained(topic string, payload []byte) error {
	return c.Publish(topic, payload, byte(c.cfg.QoS), true)
}

// cloudStatePayload is the wire format for cloud-commanded device state.
type cloudStatePayload struct {
	On        bool   `json:"on"`
	Online    bool   `json:"online"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// PublishDeviceState announces a cloud-commanded state change as a retained
// message on the device's cloud state topic.
//
// Satisfies the dispatcher's StatePublisher interface.
//
// Parameters:
//   - deviceID: The device whose state changed
//   - on: The new on/off value
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) PublishDeviceState(deviceID string, on bool) error {
	payload, err := json.Marshal(cloudStatePayload{
		On:        on,
		Online:    true,
		Source:    "cloud",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("%w: encoding state payload: %w", ErrPublishFailed, err)
	}

	return c.PublishRetained(Topics{}.CloudState(deviceID), payload)
}
