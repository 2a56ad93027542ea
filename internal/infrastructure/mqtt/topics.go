package mqtt

import "fmt"

// Topic namespace constants.
const (
	// topicPrefix is the root of the Gray Logic topic tree.
	topicPrefix = "graylogic"
)

// Topics builds topic strings for the Gray Logic bus.
//
// The bridge only ever publishes; the topic scheme mirrors the bus layout
// other services subscribe to:
//
//	graylogic/state/cloud/{device_id}  retained device state from the cloud
//	graylogic/system/status            retained service online/offline status
type Topics struct{}

// CloudState returns the retained state topic for a cloud-commanded device.
func (Topics) CloudState(deviceID string) string {
	return fmt.Sprintf("%s/state/cloud/%s", topicPrefix, deviceID)
}

// SystemStatus returns the retained service status topic.
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/system/status/cloudbridge", topicPrefix)
}
