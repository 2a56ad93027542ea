package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteTriggerEvent records one webhook trigger attempt.
//
// Satisfies the debouncer's Telemetry interface. The write is non-blocking;
// data is batched and sent asynchronously, and a disconnected client drops
// the point silently.
//
// Parameters:
//   - action: The requested webhook action ("apply" or "destroy")
//   - forwarded: Whether the call reached the webhook and was accepted.
//     Suppressed and failed attempts both record false.
//   - duration: Wall time of the outbound call, zero for suppressed attempts
func (c *Client) WriteTriggerEvent(action string, forwarded bool, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"trigger_events",
		map[string]string{
			"action":    action,
			"forwarded": strconv.FormatBool(forwarded),
		},
		map[string]interface{}{
			"count":       1,
			"duration_ms": float64(duration.Milliseconds()),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteTokenCount records the current sizes of the token store.
//
// Called periodically so the growth of the never-expiring token set stays
// visible on a dashboard.
//
// Parameters:
//   - accessTokens: Number of live access tokens
//   - refreshTokens: Number of live refresh tokens
func (c *Client) WriteTokenCount(accessTokens, refreshTokens int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"oauth_tokens",
		map[string]string{},
		map[string]interface{}{
			"access":  accessTokens,
			"refresh": refreshTokens,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
