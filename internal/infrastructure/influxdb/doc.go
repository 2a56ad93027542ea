// Package influxdb records trigger telemetry for the cloud bridge.
//
// Every webhook trigger attempt, forwarded, suppressed or failed, becomes
// a point in InfluxDB so the cadence of cloud-initiated automation runs
// can be graphed and alerted on. Telemetry is optional: when disabled in
// config the bridge runs without it and nothing is recorded.
//
// Writes are non-blocking and batched by the underlying client; a slow or
// unavailable InfluxDB never holds up a fulfillment request. Async write
// failures are delivered through the SetOnError callback.
package influxdb
