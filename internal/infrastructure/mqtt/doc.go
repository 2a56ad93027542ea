// Package mqtt provides MQTT client connectivity for the cloud bridge.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The bridge is a pure publisher on the Gray Logic bus. When a cloud
// EXECUTE command changes a device's state, the new value is announced as
// a retained message so Core and wall panels converge on what the cloud
// last commanded. Nothing on the bus flows back into the bridge.
//
//	Cloud Bridge → MQTT Broker → Gray Logic Core / Panels
//
// The MQTT connection is optional: when disabled in config the bridge
// runs standalone and state changes stay local.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Announce a state change
//	client.PublishDeviceState("jenkins_job", true)
package mqtt
