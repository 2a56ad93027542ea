// Package config handles loading and validating Gray Cloud Bridge configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (webhook credentials, broker passwords, InfluxDB tokens)
//     should be set via environment variables
//   - The config file should have restricted permissions (0600)
//   - OAuth client secrets are static credentials; rotate them by editing the
//     config and restarting the process
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Webhook.URL)
package config
