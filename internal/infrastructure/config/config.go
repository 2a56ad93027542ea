package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Gray Cloud Bridge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	API       APIConfig       `yaml:"api"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	SmartHome SmartHomeConfig `yaml:"smarthome"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// OAuthConfig contains the static OAuth2 client registry.
//
// Clients are loaded once at startup and are immutable for the process
// lifetime. There is no redirect URI allow-list: any redirect_uri presented
// at /authorize is accepted verbatim and used both for the redirect and as
// the match key at code exchange. That is acceptable for the account-linking
// sandbox this service targets, but is a known gap for anything beyond it.
type OAuthConfig struct {
	Clients []ClientConfig `yaml:"clients"`
}

// ClientConfig is a single registered OAuth2 client.
type ClientConfig struct {
	ID     string `yaml:"id"`
	Secret string `yaml:"secret"`
}

// WebhookConfig contains the automation webhook (Jenkins) settings.
type WebhookConfig struct {
	// URL is the webhook endpoint invoked on EXECUTE commands.
	URL string `yaml:"url"`

	// Username and APIToken are the basic-auth credentials for the endpoint.
	Username string `yaml:"username"`
	APIToken string `yaml:"api_token"`

	// JobToken is the static token passed as the `token` query parameter.
	JobToken string `yaml:"job_token"`

	// CooldownSeconds is the minimum interval between forwarded triggers.
	// Calls arriving inside the window are dropped, not queued.
	CooldownSeconds int `yaml:"cooldown_seconds"`

	// TimeoutSeconds bounds the outbound HTTP call.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// SmartHomeConfig contains smart-home fulfilment settings.
type SmartHomeConfig struct {
	// AgentUserID identifies the linked account in SYNC responses.
	AgentUserID string `yaml:"agent_user_id"`

	// DeviceID is the identifier of the single controllable switch.
	DeviceID string `yaml:"device_id"`

	// DeviceName is the display name reported in SYNC responses.
	DeviceName string `yaml:"device_name"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
//
// The bridge is a pure publisher: when enabled it announces cloud-commanded
// device state onto the Gray Logic bus so Core and wall panels stay in sync.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for trigger telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: CLOUDBRIDGE_SECTION_KEY
// For example: CLOUDBRIDGE_DATABASE_PATH, CLOUDBRIDGE_WEBHOOK_URL
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 5000,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Webhook: WebhookConfig{
			CooldownSeconds: 10,
			TimeoutSeconds:  5,
		},
		SmartHome: SmartHomeConfig{
			AgentUserID: "user-1234",
			DeviceID:    "jenkins_job",
			DeviceName:  "Jenkins Apply",
		},
		Database: DatabaseConfig{
			Path:        "./data/cloudbridge.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "cloudbridge",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: CLOUDBRIDGE_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// API
	if v := os.Getenv("CLOUDBRIDGE_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	// Database
	if v := os.Getenv("CLOUDBRIDGE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// Webhook - credentials should come from the environment, not the file
	if v := os.Getenv("CLOUDBRIDGE_WEBHOOK_URL"); v != "" {
		cfg.Webhook.URL = v
	}
	if v := os.Getenv("CLOUDBRIDGE_WEBHOOK_USERNAME"); v != "" {
		cfg.Webhook.Username = v
	}
	if v := os.Getenv("CLOUDBRIDGE_WEBHOOK_API_TOKEN"); v != "" {
		cfg.Webhook.APIToken = v
	}
	if v := os.Getenv("CLOUDBRIDGE_WEBHOOK_JOB_TOKEN"); v != "" {
		cfg.Webhook.JobToken = v
	}

	// MQTT
	if v := os.Getenv("CLOUDBRIDGE_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("CLOUDBRIDGE_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("CLOUDBRIDGE_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("CLOUDBRIDGE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// API validation
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// OAuth validation - at least one client so account linking can work
	if len(c.OAuth.Clients) == 0 {
		errs = append(errs, "oauth.clients must contain at least one client")
	}
	for i, client := range c.OAuth.Clients {
		if client.ID == "" {
			errs = append(errs, fmt.Sprintf("oauth.clients[%d].id is required", i))
		}
		if client.Secret == "" {
			errs = append(errs, fmt.Sprintf("oauth.clients[%d].secret is required", i))
		}
	}

	// Webhook validation
	if c.Webhook.URL == "" {
		errs = append(errs, "webhook.url is required (set CLOUDBRIDGE_WEBHOOK_URL environment variable)")
	}
	if c.Webhook.CooldownSeconds < 0 {
		errs = append(errs, "webhook.cooldown_seconds must not be negative")
	}
	if c.Webhook.TimeoutSeconds < 1 {
		errs = append(errs, "webhook.timeout_seconds must be at least 1")
	}

	// SmartHome validation
	if c.SmartHome.DeviceID == "" {
		errs = append(errs, "smarthome.device_id is required")
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// MQTT validation (only when enabled)
	if c.MQTT.Enabled && (c.MQTT.QoS < 0 || c.MQTT.QoS > 2) {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// InfluxDB validation (only when enabled)
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Bucket == "" {
			errs = append(errs, "influxdb.bucket is required when influxdb is enabled")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ClientSecret returns the secret for a registered client ID.
// The second return value reports whether the client is known.
func (c *OAuthConfig) ClientSecret(clientID string) (string, bool) {
	for _, client := range c.Clients {
		if client.ID == clientID {
			return client.Secret, true
		}
	}
	return "", false
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// GetCooldown returns the trigger cooldown as a Duration.
func (c *WebhookConfig) GetCooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// GetTimeout returns the outbound call timeout as a Duration.
func (c *WebhookConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
