package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// validConfig is a minimal configuration that passes validation.
const validConfig = `
api:
  host: "0.0.0.0"
  port: 5000
oauth:
  clients:
    - id: "google-home"
      secret: "shhh-test-secret"
webhook:
  url: "https://jenkins.example.com/generic-webhook-trigger/invoke"
  username: "jenkins"
  api_token: "test-api-token"
  job_token: "terraform"
database:
  path: "/tmp/cloudbridge-test.db"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 5000 {
		t.Errorf("API.Port = %d, want 5000", cfg.API.Port)
	}
	if len(cfg.OAuth.Clients) != 1 || cfg.OAuth.Clients[0].ID != "google-home" {
		t.Errorf("OAuth.Clients = %+v, want one client google-home", cfg.OAuth.Clients)
	}
	if cfg.Webhook.URL != "https://jenkins.example.com/generic-webhook-trigger/invoke" {
		t.Errorf("Webhook.URL = %q", cfg.Webhook.URL)
	}

	// Defaults survive partial files
	if cfg.Webhook.CooldownSeconds != 10 {
		t.Errorf("Webhook.CooldownSeconds = %d, want default 10", cfg.Webhook.CooldownSeconds)
	}
	if cfg.SmartHome.DeviceID != "jenkins_job" {
		t.Errorf("SmartHome.DeviceID = %q, want default jenkins_job", cfg.SmartHome.DeviceID)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLOUDBRIDGE_WEBHOOK_URL", "https://other.example.com/hook")
	t.Setenv("CLOUDBRIDGE_DATABASE_PATH", "/tmp/override.db")

	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Webhook.URL != "https://other.example.com/hook" {
		t.Errorf("Webhook.URL = %q, want env override", cfg.Webhook.URL)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg := defaultConfig()
		cfg.OAuth.Clients = []ClientConfig{{ID: "client", Secret: "secret"}}
		cfg.Webhook.URL = "https://jenkins.example.com/hook"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "no clients",
			mutate:  func(c *Config) { c.OAuth.Clients = nil },
			wantErr: "oauth.clients",
		},
		{
			name:    "client missing secret",
			mutate:  func(c *Config) { c.OAuth.Clients[0].Secret = "" },
			wantErr: "secret is required",
		},
		{
			name:    "missing webhook url",
			mutate:  func(c *Config) { c.Webhook.URL = "" },
			wantErr: "webhook.url",
		},
		{
			name:    "negative cooldown",
			mutate:  func(c *Config) { c.Webhook.CooldownSeconds = -1 },
			wantErr: "cooldown_seconds",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Webhook.TimeoutSeconds = 0 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.API.Port = 0 },
			wantErr: "api.port",
		},
		{
			name:    "missing device id",
			mutate:  func(c *Config) { c.SmartHome.DeviceID = "" },
			wantErr: "smarthome.device_id",
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name: "invalid mqtt qos when enabled",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.QoS = 3
			},
			wantErr: "mqtt.qos",
		},
		{
			name: "mqtt qos ignored when disabled",
			mutate: func(c *Config) {
				c.MQTT.Enabled = false
				c.MQTT.QoS = 3
			},
		},
		{
			name: "influxdb enabled without url",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.Bucket = "triggers"
			},
			wantErr: "influxdb.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestOAuthConfig_ClientSecret(t *testing.T) {
	oauth := OAuthConfig{Clients: []ClientConfig{
		{ID: "google-home", Secret: "s1"},
		{ID: "alexa", Secret: "s2"},
	}}

	if secret, ok := oauth.ClientSecret("alexa"); !ok || secret != "s2" {
		t.Errorf("ClientSecret(alexa) = %q, %v; want s2, true", secret, ok)
	}
	if _, ok := oauth.ClientSecret("unknown"); ok {
		t.Error("ClientSecret(unknown) = true, want false")
	}
}

func TestWebhookConfig_Durations(t *testing.T) {
	w := WebhookConfig{CooldownSeconds: 10, TimeoutSeconds: 5}
	if w.GetCooldown().Seconds() != 10 {
		t.Errorf("GetCooldown() = %v, want 10s", w.GetCooldown())
	}
	if w.GetTimeout().Seconds() != 5 {
		t.Errorf("GetTimeout() = %v, want 5s", w.GetTimeout())
	}
}
