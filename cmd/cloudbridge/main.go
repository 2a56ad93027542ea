// Cloud Bridge - Google Home account linking and intent fulfillment
//
// This is the main entry point for the cloud bridge. It runs the mock
// OAuth2 authorization server Google's Cloud-to-Cloud account linking
// talks to, and the smart home fulfillment endpoint that turns voice
// commands into debounced automation webhook triggers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/gray-cloud-bridge/migrations"

	"github.com/nerrad567/gray-cloud-bridge/internal/api"
	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/config"
	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/database"
	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-cloud-bridge/internal/oauth"
	"github.com/nerrad567/gray-cloud-bridge/internal/smarthome"
	"github.com/nerrad567/gray-cloud-bridge/internal/trigger"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// tokenGaugeInterval is how often token store sizes are reported to telemetry.
const tokenGaugeInterval = 60 * time.Second

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Cloud Bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise OAuth stores and reload persisted tokens
	clients := make([]oauth.Client, 0, len(cfg.OAuth.Clients))
	for _, c := range cfg.OAuth.Clients {
		clients = append(clients, oauth.Client{ID: c.ID, Secret: c.Secret})
	}
	registry := oauth.NewRegistry(clients)

	tokens := oauth.NewTokenStore(oauth.NewTokenRepository(db.DB))
	if loadErr := tokens.Load(ctx); loadErr != nil {
		return fmt.Errorf("loading token store: %w", loadErr)
	}
	accessCount, refreshCount := tokens.Counts()
	log.Info("token store loaded", "access", accessCount, "refresh", refreshCount)

	grant := oauth.NewGrantMachine(registry, oauth.NewCodeLedger(), tokens)
	grant.SetLogger(log)

	// Webhook trigger path: HTTP caller behind the cooldown gate
	webhook := trigger.NewWebhookClient(cfg.Webhook)
	webhook.SetLogger(log)
	debouncer := trigger.NewDebouncer(cfg.Webhook.GetCooldown(), webhook)
	debouncer.SetLogger(log)

	// Intent dispatcher over the in-memory device state table
	dispatcher := smarthome.NewDispatcher(cfg.SmartHome, smarthome.NewStateTable(), debouncer)
	dispatcher.SetLogger(log)

	// Connect to MQTT broker (optional)
	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		dispatcher.SetPublisher(mqttClient)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		debouncer.SetTelemetry(influxClient)
		go tokenGaugeLoop(ctx, influxClient, tokens)
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start API server
	server, err := api.New(api.Deps{
		Config:     cfg.API,
		Logger:     log,
		Grant:      grant,
		Dispatcher: dispatcher,
		Version:    version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
	)

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("Cloud Bridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses CLOUDBRIDGE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("CLOUDBRIDGE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// tokenGaugeLoop periodically reports token store sizes to telemetry until
// the context is cancelled.
func tokenGaugeLoop(ctx context.Context, client *influxdb.Client, tokens *oauth.TokenStore) {
	ticker := time.NewTicker(tokenGaugeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			access, refresh := tokens.Counts()
			client.WriteTokenCount(access, refresh)
		case <-ctx.Done():
			return
		}
	}
}
