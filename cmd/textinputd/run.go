package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	_ "github.com/nerrad567/gray-logic-textinput/migrations"

	"github.com/nerrad567/gray-logic-textinput/internal/api"
	"github.com/nerrad567/gray-logic-textinput/internal/automation"
	"github.com/nerrad567/gray-logic-textinput/internal/core"
	"github.com/nerrad567/gray-logic-textinput/internal/entity"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/metrics"
	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-textinput/internal/manifest"
	"github.com/nerrad567/gray-logic-textinput/internal/mqttcomponent"
	"github.com/nerrad567/gray-logic-textinput/internal/textinput"
)

// historyPruneInterval is how often expired history rows are deleted.
const historyPruneInterval = time.Hour

func newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the text input node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNode(cmd.Context(), getConfigPath(configPath))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to config.yaml (default $TEXTINPUT_CONFIG or "+defaultConfigPath+")")
	return cmd
}

// runNode is the node lifecycle: it builds every component from the
// configuration, applies the entity manifest and serves until ctx is
// cancelled.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - configPath: Path of config.yaml
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func runNode(ctx context.Context, configPath string) error { //nolint:gocognit,gocyclo // linear startup sequence
	log := logging.Default()
	log.Info("starting textinputd",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// ─── Persistence ────────────────────────────────────────────────

	db, err := database.Open(ctx, database.Config{
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

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	history := textinput.NewSQLiteHistory(db.DB)
	executions := automation.NewSQLiteRepository(db.DB)

	m := metrics.New()
	hub := api.NewHub(cfg.WebSocket, log.Component("websocket"))
	checks := map[string]api.HealthCheck{"database": db.HealthCheck}

	// ─── MQTT (optional) ────────────────────────────────────────────

	var (
		mqttClient *mqtt.Client
		registrar  *mqttcomponent.Registrar
		features   []string
	)
	if cfg.MQTT.Enabled {
		topics := mqtt.NewTopics(cfg.StateTopicPrefix(), cfg.MQTT.DiscoveryPrefix)
		mqttClient, err = mqtt.Connect(cfg.MQTT, topics)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.Component("mqtt"))
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		friendly := cfg.Node.FriendlyName
		if friendly == "" {
			friendly = cfg.Node.Name
		}
		registrar = mqttcomponent.NewRegistrar(mqttClient, topics, mqttcomponent.Node{
			ID:              cfg.Node.Name,
			Name:            friendly,
			Version:         version,
			DefaultQoS:      byte(cfg.MQTT.QoS), //nolint:gosec // validated 0..2
			DefaultDiscover: cfg.MQTT.Discovery,
		})
		registrar.SetLogger(log.Component("mqttcomponent"))

		m.SetMQTTConnected(true)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
			m.SetMQTTConnected(true)
			registrar.RepublishDiscovery()
			registrar.RepublishState()
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
			m.SetMQTTConnected(false)
		})

		checks["mqtt"] = mqttClient.HealthCheck
		features = append(features, textinput.FeatureMQTT)
	} else {
		log.Info("MQTT disabled")
	}

	// ─── InfluxDB (optional) ────────────────────────────────────────

	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB, cfg.Node.Name)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		checks["influxdb"] = influxClient.HealthCheck
	} else {
		log.Info("InfluxDB disabled")
	}

	// ─── Automations ────────────────────────────────────────────────

	engine := automation.NewEngine(executions, hub, log.Component("automation"))
	engine.AddObserver(func(exec *automation.Execution) {
		m.AutomationFinished(string(exec.Status), exec.Duration())
		if influxClient != nil {
			influxClient.WriteAutomationRun(exec.AutomationID, string(exec.Status), exec.Duration(), exec.ActionsCompleted)
		}
	})
	defer engine.Wait()

	app := core.NewApp()
	app.SetLogger(log.Component("core"))

	builder := automation.NewBuilder(engine, app, log.Component("automation"))
	if mqttClient != nil {
		builder.SetPublisher(mqttClient)
	}

	// ─── Entities ───────────────────────────────────────────────────

	setupDeps := textinput.Deps{
		Registry:    app,
		Entities:    entity.NewSetup(log.Component("entity")),
		Automations: builder,
		Logger:      log.Component("textinput"),
	}
	if registrar != nil {
		setupDeps.MQTT = registrar
	}

	loader := manifest.NewLoader(core.NewCatalog(textinput.NewSetup(setupDeps)), features...)
	loader.SetLogger(log.Component("manifest"))

	mf, err := loader.LoadFile(cfg.Entities.Path)
	if err != nil {
		return fmt.Errorf("loading entity manifest: %w", err)
	}
	if err := loader.Apply(ctx, mf); err != nil {
		return fmt.Errorf("applying entity manifest: %w", err)
	}

	recorderDeps := textinput.RecorderDeps{
		History: history,
		Hub:     hub,
		Metrics: m,
		Logger:  log.Component("recorder"),
	}
	if influxClient != nil {
		recorderDeps.TSDB = influxClient
	}
	recorder := textinput.NewRecorder(recorderDeps)

	textInputs := app.TextInputs()
	for _, t := range textInputs {
		if err := recorder.Restore(ctx, t); err != nil {
			log.Warn("restoring text input failed", "id", t.ID(), "error", err)
		}
		recorder.Attach(t)
	}
	if registrar != nil {
		registrar.RepublishState()
	}
	m.SetEntities(textinput.Domain, len(textInputs))
	log.Info("entities ready", "text_inputs", len(textInputs))

	// ─── Serve ──────────────────────────────────────────────────────

	g, gctx := errgroup.WithContext(ctx)

	if cfg.API.Enabled {
		srv, err := api.New(api.Deps{
			Config:     cfg.API,
			WS:         cfg.WebSocket,
			Logger:     log.Component("api"),
			Entities:   app,
			History:    history,
			Executions: executions,
			Metrics:    m,
			Checks:     checks,
			Hub:        hub,
			Version:    version,
		})
		if err != nil {
			return fmt.Errorf("creating API server: %w", err)
		}
		if err := srv.Start(gctx); err != nil {
			return fmt.Errorf("starting API server: %w", err)
		}
		g.Go(func() error {
			<-gctx.Done()
			return srv.Close()
		})
	} else {
		log.Info("API disabled")
		go hub.Run(gctx)
	}

	if retention := cfg.HistoryRetention(); retention > 0 {
		g.Go(func() error {
			pruneHistory(gctx, history, retention, log)
			return nil
		})
	}

	log.Info("textinputd started")
	<-gctx.Done()
	log.Info("shutdown signal received")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("textinputd stopped")
	return nil
}

// pruneHistory deletes history older than retention, once at startup and
// then every historyPruneInterval until ctx is cancelled.
func pruneHistory(ctx context.Context, h *textinput.SQLiteHistory, retention time.Duration, log *logging.Logger) {
	ticker := time.NewTicker(historyPruneInterval)
	defer ticker.Stop()

	for {
		n, err := h.Prune(ctx, retention)
		switch {
		case err != nil && ctx.Err() == nil:
			log.Warn("pruning text input history failed", "error", err)
		case n > 0:
			log.Info("pruned text input history", "rows", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
