package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	operationservice "conductor/contexts/bulk-ops/operation-service"
	operationpostgres "conductor/contexts/bulk-ops/operation-service/adapters/postgres"
	selectionservice "conductor/contexts/bulk-ops/selection-service"
	selectionpostgres "conductor/contexts/bulk-ops/selection-service/adapters/postgres"
	assetservice "conductor/contexts/catalog/asset-service"
	assetpostgres "conductor/contexts/catalog/asset-service/adapters/postgres"
	workflowservice "conductor/contexts/catalog/workflow-service"
	workflowpostgres "conductor/contexts/catalog/workflow-service/adapters/postgres"
	payeeservice "conductor/contexts/finance-core/payee-service"
	payeememory "conductor/contexts/finance-core/payee-service/adapters/memory"
	userservice "conductor/contexts/identity-access/user-service"
	userpostgres "conductor/contexts/identity-access/user-service/adapters/postgres"
	activityfeedservice "conductor/contexts/internal-ops/activity-feed-service"
	activitypostgres "conductor/contexts/internal-ops/activity-feed-service/adapters/postgres"
	"conductor/internal/platform/config"
	"conductor/internal/platform/db"
	"conductor/internal/platform/httpserver"
	"conductor/internal/platform/messaging"
	"conductor/internal/shared/outbox"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const eventsTopic = "conductor.events"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        outbox.Relay
	consumer     activityConsumer
	sweeper      selectionSweeper
	cfg          config.Config
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	modules := buildModules(pg, cfg, logger)
	server := httpserver.New(modules, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func buildModules(pg *db.Postgres, cfg config.Config, logger *slog.Logger) httpserver.Modules {
	clock := assetpostgres.SystemClock{}
	ids := assetpostgres.UUIDGenerator{}

	assetRepo := assetpostgres.NewRepository(pg.DB, logger)
	assetModule := assetservice.NewModule(assetservice.Dependencies{
		Assets:      assetRepo,
		Collections: assetRepo,
		Clock:       clock,
		IDGenerator: ids,
		Logger:      logger,
	})

	activityRepo := activitypostgres.NewRepository(pg.DB, logger)
	activityModule := activityfeedservice.NewModule(activityfeedservice.Dependencies{
		Entries:     activityRepo,
		Clock:       clock,
		IDGenerator: ids,
		Logger:      logger,
	})

	recorder := activityRecorder{
		feed:    activityModule.Service,
		outbox:  outbox.NewPostgresStore(pg.DB),
		service: cfg.ServiceName,
	}

	userRepo := userpostgres.NewRepository(pg.DB, logger)
	userModule := userservice.NewModule(userservice.Dependencies{
		Users:       userRepo,
		Activity:    recorder,
		Clock:       clock,
		IDGenerator: ids,
		Logger:      logger,
	})

	workflowRepo := workflowpostgres.NewRepository(pg.DB, logger)
	workflowModule := workflowservice.NewModule(workflowservice.Dependencies{
		Assets:         assetStateStore{assets: assetRepo},
		Repository:     workflowRepo,
		Idempotency:    workflowRepo,
		Activity:       recorder,
		Clock:          clock,
		IDGenerator:    ids,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Logger:         logger,
	})

	selectionModule := selectionservice.NewModule(selectionservice.Dependencies{
		Store: selectionpostgres.NewStore(pg.DB, logger),
		IDs: entityIDLister{
			assets: assetModule.Service,
			users:  userModule.Service,
		},
		Logger: logger,
	})

	operationModule := operationservice.NewModule(operationservice.Dependencies{
		Applier: bulkApplier{
			workflow: workflowModule.Handler.Service,
			assets:   assetModule.Service,
			users:    userModule.Service,
		},
		Repo:     operationpostgres.NewRepository(pg.DB, logger),
		Activity: recorder,
		Clock:    clock,
		IDs:      ids,
		Logger:   logger,
	})

	payeeModule := payeeservice.NewModule(payeeservice.Dependencies{
		Splits:      payeememory.NewStore(),
		Clock:       clock,
		IDGenerator: ids,
		Logger:      logger,
	})

	return httpserver.Modules{
		Assets:     assetModule,
		Workflow:   workflowModule,
		Selection:  selectionModule,
		Operations: operationModule,
		Users:      userModule,
		Payees:     payeeModule,
		Activity:   activityModule,
	}
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	activityRepo := activitypostgres.NewRepository(pg.DB, logger)
	activityModule := activityfeedservice.NewModule(activityfeedservice.Dependencies{
		Entries:     activityRepo,
		Clock:       assetpostgres.SystemClock{},
		IDGenerator: assetpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	return &WorkerApp{
		postgres: pg,
		relay: outbox.Relay{
			Store:     outbox.NewPostgresStore(pg.DB),
			Publisher: kafka,
			Topic:     eventsTopic,
			BatchSize: 100,
			Logger:    logger,
		},
		consumer: activityConsumer{
			feed:          activityModule.Service,
			bus:           kafka,
			topic:         eventsTopic,
			consumerGroup: "activity-feed-cg",
			logger:        logger,
		},
		sweeper: selectionSweeper{
			store:  selectionpostgres.NewStore(pg.DB, logger),
			clock:  assetpostgres.SystemClock{},
			maxAge: cfg.SelectionTTL,
			logger: logger,
		},
		cfg:          cfg,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.cfg.EnableActivityConsumer {
		if err := w.consumer.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if w.cfg.EnableOutboxRelay {
			if err := w.relay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.cfg.EnableSelectionSweeper {
			if err := w.sweeper.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
