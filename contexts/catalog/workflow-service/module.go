package workflowservice

import (
	"log/slog"
	"time"

	httpadapter "conductor/contexts/catalog/workflow-service/adapters/http"
	"conductor/contexts/catalog/workflow-service/adapters/memory"
	"conductor/contexts/catalog/workflow-service/application"
	"conductor/contexts/catalog/workflow-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Assets         ports.AssetStateStore
	Repository     ports.Repository
	Idempotency    ports.IdempotencyStore
	Activity       ports.ActivityPublisher
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Assets:         deps.Assets,
				Repo:           deps.Repository,
				Idempotency:    deps.Idempotency,
				Activity:       deps.Activity,
				Clock:          deps.Clock,
				IDs:            deps.IDGenerator,
				IdempotencyTTL: deps.IdempotencyTTL,
				Logger:         deps.Logger,
			},
		},
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Assets:         store,
		Repository:     store,
		Idempotency:    store,
		Activity:       store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 7 * 24 * time.Hour,
	})
	module.Store = store
	return module
}
