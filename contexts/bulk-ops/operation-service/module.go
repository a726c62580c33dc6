package operationservice

import (
	"log/slog"

	httpadapter "conductor/contexts/bulk-ops/operation-service/adapters/http"
	"conductor/contexts/bulk-ops/operation-service/adapters/memory"
	"conductor/contexts/bulk-ops/operation-service/application"
	"conductor/contexts/bulk-ops/operation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Applier  ports.ActionApplier
	Repo     ports.Repository
	Activity ports.ActivityPublisher
	Clock    ports.Clock
	IDs      ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Runner: application.Runner{
				Applier:  deps.Applier,
				Repo:     deps.Repo,
				Activity: deps.Activity,
				Clock:    deps.Clock,
				IDs:      deps.IDs,
				Logger:   deps.Logger,
			},
		},
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Applier:  store,
		Repo:     store,
		Activity: store,
		Clock:    store,
		IDs:      store,
	})
	module.Store = store
	return module
}
