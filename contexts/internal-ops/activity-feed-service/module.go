package activityfeedservice

import (
	"log/slog"

	httpadapter "conductor/contexts/internal-ops/activity-feed-service/adapters/http"
	"conductor/contexts/internal-ops/activity-feed-service/adapters/memory"
	"conductor/contexts/internal-ops/activity-feed-service/application"
	"conductor/contexts/internal-ops/activity-feed-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Entries     ports.EntryRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Entries: deps.Entries,
		Clock:   deps.Clock,
		IDs:     deps.IDGenerator,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service},
		Service: service,
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Entries:     store,
		Clock:       store,
		IDGenerator: store,
	})
	module.Store = store
	return module
}
