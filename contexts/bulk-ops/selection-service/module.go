package selectionservice

import (
	"log/slog"

	httpadapter "conductor/contexts/bulk-ops/selection-service/adapters/http"
	"conductor/contexts/bulk-ops/selection-service/adapters/memory"
	"conductor/contexts/bulk-ops/selection-service/application"
	"conductor/contexts/bulk-ops/selection-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service *application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Store  ports.SelectionStore
	IDs    ports.EntityIDLister
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := &application.Service{
		Store:  deps.Store,
		IDs:    deps.IDs,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service},
		Service: service,
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{Store: store, IDs: store})
	module.Store = store
	return module
}
