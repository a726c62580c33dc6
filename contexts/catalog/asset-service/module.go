package assetservice

import (
	"log/slog"

	httpadapter "conductor/contexts/catalog/asset-service/adapters/http"
	"conductor/contexts/catalog/asset-service/adapters/memory"
	"conductor/contexts/catalog/asset-service/application"
	"conductor/contexts/catalog/asset-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Assets      ports.AssetRepository
	Collections ports.CollectionRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Assets:      deps.Assets,
		Collections: deps.Collections,
		Clock:       deps.Clock,
		IDs:         deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service},
		Service: service,
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Assets:      store,
		Collections: store,
		Clock:       store,
		IDGenerator: store,
	})
	module.Store = store
	return module
}
