package payeeservice

import (
	"log/slog"

	httpadapter "conductor/contexts/finance-core/payee-service/adapters/http"
	"conductor/contexts/finance-core/payee-service/adapters/memory"
	"conductor/contexts/finance-core/payee-service/application"
	"conductor/contexts/finance-core/payee-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Splits      ports.SplitRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Splits: deps.Splits,
				Clock:  deps.Clock,
				IDs:    deps.IDGenerator,
				Logger: deps.Logger,
			},
		},
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Splits:      store,
		Clock:       store,
		IDGenerator: store,
	})
	module.Store = store
	return module
}
