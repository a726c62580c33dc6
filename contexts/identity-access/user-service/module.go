package userservice

import (
	"log/slog"

	httpadapter "conductor/contexts/identity-access/user-service/adapters/http"
	"conductor/contexts/identity-access/user-service/adapters/memory"
	"conductor/contexts/identity-access/user-service/application"
	"conductor/contexts/identity-access/user-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Users       ports.UserRepository
	Activity    ports.ActivityPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:    deps.Users,
		Activity: deps.Activity,
		Clock:    deps.Clock,
		IDs:      deps.IDGenerator,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service},
		Service: service,
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:       store,
		Activity:    store,
		Clock:       store,
		IDGenerator: store,
	})
	module.Store = store
	return module
}
