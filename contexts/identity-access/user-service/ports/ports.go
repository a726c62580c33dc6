package ports

import (
	"context"
	"time"

	"conductor/contexts/identity-access/user-service/domain/entities"
)

// UserListFilter scopes list and ordered-ID queries. ListIDs ignores
// pagination and returns every matching ID in stable (created_at, user_id)
// order.
type UserListFilter struct {
	Role   entities.Role
	Status entities.Status
	Search string
	Limit  int
	Offset int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	UpdateUser(ctx context.Context, user entities.User) error
	ListUsers(ctx context.Context, filter UserListFilter) ([]entities.User, int, error)
	ListUserIDs(ctx context.Context, filter UserListFilter) ([]string, error)
}

type ActivityPublisher interface {
	PublishUserStatusChange(ctx context.Context, user entities.User, previous entities.Status) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
