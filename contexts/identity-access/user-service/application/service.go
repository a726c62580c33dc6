package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"conductor/contexts/identity-access/user-service/domain/entities"
	domainerrors "conductor/contexts/identity-access/user-service/domain/errors"
	"conductor/contexts/identity-access/user-service/ports"
)

type Service struct {
	Users    ports.UserRepository
	Activity ports.ActivityPublisher
	Clock    ports.Clock
	IDs      ports.IDGenerator
	Logger   *slog.Logger
}

type CreateUserInput struct {
	Email       string
	DisplayName string
	Role        entities.Role
}

func (s Service) CreateUser(ctx context.Context, input CreateUserInput) (entities.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.Email == "" || !strings.Contains(input.Email, "@") || input.DisplayName == "" {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}
	if !entities.ValidRole(input.Role) {
		return entities.User{}, domainerrors.ErrInvalidRole
	}
	if _, err := s.Users.GetUserByEmail(ctx, input.Email); err == nil {
		return entities.User{}, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return entities.User{}, err
	}

	userID, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := s.Clock.Now().UTC()
	user := entities.User{
		UserID:      userID,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Role:        input.Role,
		Status:      entities.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (s Service) GetUser(ctx context.Context, userID string) (entities.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.User{}, domainerrors.ErrInvalidRequest
	}
	return s.Users.GetUser(ctx, userID)
}

type UpdateUserInput struct {
	UserID      string
	DisplayName string
	Role        entities.Role
}

func (s Service) UpdateUser(ctx context.Context, input UpdateUserInput) (entities.User, error) {
	user, err := s.Users.GetUser(ctx, strings.TrimSpace(input.UserID))
	if err != nil {
		return entities.User{}, err
	}
	if name := strings.TrimSpace(input.DisplayName); name != "" {
		user.DisplayName = name
	}
	if input.Role != "" {
		if !entities.ValidRole(input.Role) {
			return entities.User{}, domainerrors.ErrInvalidRole
		}
		user.Role = input.Role
	}
	user.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Users.UpdateUser(ctx, user); err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (s Service) ListUsers(ctx context.Context, filter ports.UserListFilter) ([]entities.User, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.Users.ListUsers(ctx, filter)
}

// ListUserIDs mirrors the asset bulk-ID endpoint for the user table.
func (s Service) ListUserIDs(ctx context.Context, filter ports.UserListFilter) ([]string, error) {
	return s.Users.ListUserIDs(ctx, filter)
}

func (s Service) Suspend(ctx context.Context, userID string) (entities.User, error) {
	return s.setStatus(ctx, userID, entities.StatusSuspended)
}

func (s Service) Activate(ctx context.Context, userID string) (entities.User, error) {
	return s.setStatus(ctx, userID, entities.StatusActive)
}

func (s Service) setStatus(ctx context.Context, userID string, status entities.Status) (entities.User, error) {
	user, err := s.Users.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return entities.User{}, err
	}
	if user.Status == status {
		return entities.User{}, domainerrors.ErrAlreadyInState
	}
	previous := user.Status
	user.Status = status
	user.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Users.UpdateUser(ctx, user); err != nil {
		return entities.User{}, err
	}
	if s.Activity != nil {
		if err := s.Activity.PublishUserStatusChange(ctx, user, previous); err != nil {
			s.logger().Warn("publishing user status change failed",
				"event", "user_status_publish_failed",
				"module", "user-service",
				"layer", "application",
				"user_id", user.UserID,
				"error", err)
		}
	}
	s.logger().Info("user status changed",
		"event", "user_status_changed",
		"module", "user-service",
		"layer", "application",
		"user_id", user.UserID,
		"from", string(previous),
		"to", string(status))
	return user, nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
