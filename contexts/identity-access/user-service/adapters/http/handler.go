package http

import (
	"context"
	"time"

	"conductor/contexts/identity-access/user-service/application"
	"conductor/contexts/identity-access/user-service/domain/entities"
	"conductor/contexts/identity-access/user-service/ports"
	httptransport "conductor/contexts/identity-access/user-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) CreateUserHandler(ctx context.Context, req httptransport.CreateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.CreateUser(ctx, application.CreateUserInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        entities.Role(req.Role),
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func (h Handler) GetUserHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Service.GetUser(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func (h Handler) UpdateUserHandler(ctx context.Context, userID string, req httptransport.UpdateUserRequest) (httptransport.UserResponse, error) {
	user, err := h.Service.UpdateUser(ctx, application.UpdateUserInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Role:        entities.Role(req.Role),
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func (h Handler) ListUsersHandler(ctx context.Context, filter ports.UserListFilter) (httptransport.UserListResponse, error) {
	users, total, err := h.Service.ListUsers(ctx, filter)
	if err != nil {
		return httptransport.UserListResponse{}, err
	}
	resp := httptransport.UserListResponse{
		Items: make([]httptransport.UserResponse, 0, len(users)),
		Total: total,
	}
	for _, user := range users {
		resp.Items = append(resp.Items, userResponse(user))
	}
	return resp, nil
}

func (h Handler) ListUserIDsHandler(ctx context.Context, filter ports.UserListFilter) (httptransport.UserIDListResponse, error) {
	ids, err := h.Service.ListUserIDs(ctx, filter)
	if err != nil {
		return httptransport.UserIDListResponse{}, err
	}
	return httptransport.UserIDListResponse{IDs: ids}, nil
}

func (h Handler) SuspendUserHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Service.Suspend(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func (h Handler) ActivateUserHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.Service.Activate(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

func userResponse(user entities.User) httptransport.UserResponse {
	return httptransport.UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		Status:      string(user.Status),
		CreatedAt:   user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
