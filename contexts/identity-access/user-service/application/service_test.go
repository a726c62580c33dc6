package application_test

import (
	"context"
	"errors"
	"testing"

	"conductor/contexts/identity-access/user-service/adapters/memory"
	"conductor/contexts/identity-access/user-service/application"
	"conductor/contexts/identity-access/user-service/domain/entities"
	domainerrors "conductor/contexts/identity-access/user-service/domain/errors"
	"conductor/contexts/identity-access/user-service/ports"
)

func newService() (application.Service, *memory.Store) {
	store := memory.NewStore()
	return application.Service{
		Users:    store,
		Activity: store,
		Clock:    store,
		IDs:      store,
	}, store
}

func TestCreateUserStartsActive(t *testing.T) {
	service, _ := newService()

	user, err := service.CreateUser(context.Background(), application.CreateUserInput{
		Email:       "Ana@Example.com",
		DisplayName: "Ana",
		Role:        entities.RoleContributor,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Status != entities.StatusActive {
		t.Fatalf("status = %q, want active", user.Status)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	service, _ := newService()
	mustCreateUser(t, service, "ana@example.com")

	_, err := service.CreateUser(context.Background(), application.CreateUserInput{
		Email:       "ana@example.com",
		DisplayName: "Other",
		Role:        entities.RoleReviewer,
	})
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	service, _ := newService()

	_, err := service.CreateUser(context.Background(), application.CreateUserInput{
		Email:       "bo@example.com",
		DisplayName: "Bo",
		Role:        entities.Role("superuser"),
	})
	if !errors.Is(err, domainerrors.ErrInvalidRole) {
		t.Fatalf("err = %v, want ErrInvalidRole", err)
	}
}

func TestSuspendAndActivate(t *testing.T) {
	service, store := newService()
	user := mustCreateUser(t, service, "ana@example.com")

	suspended, err := service.Suspend(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if suspended.Status != entities.StatusSuspended {
		t.Fatalf("status = %q, want suspended", suspended.Status)
	}

	_, err = service.Suspend(context.Background(), user.UserID)
	if !errors.Is(err, domainerrors.ErrAlreadyInState) {
		t.Fatalf("second suspend err = %v, want ErrAlreadyInState", err)
	}

	activated, err := service.Activate(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if activated.Status != entities.StatusActive {
		t.Fatalf("status = %q, want active", activated.Status)
	}

	changes := store.StatusChanges()
	if len(changes) != 2 {
		t.Fatalf("published %d status changes, want 2", len(changes))
	}
	if changes[0].Previous != entities.StatusActive || changes[1].Previous != entities.StatusSuspended {
		t.Fatalf("unexpected change sequence: %#v", changes)
	}
}

func TestListUserIDsFollowsListOrder(t *testing.T) {
	service, _ := newService()
	var want []string
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		want = append(want, mustCreateUser(t, service, email).UserID)
	}

	ids, err := service.ListUserIDs(context.Background(), ports.UserListFilter{})
	if err != nil {
		t.Fatalf("ListUserIDs: %v", err)
	}
	if len(ids) != len(want) {
		t.Fatalf("len = %d, want %d", len(ids), len(want))
	}
	for i := range ids {
		if ids[i] != want[i] {
			t.Fatalf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestListUsersFiltersByStatus(t *testing.T) {
	service, _ := newService()
	active := mustCreateUser(t, service, "a@example.com")
	target := mustCreateUser(t, service, "b@example.com")
	if _, err := service.Suspend(context.Background(), target.UserID); err != nil {
		t.Fatalf("Suspend: %v", err)
	}

	users, total, err := service.ListUsers(context.Background(), ports.UserListFilter{Status: entities.StatusSuspended})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].UserID != target.UserID {
		t.Fatalf("got %d/%d users, want exactly the suspended one (not %s)", len(users), total, active.UserID)
	}
}

func mustCreateUser(t *testing.T, service application.Service, email string) entities.User {
	t.Helper()
	user, err := service.CreateUser(context.Background(), application.CreateUserInput{
		Email:       email,
		DisplayName: "User",
		Role:        entities.RoleContributor,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}
