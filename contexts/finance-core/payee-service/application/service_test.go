package application_test

import (
	"context"
	"errors"
	"testing"

	"conductor/contexts/finance-core/payee-service/adapters/memory"
	"conductor/contexts/finance-core/payee-service/application"
	"conductor/contexts/finance-core/payee-service/domain/entities"
	domainerrors "conductor/contexts/finance-core/payee-service/domain/errors"
)

func newService() application.Service {
	store := memory.NewStore()
	return application.Service{Splits: store, Clock: store, IDs: store}
}

func TestCreateSplitStartsPending(t *testing.T) {
	service := newService()

	split, err := service.CreateSplit(context.Background(), application.CreateSplitInput{
		ContributorID: "contrib_1",
		PayeeEmail:    "payee@example.com",
		Percent:       40,
	})
	if err != nil {
		t.Fatalf("CreateSplit: %v", err)
	}
	if split.Status != entities.SplitPending {
		t.Fatalf("status = %q, want pending", split.Status)
	}
}

func TestCreateSplitEnforcesHundredPercentCap(t *testing.T) {
	service := newService()
	mustCreateSplit(t, service, 60)
	mustCreateSplit(t, service, 30)

	_, err := service.CreateSplit(context.Background(), application.CreateSplitInput{
		ContributorID: "contrib_1",
		PayeeEmail:    "third@example.com",
		Percent:       20,
	})
	if !errors.Is(err, domainerrors.ErrShareExceeded) {
		t.Fatalf("err = %v, want ErrShareExceeded", err)
	}

	// Exactly filling the remaining 10 is allowed.
	if _, err := service.CreateSplit(context.Background(), application.CreateSplitInput{
		ContributorID: "contrib_1",
		PayeeEmail:    "third@example.com",
		Percent:       10,
	}); err != nil {
		t.Fatalf("CreateSplit at cap: %v", err)
	}
}

func TestRevokedSplitFreesAllocation(t *testing.T) {
	service := newService()
	big := mustCreateSplit(t, service, 90)

	if _, err := service.RevokeSplit(context.Background(), big.SplitID); err != nil {
		t.Fatalf("RevokeSplit: %v", err)
	}
	if _, err := service.CreateSplit(context.Background(), application.CreateSplitInput{
		ContributorID: "contrib_1",
		PayeeEmail:    "new@example.com",
		Percent:       90,
	}); err != nil {
		t.Fatalf("CreateSplit after revoke: %v", err)
	}
}

func TestAcceptSplitLifecycle(t *testing.T) {
	service := newService()
	split := mustCreateSplit(t, service, 50)

	accepted, err := service.AcceptSplit(context.Background(), split.SplitID)
	if err != nil {
		t.Fatalf("AcceptSplit: %v", err)
	}
	if accepted.Status != entities.SplitActive {
		t.Fatalf("status = %q, want active", accepted.Status)
	}

	_, err = service.AcceptSplit(context.Background(), split.SplitID)
	if !errors.Is(err, domainerrors.ErrSplitNotPending) {
		t.Fatalf("second accept err = %v, want ErrSplitNotPending", err)
	}

	if _, err := service.RevokeSplit(context.Background(), split.SplitID); err != nil {
		t.Fatalf("RevokeSplit: %v", err)
	}
	_, err = service.RevokeSplit(context.Background(), split.SplitID)
	if !errors.Is(err, domainerrors.ErrSplitRevoked) {
		t.Fatalf("second revoke err = %v, want ErrSplitRevoked", err)
	}
}

func TestCreateSplitValidation(t *testing.T) {
	service := newService()

	_, err := service.CreateSplit(context.Background(), application.CreateSplitInput{
		ContributorID: "contrib_1",
		PayeeEmail:    "payee@example.com",
		Percent:       0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPercent) {
		t.Fatalf("err = %v, want ErrInvalidPercent", err)
	}

	_, err = service.CreateSplit(context.Background(), application.CreateSplitInput{
		ContributorID: "contrib_1",
		PayeeEmail:    "not-an-email",
		Percent:       10,
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}

func mustCreateSplit(t *testing.T, service application.Service, percent int) entities.Split {
	t.Helper()
	split, err := service.CreateSplit(context.Background(), application.CreateSplitInput{
		ContributorID: "contrib_1",
		PayeeEmail:    "payee@example.com",
		Percent:       percent,
	})
	if err != nil {
		t.Fatalf("CreateSplit(%d): %v", percent, err)
	}
	return split
}
