package customer

import (
	"context"
	"errors"
	"testing"

	"cleanslate/database/repository"
	customerRepo "cleanslate/database/repository/customer"
	"cleanslate/models"
	"cleanslate/services/notification"

	"go.uber.org/zap"
)

func TestSignupAndGet(t *testing.T) {
	events := &notification.RecordingPublisher{}
	svc := NewDefaultCustomerService(customerRepo.NewMemoryCustomerRepo(), events, zap.NewNop())
	ctx := context.Background()

	c, err := svc.Signup(ctx, models.CustomerSignup{FullName: " Thandi M ", Email: "Thandi@Example.com"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.FullName != "Thandi M" || c.Email != "thandi@example.com" || c.Version != 1 {
		t.Fatalf("unexpected customer %+v", c)
	}
	if types := events.Types(); len(types) != 1 || types[0] != models.EventCustomerCreated {
		t.Fatalf("expected customer.created, got %v", types)
	}

	got, err := svc.Get(ctx, c.ID)
	if err != nil || got.Email != c.Email {
		t.Fatalf("expected stored customer, got %v (%v)", got, err)
	}

	if _, err := svc.Signup(ctx, models.CustomerSignup{FullName: "Other", Email: "thandi@example.com"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
