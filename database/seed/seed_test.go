package seed

import (
	"context"
	"testing"
	"time"

	bookingRepo "cleanslate/database/repository/booking"
	customerRepo "cleanslate/database/repository/customer"
	trainingRepo "cleanslate/database/repository/training"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"

	"go.uber.org/zap"
)

func TestLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := Repos{
		Bookings:  bookingRepo.NewMemoryBookingRepo(),
		Workers:   workerRepo.NewMemoryWorkerRepo(),
		Customers: customerRepo.NewMemoryCustomerRepo(),
		Modules:   trainingRepo.NewMemoryTrainingRepo(),
	}
	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		if err := Load(ctx, repos, now, "ZAR", zap.NewNop()); err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
	}

	workers, _ := repos.Workers.List(ctx)
	if len(workers) != 4 {
		t.Fatalf("expected 4 workers, got %d", len(workers))
	}
	active, _ := repos.Workers.List(ctx, models.WorkerActive)
	if len(active) != 2 || active[0].ID != Worker1ID {
		t.Fatalf("expected worker1 and worker2 active, got %v", active)
	}
	for _, w := range active {
		if !w.TrainingVerified || !w.AllStepsCompleted() {
			t.Fatalf("expected %s to be fully onboarded", w.ID)
		}
	}
	modules, _ := repos.Modules.List(ctx)
	if len(modules) != 4 || modules[0].ID != "train001" {
		t.Fatalf("expected 4 modules starting with train001, got %v", modules)
	}

	all, _ := repos.Bookings.ListAll(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(all))
	}
	b1, err := repos.Bookings.GetByID(ctx, "booking1")
	if err != nil {
		t.Fatalf("booking1: %v", err)
	}
	// 150 minutes at R110/h plus R15 and R25 material fees.
	if b1.TotalPriceCents != 27500+1500+2500 {
		t.Fatalf("expected 31500 cents, got %d", b1.TotalPriceCents)
	}
	if !b1.BookingDate.Equal(time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected booking1 three days out on the hour, got %s", b1.BookingDate)
	}

	w2, _ := repos.Workers.GetByID(ctx, Worker2ID)
	if len(w2.UnavailableDates) != 1 || w2.UnavailableDates[0] != "2025-03-11" {
		t.Fatalf("expected worker2 blocked ten days out, got %v", w2.UnavailableDates)
	}
}
