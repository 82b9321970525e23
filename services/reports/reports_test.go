package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"cleanslate/database/repository"
	bookingRepo "cleanslate/database/repository/booking"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
)

func seedReports(t *testing.T) *ReportService {
	t.Helper()
	ctx := context.Background()
	bookings := bookingRepo.NewMemoryBookingRepo()
	workers := workerRepo.NewMemoryWorkerRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, w := range []*models.Worker{
		{ID: "wa", FullName: "Jane Doe", Email: "a@example.com", Status: models.WorkerActive, BankName: "FNB", BankAccountNumber: "1234567890"},
		{ID: "wb", FullName: "Suspended Sam", Email: "b@example.com", Status: models.WorkerSuspended},
		{ID: "wc", FullName: "Idle Ida", Email: "c@example.com", Status: models.WorkerActive},
	} {
		w.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		w.Version = 1
		if err := workers.Create(ctx, w); err != nil {
			t.Fatalf("seed worker: %v", err)
		}
	}

	five, four := 5, 4
	for _, b := range []*models.Booking{
		{ID: "b1", WorkerID: "wa", BookingDate: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC), Status: models.StatusCompletedByWorker, TotalPriceCents: 10000, Rating: &five},
		{ID: "b2", WorkerID: "wa", BookingDate: time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC), Status: models.StatusCustomerConfirmedAndRated, TotalPriceCents: 5001, Rating: &four},
		{ID: "b3", WorkerID: "wa", BookingDate: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC), Status: models.StatusConfirmedByWorker, TotalPriceCents: 9999},
		{ID: "b4", WorkerID: "wa", BookingDate: time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC), Status: models.StatusCompletedByWorker, TotalPriceCents: 20000},
		{ID: "b5", WorkerID: "wb", BookingDate: time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC), Status: models.StatusCompletedByWorker, TotalPriceCents: 3000},
	} {
		b.Version = 1
		if err := bookings.Create(ctx, b); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	return NewReportService(bookings, workers, "ZAR", time.UTC, 0.1).WithClock(func() time.Time { return now })
}

func TestPayrollCurrentMonth(t *testing.T) {
	svc := seedReports(t)

	run, err := svc.Payroll(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if run.Period != "2025-03" || run.Currency != "ZAR" {
		t.Fatalf("unexpected period or currency: %s %s", run.Period, run.Currency)
	}
	if run.WorkersCount != 2 {
		t.Fatalf("expected 2 active workers, got %d", run.WorkersCount)
	}

	jane := run.Payouts[0]
	if jane.WorkerID != "wa" || jane.CompletedBookings != 2 {
		t.Fatalf("expected 2 completed bookings for wa, got %+v", jane)
	}
	if jane.GrossCents != 15001 || jane.CommissionCents != 1500 || jane.PayoutCents != 13501 {
		t.Fatalf("unexpected payout math: %+v", jane)
	}
	if idle := run.Payouts[1]; idle.WorkerID != "wc" || idle.PayoutCents != 0 {
		t.Fatalf("expected an empty line for wc, got %+v", idle)
	}
	if run.TotalCents != 13501 {
		t.Fatalf("expected total 13501, got %d", run.TotalCents)
	}
}

func TestPayrollPreviousMonth(t *testing.T) {
	svc := seedReports(t)

	run, err := svc.Payroll(context.Background(), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if run.Payouts[0].GrossCents != 20000 || run.Payouts[0].PayoutCents != 18000 {
		t.Fatalf("expected February's booking only, got %+v", run.Payouts[0])
	}
}

func TestEarnings(t *testing.T) {
	svc := seedReports(t)

	sum, err := svc.Earnings(context.Background(), "wa")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sum.TotalCompletedJobs != 3 {
		t.Fatalf("expected 3 completed jobs, got %d", sum.TotalCompletedJobs)
	}
	if sum.CurrentMonthCents != 13501 {
		t.Fatalf("expected 13501 this month, got %d", sum.CurrentMonthCents)
	}
	if sum.YearToDateCents != 27000 {
		t.Fatalf("expected 27000 year to date, got %d", sum.YearToDateCents)
	}
	if sum.AverageRating == nil || *sum.AverageRating != 4.5 {
		t.Fatalf("expected average rating 4.5, got %v", sum.AverageRating)
	}

	if _, err := svc.Earnings(context.Background(), "nobody"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingStats(t *testing.T) {
	svc := seedReports(t)

	stats, err := svc.BookingStats(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalBookings != 5 || stats.ActiveWorkers != 2 {
		t.Fatalf("expected 5 bookings and 2 active workers, got %d and %d", stats.TotalBookings, stats.ActiveWorkers)
	}
	if stats.RevenueCents != 38001 {
		t.Fatalf("expected revenue 38001, got %d", stats.RevenueCents)
	}
	if stats.ByStatus[models.StatusCompletedByWorker] != 3 {
		t.Fatalf("expected 3 CompletedByWorker, got %d", stats.ByStatus[models.StatusCompletedByWorker])
	}
	if stats.WorkersByStatus[models.WorkerSuspended] != 1 {
		t.Fatalf("expected one suspended worker")
	}
}
