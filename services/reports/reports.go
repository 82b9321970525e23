package reports

import (
	"context"
	"fmt"
	"math"
	"time"

	bookingRepo "cleanslate/database/repository/booking"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
)

// ReportService computes payroll, earnings and booking analytics from stored data.
type ReportService struct {
	bookings       bookingRepo.BookingRepository
	workers        workerRepo.WorkerRepository
	currency       string
	location       *time.Location
	commissionRate float64
	now            func() time.Time
}

func NewReportService(
	bookings bookingRepo.BookingRepository,
	workers workerRepo.WorkerRepository,
	currency string,
	location *time.Location,
	commissionRate float64,
) *ReportService {
	if location == nil {
		location = time.UTC
	}
	if commissionRate < 0 || commissionRate >= 1 {
		commissionRate = 0
	}
	return &ReportService{
		bookings:       bookings,
		workers:        workers,
		currency:       currency,
		location:       location,
		commissionRate: commissionRate,
		now:            time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Payroll sums completed bookings per Active worker for the month containing at.
// A zero at means the current month. Workers without completed work are listed with zero.
func (s *ReportService) Payroll(ctx context.Context, at time.Time) (*models.PayrollRun, error) {
	if at.IsZero() {
		at = s.now()
	}
	from, to := monthBounds(at.In(s.location))

	workers, err := s.workers.List(ctx, models.WorkerActive)
	if err != nil {
		return nil, fmt.Errorf("payroll: %w", err)
	}

	run := &models.PayrollRun{
		Period:      from.Format("2006-01"),
		From:        from,
		To:          to,
		Currency:    s.currency,
		Payouts:     make([]models.WorkerPayout, 0, len(workers)),
		GeneratedAt: s.now().UTC(),
	}
	for _, w := range workers {
		bookings, err := s.bookings.ListByWorker(ctx, w.ID)
		if err != nil {
			return nil, fmt.Errorf("payroll: %w", err)
		}
		p := models.WorkerPayout{
			WorkerID:          w.ID,
			WorkerName:        w.FullName,
			BankName:          w.BankName,
			BankAccountNumber: w.BankAccountNumber,
		}
		for _, b := range bookings {
			if !b.Status.IsCompleted() || b.BookingDate.Before(from) || !b.BookingDate.Before(to) {
				continue
			}
			p.CompletedBookings++
			p.GrossCents += b.TotalPriceCents
		}
		p.CommissionCents = int64(math.Round(float64(p.GrossCents) * s.commissionRate))
		p.PayoutCents = p.GrossCents - p.CommissionCents
		run.TotalCents += p.PayoutCents
		run.Payouts = append(run.Payouts, p)
	}
	run.WorkersCount = len(run.Payouts)
	return run, nil
}

// Earnings summarizes a worker's completed bookings.
func (s *ReportService) Earnings(ctx context.Context, workerID string) (*models.EarningsSummary, error) {
	if _, err := s.workers.GetByID(ctx, workerID); err != nil {
		return nil, fmt.Errorf("earnings: %w", err)
	}
	bookings, err := s.bookings.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("earnings: %w", err)
	}

	now := s.now().In(s.location)
	monthStart, monthEnd := monthBounds(now)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, s.location)

	sum := &models.EarningsSummary{WorkerID: workerID, Currency: s.currency}
	var ratingTotal, rated int
	for _, b := range bookings {
		if !b.Status.IsCompleted() {
			continue
		}
		sum.TotalCompletedJobs++
		payout := b.TotalPriceCents - int64(math.Round(float64(b.TotalPriceCents)*s.commissionRate))
		if !b.BookingDate.Before(monthStart) && b.BookingDate.Before(monthEnd) {
			sum.CurrentMonthCents += payout
		}
		if !b.BookingDate.Before(yearStart) && !b.BookingDate.After(now) {
			sum.YearToDateCents += payout
		}
		if b.Rating != nil {
			ratingTotal += *b.Rating
			rated++
		}
	}
	sum.AverageRating = average(ratingTotal, rated)
	return sum, nil
}

// BookingStats is the admin dashboard summary.
func (s *ReportService) BookingStats(ctx context.Context) (*models.BookingStats, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}

	stats := &models.BookingStats{
		TotalBookings:   len(bookings),
		ByStatus:        make(map[models.BookingStatus]int),
		WorkersByStatus: make(map[models.WorkerStatus]int),
		Currency:        s.currency,
	}
	var ratingTotal, rated int
	for _, b := range bookings {
		stats.ByStatus[b.Status]++
		if b.Status.IsCompleted() {
			stats.RevenueCents += b.TotalPriceCents
		}
		if b.Rating != nil {
			ratingTotal += *b.Rating
			rated++
		}
	}
	for _, w := range workers {
		stats.WorkersByStatus[w.Status]++
		if w.Status == models.WorkerActive {
			stats.ActiveWorkers++
		}
	}
	stats.AverageRating = average(ratingTotal, rated)
	return stats, nil
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

func average(total, n int) *float64 {
	if n == 0 {
		return nil
	}
	avg := math.Round(float64(total)/float64(n)*100) / 100
	return &avg
}
