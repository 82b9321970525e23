package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleanslate/database/repository"
	"cleanslate/models"
	"cleanslate/utils"
)

// IsAvailable reports whether the worker is free for [start, start+duration).
// Unknown workers are simply not available.
func (s *DefaultBookingService) IsAvailable(ctx context.Context, workerID string, start time.Time, durationMinutes int) (bool, error) {
	if durationMinutes <= 0 {
		return false, utils.NewValidationError("durationMinutes", "must be positive")
	}
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("availability lookup failed: %w", err)
	}
	return s.isAvailable(ctx, worker, start, durationMinutes)
}

func (s *DefaultBookingService) isAvailable(ctx context.Context, worker *models.Worker, start time.Time, durationMinutes int) (bool, error) {
	day := start.In(s.location).Format("2006-01-02")
	for _, d := range worker.UnavailableDates {
		if d == day {
			return false, nil
		}
	}

	existing, err := s.bookings.ListByWorker(ctx, worker.ID)
	if err != nil {
		return false, fmt.Errorf("availability lookup failed: %w", err)
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	for i := range existing {
		if Overlaps(start, end, &existing[i]) {
			return false, nil
		}
	}
	return true, nil
}

// Overlaps reports whether [start, end) intersects a non-cancelled booking's window.
// Windows that merely touch do not overlap.
func Overlaps(start, end time.Time, b *models.Booking) bool {
	if b.Status.IsCancelled() {
		return false
	}
	return start.Before(b.End()) && end.After(b.BookingDate)
}
