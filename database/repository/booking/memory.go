package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cleanslate/database/repository"
	"cleanslate/models"
)

// MemoryBookingRepo keeps bookings in a map guarded by a RWMutex.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[booking.ID]; exists {
		return fmt.Errorf("booking %s: %w", booking.ID, repository.ErrDuplicate)
	}
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	return b.Clone(), nil
}

func (r *MemoryBookingRepo) Update(_ context.Context, booking *models.Booking, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[booking.ID]
	if !ok {
		return fmt.Errorf("booking %s: %w", booking.ID, repository.ErrNotFound)
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("booking %s at version %d, expected %d: %w",
			booking.ID, current.Version, expectedVersion, repository.ErrVersionConflict)
	}
	booking.Version = expectedVersion + 1
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *MemoryBookingRepo) ListAll(_ context.Context) ([]models.Booking, error) {
	out := r.filter(func(*models.Booking) bool { return true })
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	out := r.filter(func(b *models.Booking) bool { return b.CustomerID == customerID })
	sortByBookingDateDesc(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListByWorker(_ context.Context, workerID string) ([]models.Booking, error) {
	out := r.filter(func(b *models.Booking) bool { return b.WorkerID == workerID })
	sortByBookingDateDesc(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListByStatus(_ context.Context, status models.BookingStatus) ([]models.Booking, error) {
	out := r.filter(func(b *models.Booking) bool { return b.Status == status })
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryBookingRepo) filter(keep func(*models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, *b.Clone())
		}
	}
	return out
}

func sortByCreatedDesc(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func sortByBookingDateDesc(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].BookingDate.Equal(bookings[j].BookingDate) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].BookingDate.After(bookings[j].BookingDate)
	})
}
