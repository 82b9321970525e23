package bookingRepo

import (
	"context"

	"cleanslate/models"
)

// BookingRepository defines storage for booking records.
// Implementations hand out copies; callers never share memory with the store.
type BookingRepository interface {
	// Create inserts a new booking; its Version must be 1.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by id or repository.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Update replaces the booking if the stored version equals expectedVersion,
	// bumping booking.Version on success.
	Update(ctx context.Context, booking *models.Booking, expectedVersion int) error
	// ListAll returns every booking, newest creation first.
	ListAll(ctx context.Context) ([]models.Booking, error)
	// ListByCustomer returns a customer's bookings, latest booking date first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// ListByWorker returns a worker's bookings, latest booking date first.
	ListByWorker(ctx context.Context, workerID string) ([]models.Booking, error)
	// ListByStatus returns bookings in the given status, newest creation first.
	ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
}
