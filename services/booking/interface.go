package booking

import (
	"context"
	"time"

	bookingRepo "cleanslate/database/repository/booking"
	customerRepo "cleanslate/database/repository/customer"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
	"cleanslate/services/notification"
	"cleanslate/services/tasks"
	"cleanslate/utils"

	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle and worker availability.
type BookingService interface {
	Create(ctx context.Context, in models.CreateBookingInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, caller Caller) (*models.Booking, error)
	AttachReview(ctx context.Context, id string, rating int, review string) (*models.Booking, error)
	ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListForWorker(ctx context.Context, workerID string) ([]models.Booking, error)
	// ListAll returns every booking, or only those in status when it is non-empty.
	ListAll(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	IsAvailable(ctx context.Context, workerID string, start time.Time, durationMinutes int) (bool, error)
	Quote(ctx context.Context, workerID string, itemIDs []string) (*models.Quote, error)
}

// Settings are the business rules the service needs from configuration.
type Settings struct {
	Currency     string
	Location     *time.Location
	ReminderLead time.Duration
	// WorkerLocks is shared with the worker service so that availability
	// changes and booking creation for one worker are serialized.
	WorkerLocks *utils.KeyedMutex
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	bookings  bookingRepo.BookingRepository
	workers   workerRepo.WorkerRepository
	customers customerRepo.CustomerRepository
	publisher notification.Publisher
	reminders tasks.ReminderScheduler
	logger    *zap.Logger

	currency     string
	location     *time.Location
	reminderLead time.Duration

	bookingLocks *utils.KeyedMutex
	workerLocks  *utils.KeyedMutex
	now          func() time.Time
}

func NewBookingService(
	bookings bookingRepo.BookingRepository,
	workers workerRepo.WorkerRepository,
	customers customerRepo.CustomerRepository,
	publisher notification.Publisher,
	reminders tasks.ReminderScheduler,
	logger *zap.Logger,
	settings Settings,
) *DefaultBookingService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Currency == "" {
		settings.Currency = "ZAR"
	}
	if publisher == nil {
		publisher = notification.NewLogPublisher(logger)
	}
	if reminders == nil {
		reminders = tasks.NopReminderScheduler{}
	}
	if settings.WorkerLocks == nil {
		settings.WorkerLocks = utils.NewKeyedMutex()
	}
	return &DefaultBookingService{
		bookings:     bookings,
		workers:      workers,
		customers:    customers,
		publisher:    publisher,
		reminders:    reminders,
		logger:       logger,
		currency:     settings.Currency,
		location:     settings.Location,
		reminderLead: settings.ReminderLead,
		bookingLocks: utils.NewKeyedMutex(),
		workerLocks:  settings.WorkerLocks,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *DefaultBookingService) WithClock(now func() time.Time) *DefaultBookingService {
	s.now = now
	return s
}
