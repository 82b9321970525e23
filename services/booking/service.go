package booking

import (
	"context"
	"fmt"
	"time"

	"cleanslate/models"
	"cleanslate/services/notification"
	"cleanslate/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books a worker for a customer. The worker's lock is held from the
// availability check until the booking is stored.
func (s *DefaultBookingService) Create(ctx context.Context, in models.CreateBookingInput) (*models.Booking, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	customer, err := s.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	unlock := s.workerLocks.Lock(in.WorkerID)
	defer unlock()

	worker, err := s.workers.GetByID(ctx, in.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if worker.Status != models.WorkerActive {
		return nil, fmt.Errorf("worker %s is %s: %w", worker.ID, worker.Status, ErrWorkerUnavailable)
	}

	quote := ComputeQuote(worker.HourlyRateCents, in.ServiceItemIDs)
	if len(quote.UnknownServiceIDs) > 0 {
		return nil, utils.NewValidationError("serviceItemIds", fmt.Sprintf("unknown service items %v", quote.UnknownServiceIDs))
	}
	duration, price := ResolveEstimate(quote, in.DurationMinutes, in.PriceCents)
	if duration > MaxBookingMinutes {
		return nil, utils.NewValidationError("durationMinutes", fmt.Sprintf("must not exceed %d", MaxBookingMinutes))
	}

	ok, err := s.isAvailable(ctx, worker, in.BookingDate, duration)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("worker %s at %s: %w", worker.ID, in.BookingDate.Format(time.RFC3339), ErrWorkerUnavailable)
	}

	now := s.now().UTC()
	b := &models.Booking{
		ID:                       uuid.New().String(),
		CustomerID:               customer.ID,
		CustomerName:             customer.FullName,
		WorkerID:                 worker.ID,
		WorkerName:               worker.FullName,
		ServiceItemIDs:           append([]string(nil), in.ServiceItemIDs...),
		ServiceNames:             ServiceNames(in.ServiceItemIDs),
		BookingDate:              in.BookingDate.UTC(),
		EstimatedDurationMinutes: duration,
		TotalPriceCents:          price,
		Currency:                 s.currency,
		Status:                   models.StatusAwaitingWorkerConfirmation,
		CustomerNotes:            in.Notes,
		Location:                 in.Location,
		CreatedAt:                now,
		UpdatedAt:                now,
		Version:                  1,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("workerId", b.WorkerID),
		zap.String("customerId", b.CustomerID),
		zap.Time("start", b.BookingDate),
		zap.Int("durationMinutes", b.EstimatedDurationMinutes))
	s.publish(ctx, models.EventBookingCreated, b, nil)
	return b, nil
}

func validateCreateInput(in models.CreateBookingInput) error {
	switch {
	case in.CustomerID == "":
		return utils.NewValidationError("customerId", "is required")
	case in.WorkerID == "":
		return utils.NewValidationError("workerId", "is required")
	case len(in.ServiceItemIDs) == 0:
		return utils.NewValidationError("serviceItemIds", "select at least one service")
	case in.BookingDate.IsZero():
		return utils.NewValidationError("bookingDate", "is required")
	case in.DurationMinutes < 0:
		return utils.NewValidationError("durationMinutes", "must not be negative")
	case in.PriceCents < 0:
		return utils.NewValidationError("priceCents", "must not be negative")
	}
	return nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// UpdateStatus moves a booking along one edge of the lifecycle graph.
// Completion is confirmed through AttachReview, not here.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, caller Caller) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}

	unlock := s.bookingLocks.Lock(id)
	defer unlock()

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	owner, ok := TransitionActor(b.Status, status)
	if !ok {
		return nil, &utils.IllegalTransitionError{Entity: "booking", From: string(b.Status), To: string(status)}
	}
	if status == models.StatusCustomerConfirmedAndRated {
		return nil, utils.NewValidationError("status", "submit a review to confirm a completed booking")
	}
	if err := authorize(caller, b, owner); err != nil {
		return nil, fmt.Errorf("%s may not move booking %s to %s: %w", caller.Role, id, status, err)
	}

	from := b.Status
	expected := b.Version
	b.Status = status
	b.UpdatedAt = s.now().UTC()
	if err := s.bookings.Update(ctx, b, expected); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	s.logger.Info("booking status changed",
		zap.String("bookingId", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
		zap.String("actor", string(caller.Role)))
	s.publish(ctx, models.EventBookingStatusChanged, b, map[string]string{"from": string(from), "to": string(status)})

	if status == models.StatusConfirmedByWorker {
		s.scheduleReminder(ctx, b)
	}
	return b, nil
}

// AttachReview records the customer's rating and forces the booking to
// CustomerConfirmedAndRated whatever its current status. Repeating it overwrites the review.
func (s *DefaultBookingService) AttachReview(ctx context.Context, id string, rating int, review string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewValidationError("rating", "must be between 1 and 5")
	}

	unlock := s.bookingLocks.Lock(id)
	defer unlock()

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("attach review: %w", err)
	}

	from := b.Status
	expected := b.Version
	r := rating
	b.Rating = &r
	b.Review = review
	b.Status = models.StatusCustomerConfirmedAndRated
	b.UpdatedAt = s.now().UTC()
	if err := s.bookings.Update(ctx, b, expected); err != nil {
		return nil, fmt.Errorf("attach review: %w", err)
	}

	s.logger.Info("booking reviewed",
		zap.String("bookingId", b.ID),
		zap.Int("rating", rating),
		zap.String("previousStatus", string(from)))
	s.publish(ctx, models.EventBookingReviewed, b, map[string]string{"rating": fmt.Sprint(rating)})
	return b, nil
}

func (s *DefaultBookingService) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) ListForWorker(ctx context.Context, workerID string) ([]models.Booking, error) {
	return s.bookings.ListByWorker(ctx, workerID)
}

func (s *DefaultBookingService) ListAll(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	if status == "" {
		return s.bookings.ListAll(ctx)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	return s.bookings.ListByStatus(ctx, status)
}

// Quote prices the selected items at the worker's hourly rate.
func (s *DefaultBookingService) Quote(ctx context.Context, workerID string, itemIDs []string) (*models.Quote, error) {
	if len(itemIDs) == 0 {
		return nil, utils.NewValidationError("serviceItemIds", "select at least one service")
	}
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	q := ComputeQuote(worker.HourlyRateCents, itemIDs)
	if len(q.UnknownServiceIDs) > 0 {
		return nil, utils.NewValidationError("serviceItemIds", fmt.Sprintf("unknown service items %v", q.UnknownServiceIDs))
	}
	q.WorkerID = worker.ID
	q.Currency = s.currency
	return &q, nil
}

// publish never fails the caller; a lost change event only delays a client refresh.
func (s *DefaultBookingService) publish(ctx context.Context, eventType string, b *models.Booking, extra map[string]string) {
	data := map[string]string{
		"status":     string(b.Status),
		"workerId":   b.WorkerID,
		"customerId": b.CustomerID,
	}
	for k, v := range extra {
		data[k] = v
	}
	if err := s.publisher.Publish(ctx, notification.NewEvent(eventType, "booking", b.ID, data)); err != nil {
		s.logger.Warn("failed to publish booking event", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking) {
	fireAt := b.BookingDate.Add(-s.reminderLead)
	if now := s.now(); fireAt.Before(now) {
		fireAt = now
	}
	local := b.BookingDate.In(s.location)
	payload := models.ReminderPayload{
		BookingID:  b.ID,
		WorkerID:   b.WorkerID,
		CustomerID: b.CustomerID,
		StartsAt:   b.BookingDate.Format(time.RFC3339),
		Title:      "Upcoming booking",
		Body: fmt.Sprintf("%s with %s starts %s.",
			joinNames(b.ServiceNames), b.CustomerName, local.Format("Mon 2 Jan 15:04")),
	}
	if err := s.reminders.ScheduleReminder(ctx, payload, fireAt); err != nil {
		s.logger.Warn("failed to schedule booking reminder", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "Your booking"
	case 1:
		return names[0]
	}
	return fmt.Sprintf("%s and %d more", names[0], len(names)-1)
}
