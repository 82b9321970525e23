package payment

import (
	"context"
	"fmt"

	"cleanslate/models"
	"cleanslate/services/booking"
	"cleanslate/utils"

	"go.uber.org/zap"
)

// PaymentService charges customers for their bookings.
type PaymentService struct {
	gateway  Gateway
	bookings booking.BookingService
	logger   *zap.Logger
}

func NewPaymentService(gateway Gateway, bookings booking.BookingService, logger *zap.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, bookings: bookings, logger: logger}
}

// InitiateForBooking charges the booking's total price. Cancelled bookings cannot be paid.
func (s *PaymentService) InitiateForBooking(ctx context.Context, caller booking.Caller, bookingID, email string) (*models.PaymentResult, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.CanView(caller, b) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, utils.ErrForbidden)
	}
	if b.Status.IsCancelled() {
		return nil, utils.NewValidationError("bookingId", "booking is cancelled")
	}

	res, err := s.gateway.Initiate(ctx, models.PaymentInfo{
		AmountCents: b.TotalPriceCents,
		Currency:    b.Currency,
		Email:       email,
		BookingID:   b.ID,
	})
	if err != nil {
		s.logger.Error("payment initiation failed", zap.String("bookingId", b.ID), zap.Error(err))
		return nil, err
	}
	return res, nil
}
