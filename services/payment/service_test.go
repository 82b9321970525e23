package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cleanslate/database/repository"
	"cleanslate/models"
	"cleanslate/services/booking"
	"cleanslate/utils"

	"go.uber.org/zap"
)

type fakeBookings struct {
	booking.BookingService
	byID map[string]*models.Booking
}

func (f fakeBookings) Get(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

type capturingGateway struct {
	last models.PaymentInfo
}

func (g *capturingGateway) Initiate(_ context.Context, info models.PaymentInfo) (*models.PaymentResult, error) {
	g.last = info
	return &models.PaymentResult{Success: true, Reference: "ref-1"}, nil
}

func TestInitiateForBooking(t *testing.T) {
	bookings := fakeBookings{byID: map[string]*models.Booking{
		"b1": {ID: "b1", CustomerID: "customer1", TotalPriceCents: 31500, Currency: "ZAR", Status: models.StatusConfirmedByWorker},
		"b2": {ID: "b2", CustomerID: "customer1", Status: models.StatusCancelledByCustomer},
	}}
	gw := &capturingGateway{}
	svc := NewPaymentService(gw, bookings, zap.NewNop())
	ctx := context.Background()
	owner := booking.Caller{ID: "customer1", Role: booking.ActorCustomer}

	res, err := svc.InitiateForBooking(ctx, owner, "b1", "customer@example.com")
	if err != nil || !res.Success {
		t.Fatalf("expected success, got %v (%v)", res, err)
	}
	if gw.last.AmountCents != 31500 || gw.last.Currency != "ZAR" || gw.last.BookingID != "b1" {
		t.Fatalf("unexpected payment info %+v", gw.last)
	}

	if _, err := svc.InitiateForBooking(ctx, booking.Caller{ID: "someone", Role: booking.ActorCustomer}, "b1", "x@example.com"); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("expected forbidden for another customer, got %v", err)
	}
	var ve *utils.ValidationError
	if _, err := svc.InitiateForBooking(ctx, owner, "b2", "customer@example.com"); !errors.As(err, &ve) {
		t.Fatalf("expected cancelled booking to be rejected, got %v", err)
	}
	if _, err := svc.InitiateForBooking(ctx, owner, "nope", "customer@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStubGatewayReference(t *testing.T) {
	res, err := NewStubGateway(zap.NewNop()).Initiate(context.Background(), models.PaymentInfo{AmountCents: 100, Currency: "ZAR"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Success || !strings.HasPrefix(res.Reference, "test-reference-") {
		t.Fatalf("unexpected stub result %+v", res)
	}
}
