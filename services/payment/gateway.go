package payment

import (
	"context"
	"fmt"
	"strings"

	"cleanslate/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Gateway starts a payment with an external provider.
type Gateway interface {
	Initiate(ctx context.Context, info models.PaymentInfo) (*models.PaymentResult, error)
}

// StubGateway accepts every payment. Used in development and demos.
type StubGateway struct {
	logger *zap.Logger
}

func NewStubGateway(logger *zap.Logger) *StubGateway {
	return &StubGateway{logger: logger}
}

func (g *StubGateway) Initiate(_ context.Context, info models.PaymentInfo) (*models.PaymentResult, error) {
	ref := "test-reference-" + uuid.New().String()
	g.logger.Info("stub payment initiated",
		zap.String("bookingId", info.BookingID),
		zap.Int64("amountCents", info.AmountCents),
		zap.String("reference", ref))
	return &models.PaymentResult{Success: true, Reference: ref}, nil
}

// StripeGateway creates a PaymentIntent; the client completes it with the secret.
type StripeGateway struct {
	client paymentintent.Client
	logger *zap.Logger
}

func NewStripeGateway(key string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		client: paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: key},
		logger: logger,
	}
}

func (g *StripeGateway) Initiate(ctx context.Context, info models.PaymentInfo) (*models.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(info.AmountCents),
		Currency:     stripe.String(strings.ToLower(info.Currency)),
		ReceiptEmail: stripe.String(info.Email),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if info.BookingID != "" {
		params.AddMetadata("bookingId", info.BookingID)
	}

	pi, err := g.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}
	g.logger.Info("stripe payment intent created",
		zap.String("bookingId", info.BookingID),
		zap.String("intentId", pi.ID))
	return &models.PaymentResult{Success: true, Reference: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
