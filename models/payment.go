package models

// PaymentInfo describes a payment to initiate.
type PaymentInfo struct {
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	BookingID   string `json:"bookingId,omitempty"`
}

// PaymentResult is returned by the payment gateway.
type PaymentResult struct {
	Success      bool   `json:"success"`
	Reference    string `json:"reference"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

type InitiatePaymentRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}
