package models

// ReminderPayload is the asynq payload for an upcoming-booking reminder.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	WorkerID   string `json:"workerId"`
	CustomerID string `json:"customerId"`
	StartsAt   string `json:"startsAt"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}

// DemoLoginRequest selects one of the demo identities.
type DemoLoginRequest struct {
	Role     string `json:"role" binding:"required"`
	WorkerID string `json:"workerId,omitempty"`
}

type DemoLoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
