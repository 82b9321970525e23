package models

import "time"

// Change event types published after every mutation.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingReviewed      = "booking.reviewed"
	EventBookingReminder      = "booking.reminder"
	EventWorkerCreated        = "worker.created"
	EventWorkerUpdated        = "worker.updated"
	EventTrainingModuleAdded  = "training.module_added"
	EventCustomerCreated      = "customer.created"
)

// ChangeEvent tells subscribers that an entity changed and should be re-fetched.
type ChangeEvent struct {
	Type     string            `json:"type"`
	Entity   string            `json:"entity"`
	EntityID string            `json:"entityId"`
	Data     map[string]string `json:"data,omitempty"`
	At       time.Time         `json:"at"`
}
