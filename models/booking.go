package models

import "time"

// BookingStatus is the lifecycle stage of a booking.
type BookingStatus string

const (
	StatusRequested                  BookingStatus = "Requested"
	StatusAwaitingWorkerConfirmation BookingStatus = "AwaitingWorkerConfirmation"
	StatusConfirmedByWorker          BookingStatus = "ConfirmedByWorker"
	StatusInProgress                 BookingStatus = "InProgress"
	StatusCompletedByWorker          BookingStatus = "CompletedByWorker"
	StatusCustomerConfirmedAndRated  BookingStatus = "CustomerConfirmedAndRated"
	StatusCancelledByCustomer        BookingStatus = "CancelledByCustomer"
	StatusCancelledByWorker          BookingStatus = "CancelledByWorker"
	StatusCancelledByAdmin           BookingStatus = "CancelledByAdmin"
)

// AllBookingStatuses lists the nine statuses in lifecycle order.
func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		StatusRequested,
		StatusAwaitingWorkerConfirmation,
		StatusConfirmedByWorker,
		StatusInProgress,
		StatusCompletedByWorker,
		StatusCustomerConfirmedAndRated,
		StatusCancelledByCustomer,
		StatusCancelledByWorker,
		StatusCancelledByAdmin,
	}
}

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusAwaitingWorkerConfirmation, StatusConfirmedByWorker,
		StatusInProgress, StatusCompletedByWorker, StatusCustomerConfirmedAndRated,
		StatusCancelledByCustomer, StatusCancelledByWorker, StatusCancelledByAdmin:
		return true
	default:
		return false
	}
}

// IsCancelled reports whether the booking was cancelled by anyone.
func (s BookingStatus) IsCancelled() bool {
	return s == StatusCancelledByCustomer || s == StatusCancelledByWorker || s == StatusCancelledByAdmin
}

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s.IsCancelled() || s == StatusCustomerConfirmedAndRated
}

// IsCompleted reports whether the work was done (counts towards earnings).
func (s BookingStatus) IsCompleted() bool {
	return s == StatusCompletedByWorker || s == StatusCustomerConfirmedAndRated
}

// Location is where the service takes place.
type Location struct {
	Address string   `bson:"address" json:"address"`
	Lat     *float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     *float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Booking is a single scheduled engagement between one customer and one worker.
type Booking struct {
	ID                       string        `bson:"id" json:"id"`
	CustomerID               string        `bson:"customerId" json:"customerId"`
	CustomerName             string        `bson:"customerName" json:"customerName"`
	WorkerID                 string        `bson:"workerId" json:"workerId"`
	WorkerName               string        `bson:"workerName" json:"workerName"`
	ServiceItemIDs           []string      `bson:"serviceItemIds" json:"serviceItemIds"`
	ServiceNames             []string      `bson:"serviceNames" json:"serviceNames"`
	BookingDate              time.Time     `bson:"bookingDate" json:"bookingDate"`
	EstimatedDurationMinutes int           `bson:"estimatedDurationMinutes" json:"estimatedDurationMinutes"`
	TotalPriceCents          int64         `bson:"totalPriceCents" json:"totalPriceCents"`
	Currency                 string        `bson:"currency" json:"currency"`
	Status                   BookingStatus `bson:"status" json:"status"`
	Rating                   *int          `bson:"rating,omitempty" json:"rating,omitempty"`
	Review                   string        `bson:"review,omitempty" json:"review,omitempty"`
	CustomerNotes            string        `bson:"customerNotes,omitempty" json:"customerNotes,omitempty"`
	Location                 Location      `bson:"location" json:"location"`
	CreatedAt                time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt                time.Time     `bson:"updatedAt" json:"updatedAt"`
	Version                  int           `bson:"version" json:"version"`
}

// End is the exclusive end of the booking's availability window.
func (b *Booking) End() time.Time {
	return b.BookingDate.Add(time.Duration(b.EstimatedDurationMinutes) * time.Minute)
}

// Clone returns a deep copy so callers never share slices or pointers with the store.
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	cp := *b
	cp.ServiceItemIDs = append([]string(nil), b.ServiceItemIDs...)
	cp.ServiceNames = append([]string(nil), b.ServiceNames...)
	if b.Rating != nil {
		r := *b.Rating
		cp.Rating = &r
	}
	if b.Location.Lat != nil {
		lat := *b.Location.Lat
		cp.Location.Lat = &lat
	}
	if b.Location.Lng != nil {
		lng := *b.Location.Lng
		cp.Location.Lng = &lng
	}
	return &cp
}

// CreateBookingInput is what a customer submits from the booking form.
// DurationMinutes and PriceCents may only raise the catalog quote, e.g. to carry
// an adjusted match result; lower or zero values resolve to the quote.
type CreateBookingInput struct {
	CustomerID      string    `json:"customerId"`
	WorkerID        string    `json:"workerId" binding:"required"`
	ServiceItemIDs  []string  `json:"serviceItemIds" binding:"required,min=1"`
	BookingDate     time.Time `json:"bookingDate" binding:"required"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	PriceCents      int64     `json:"priceCents,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Location        Location  `json:"location"`
}

// StatusUpdateRequest moves a booking along its lifecycle.
type StatusUpdateRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}

// ReviewRequest is the customer's post-completion rating.
type ReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}
