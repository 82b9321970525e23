package models

// ServiceItem is a single bookable task with its time and material estimate.
type ServiceItem struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	EstimatedTimeMinutes int    `json:"estimatedTimeMinutes"`
	MaterialFeeCents     int64  `json:"materialFeeCents"`
}

// ServiceCategory groups items; its id doubles as a worker specialization.
type ServiceCategory struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Items       []ServiceItem `json:"items"`
}

// Quote is the system estimate for a set of items done by one worker.
type Quote struct {
	WorkerID          string   `json:"workerId"`
	ServiceItemIDs    []string `json:"serviceItemIds"`
	DurationMinutes   int      `json:"durationMinutes"`
	LabourCents       int64    `json:"labourCents"`
	MaterialFeeCents  int64    `json:"materialFeeCents"`
	TotalCents        int64    `json:"totalCents"`
	HourlyRateCents   int64    `json:"hourlyRateCents"`
	Currency          string   `json:"currency"`
	RequiredSkills    []string `json:"requiredSkills"`
	UnknownServiceIDs []string `json:"unknownServiceIds,omitempty"`
}

type QuoteRequest struct {
	WorkerID       string   `json:"workerId" binding:"required"`
	ServiceItemIDs []string `json:"serviceItemIds" binding:"required,min=1"`
}
