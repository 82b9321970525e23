package models

// MatchRequest is the structured request sent to the smart matching flow.
type MatchRequest struct {
	ServiceType    string      `json:"serviceType"`
	Location       GeoLocation `json:"location"`
	DateTime       string      `json:"dateTime" binding:"required"`
	RadiusKm       float64     `json:"radiusKm"`
	ServiceItemIDs []string    `json:"selectedServiceItems" binding:"required,min=1"`
	CustomerNotes  string      `json:"customerNotes,omitempty"`
}

// MatchResult is the chosen worker with a possibly adjusted quote.
type MatchResult struct {
	WorkerID                 string  `json:"workerId"`
	EstimatedPrice           float64 `json:"estimatedPrice"`
	EstimatedPriceCents      int64   `json:"estimatedPriceCents"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
	ConfirmationNotes        string  `json:"confirmationNotes,omitempty"`
	Source                   string  `json:"source"`
}
