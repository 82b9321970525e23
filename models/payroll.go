package models

import "time"

// WorkerPayout is one line of a payroll run.
type WorkerPayout struct {
	WorkerID          string `json:"workerId"`
	WorkerName        string `json:"workerName"`
	CompletedBookings int    `json:"completedBookings"`
	GrossCents        int64  `json:"grossCents"`
	CommissionCents   int64  `json:"commissionCents"`
	PayoutCents       int64  `json:"payoutCents"`
	BankName          string `json:"bankName,omitempty"`
	BankAccountNumber string `json:"bankAccountNumber,omitempty"`
}

type PayrollRun struct {
	Period       string         `json:"period"`
	From         time.Time      `json:"from"`
	To           time.Time      `json:"to"`
	Currency     string         `json:"currency"`
	Payouts      []WorkerPayout `json:"payouts"`
	TotalCents   int64          `json:"totalCents"`
	GeneratedAt  time.Time      `json:"generatedAt"`
	WorkersCount int            `json:"workersCount"`
}

type EarningsSummary struct {
	WorkerID           string   `json:"workerId"`
	CurrentMonthCents  int64    `json:"currentMonthCents"`
	YearToDateCents    int64    `json:"yearToDateCents"`
	AverageRating      *float64 `json:"averageRating,omitempty"`
	TotalCompletedJobs int      `json:"totalCompletedJobs"`
	Currency           string   `json:"currency"`
}

type BookingStats struct {
	TotalBookings   int                   `json:"totalBookings"`
	ByStatus        map[BookingStatus]int `json:"byStatus"`
	RevenueCents    int64                 `json:"revenueCents"`
	ActiveWorkers   int                   `json:"activeWorkers"`
	WorkersByStatus map[WorkerStatus]int  `json:"workersByStatus"`
	AverageRating   *float64              `json:"averageRating,omitempty"`
	Currency        string                `json:"currency"`
}
