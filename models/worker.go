package models

import "time"

// WorkerStatus is the stage of a worker's lifecycle from application to employment.
type WorkerStatus string

const (
	WorkerPendingApplication WorkerStatus = "PendingApplication"
	WorkerPendingApproval    WorkerStatus = "PendingApproval"
	WorkerTrainingPending    WorkerStatus = "TrainingPending"
	WorkerOnboardingComplete WorkerStatus = "OnboardingComplete"
	WorkerActive             WorkerStatus = "Active"
	WorkerSuspended          WorkerStatus = "Suspended"
	WorkerRejected           WorkerStatus = "Rejected"
)

func (s WorkerStatus) IsValid() bool {
	switch s {
	case WorkerPendingApplication, WorkerPendingApproval, WorkerTrainingPending,
		WorkerOnboardingComplete, WorkerActive, WorkerSuspended, WorkerRejected:
		return true
	}
	return false
}

// Onboarding step ids, seeded identically for every worker.
const (
	StepIDVerification      = "idVerification"
	StepAddressConfirmation = "addressConfirmation"
	StepContractSigning     = "contractSigning"
	StepInitialTraining     = "initialTraining"
)

type OnboardingStep struct {
	ID        string `bson:"id" json:"id"`
	Label     string `bson:"label" json:"label"`
	Completed bool   `bson:"completed" json:"completed"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DefaultOnboardingSteps returns a fresh copy of the fixed checklist.
func DefaultOnboardingSteps() []OnboardingStep {
	return []OnboardingStep{
		{ID: StepIDVerification, Label: "ID Verification"},
		{ID: StepAddressConfirmation, Label: "Address Confirmation"},
		{ID: StepContractSigning, Label: "Contract Signing"},
		{ID: StepInitialTraining, Label: "Initial Training Program"},
	}
}

// TrainingProgress is the status of an assigned training module.
type TrainingProgress string

const (
	TrainingNotStarted TrainingProgress = "Not Started"
	TrainingInProgress TrainingProgress = "In Progress"
	TrainingCompleted  TrainingProgress = "Completed"
)

func (p TrainingProgress) IsValid() bool {
	return p == TrainingNotStarted || p == TrainingInProgress || p == TrainingCompleted
}

type AssignedTrainingModule struct {
	ModuleID       string           `bson:"moduleId" json:"moduleId"`
	Title          string           `bson:"title" json:"title"`
	Status         TrainingProgress `bson:"status" json:"status"`
	Score          *int             `bson:"score,omitempty" json:"score,omitempty"`
	CompletionDate *time.Time       `bson:"completionDate,omitempty" json:"completionDate,omitempty"`
}

// GeoLocation is a plain lat/lng pair.
type GeoLocation struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Worker struct {
	ID                      string                   `bson:"id" json:"id"`
	FullName                string                   `bson:"fullName" json:"fullName"`
	Email                   string                   `bson:"email" json:"email"`
	Phone                   string                   `bson:"phone" json:"phone"`
	Address                 string                   `bson:"address" json:"address"`
	IDNumber                string                   `bson:"idNumber" json:"idNumber,omitempty"`
	ServicesOffered         []string                 `bson:"servicesOffered" json:"servicesOffered"`
	Experience              string                   `bson:"experience" json:"experience"`
	BankAccountNumber       string                   `bson:"bankAccountNumber" json:"bankAccountNumber,omitempty"`
	BankName                string                   `bson:"bankName" json:"bankName,omitempty"`
	BranchCode              string                   `bson:"branchCode" json:"branchCode,omitempty"`
	ProfilePictureURL       string                   `bson:"profilePictureUrl,omitempty" json:"profilePictureUrl,omitempty"`
	Status                  WorkerStatus             `bson:"status" json:"status"`
	TrainingVerified        bool                     `bson:"trainingVerified" json:"trainingVerified"`
	HourlyRateCents         int64                    `bson:"hourlyRateCents" json:"hourlyRateCents"`
	UnavailableDates        []string                 `bson:"unavailableDates" json:"unavailableDates"`
	OnboardingSteps         []OnboardingStep         `bson:"onboardingSteps" json:"onboardingSteps"`
	AssignedTrainingModules []AssignedTrainingModule `bson:"assignedTrainingModules" json:"assignedTrainingModules"`
	Location                *GeoLocation             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt               time.Time                `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time                `bson:"updatedAt" json:"updatedAt"`
	Version                 int                      `bson:"version" json:"version"`
}

// AllStepsCompleted reports whether every onboarding step is done.
func (w *Worker) AllStepsCompleted() bool {
	for _, s := range w.OnboardingSteps {
		if !s.Completed {
			return false
		}
	}
	return len(w.OnboardingSteps) > 0
}

// Clone returns a deep copy of the worker.
func (w *Worker) Clone() *Worker {
	if w == nil {
		return nil
	}
	cp := *w
	cp.ServicesOffered = append([]string(nil), w.ServicesOffered...)
	cp.UnavailableDates = append([]string(nil), w.UnavailableDates...)
	cp.OnboardingSteps = append([]OnboardingStep(nil), w.OnboardingSteps...)
	cp.AssignedTrainingModules = make([]AssignedTrainingModule, len(w.AssignedTrainingModules))
	for i, m := range w.AssignedTrainingModules {
		if m.Score != nil {
			s := *m.Score
			m.Score = &s
		}
		if m.CompletionDate != nil {
			d := *m.CompletionDate
			m.CompletionDate = &d
		}
		cp.AssignedTrainingModules[i] = m
	}
	if w.Location != nil {
		loc := *w.Location
		cp.Location = &loc
	}
	return &cp
}

// PublicWorker is what customers see when picking a worker.
type PublicWorker struct {
	ID                string       `json:"id"`
	FullName          string       `json:"fullName"`
	ServicesOffered   []string     `json:"servicesOffered"`
	Experience        string       `json:"experience"`
	HourlyRateCents   int64        `json:"hourlyRateCents"`
	ProfilePictureURL string       `json:"profilePictureUrl,omitempty"`
	Location          *GeoLocation `json:"location,omitempty"`
}

func (w *Worker) Public() PublicWorker {
	return PublicWorker{
		ID:                w.ID,
		FullName:          w.FullName,
		ServicesOffered:   append([]string(nil), w.ServicesOffered...),
		Experience:        w.Experience,
		HourlyRateCents:   w.HourlyRateCents,
		ProfilePictureURL: w.ProfilePictureURL,
		Location:          w.Location,
	}
}

// WorkerApplication is the public sign-up form.
type WorkerApplication struct {
	FullName          string       `json:"fullName" binding:"required"`
	Email             string       `json:"email" binding:"required,email"`
	Phone             string       `json:"phone" binding:"required"`
	Address           string       `json:"address" binding:"required"`
	IDNumber          string       `json:"idNumber" binding:"required"`
	ServicesOffered   []string     `json:"servicesOffered" binding:"required,min=1"`
	Experience        string       `json:"experience"`
	BankAccountNumber string       `json:"bankAccountNumber" binding:"required"`
	BankName          string       `json:"bankName" binding:"required"`
	BranchCode        string       `json:"branchCode" binding:"required"`
	Location          *GeoLocation `json:"location,omitempty"`
}

type WorkerStatusRequest struct {
	Status WorkerStatus `json:"status" binding:"required"`
}

type OnboardingStepRequest struct {
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

type TrainingStatusRequest struct {
	Status TrainingProgress `json:"status" binding:"required"`
	Score  *int             `json:"score,omitempty"`
}

type AssignTrainingRequest struct {
	ModuleID string `json:"moduleId" binding:"required"`
}

type UnavailableDatesRequest struct {
	Dates []string `json:"dates"`
}
