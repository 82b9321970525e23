package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleanslate/database/repository"
	bookingRepo "cleanslate/database/repository/booking"
	customerRepo "cleanslate/database/repository/customer"
	trainingRepo "cleanslate/database/repository/training"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
	"cleanslate/services/booking"

	"go.uber.org/zap"
)

// Repos bundles the stores the demo data is written to.
type Repos struct {
	Bookings  bookingRepo.BookingRepository
	Workers   workerRepo.WorkerRepository
	Customers customerRepo.CustomerRepository
	Modules   trainingRepo.TrainingModuleRepository
}

// Demo ids referenced by the demo login.
const (
	CustomerID = "customer1"
	Worker1ID  = "worker1"
	Worker2ID  = "worker2"
)

// Load writes the demo customer, workers, training modules and bookings.
// It does nothing when the demo workers already exist.
func Load(ctx context.Context, repos Repos, now time.Time, currency string, logger *zap.Logger) error {
	if _, err := repos.Workers.GetByID(ctx, Worker1ID); err == nil {
		logger.Info("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("seed: %w", err)
	}

	now = now.UTC()
	for _, m := range trainingModules() {
		m := m
		if err := repos.Modules.Create(ctx, &m); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("seed training module %s: %w", m.ID, err)
		}
	}

	customer := &models.Customer{
		ID:        CustomerID,
		FullName:  "Valued Customer",
		Email:     "customer@example.com",
		Address:   "Customer Address 1, Suburbia",
		CreatedAt: now,
		Version:   1,
	}
	if err := repos.Customers.Create(ctx, customer); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("seed customer: %w", err)
	}

	for i, w := range workers(now) {
		w.CreatedAt = now.Add(time.Duration(i) * time.Second)
		w.UpdatedAt = w.CreatedAt
		if err := repos.Workers.Create(ctx, w); err != nil {
			return fmt.Errorf("seed worker %s: %w", w.ID, err)
		}
	}

	for _, b := range bookings(now, currency) {
		if err := repos.Bookings.Create(ctx, b); err != nil {
			return fmt.Errorf("seed booking %s: %w", b.ID, err)
		}
	}

	logger.Info("demo data loaded",
		zap.Int("workers", 4),
		zap.Int("bookings", 2),
		zap.Int("trainingModules", 4))
	return nil
}

func trainingModules() []models.TrainingModule {
	return []models.TrainingModule{
		{ID: "train001", Title: "Clean Slate Welcome & Ethics", Type: models.TrainingDocument,
			Description: "Introduction to company values and code of conduct.",
			ContentURL:  "/docs/ethics_policy.pdf", EstimatedDurationMinutes: 30},
		{ID: "train002", Title: "Basic Cleaning Techniques", Type: models.TrainingVideo,
			Description: "Demonstrations of standard cleaning procedures.",
			ContentURL:  "https://www.youtube.com/embed/examplevideo1", EstimatedDurationMinutes: 60},
		{ID: "train003", Title: "Customer Service Excellence", Type: models.TrainingMixed,
			Description: "Handling customer interactions and managing expectations, includes a quiz.",
			ContentURL:  "/training/customer-service", QuizID: "quiz001", EstimatedDurationMinutes: 45},
		{ID: "train004", Title: "Health & Safety Protocols", Type: models.TrainingDocument,
			Description: "Understanding safety guidelines and use of materials.",
			ContentURL:  "/docs/safety_protocols.pdf", EstimatedDurationMinutes: 45},
	}
}

func completedSteps() []models.OnboardingStep {
	steps := models.DefaultOnboardingSteps()
	for i := range steps {
		steps[i].Completed = true
	}
	return steps
}

func workers(now time.Time) []*models.Worker {
	score := 85
	done := now
	trainee := models.DefaultOnboardingSteps()
	trainee[0].Completed = true

	return []*models.Worker{
		{
			ID: Worker1ID, FullName: "Jane Doe", Email: "jane.doe@example.com", Phone: "0821234567",
			Address: "123 Main St, Anytown", IDNumber: "9001015000080",
			ServicesOffered:   []string{"essential-tidying", "laundry-linen"},
			Experience:        "5 years experience in general home cleaning and laundry services.",
			BankAccountNumber: "1234567890", BankName: "FNB", BranchCode: "250655",
			Status: models.WorkerActive, TrainingVerified: true, HourlyRateCents: 11000,
			UnavailableDates: []string{},
			OnboardingSteps:  completedSteps(),
			AssignedTrainingModules: []models.AssignedTrainingModule{
				{ModuleID: "train001", Title: "Clean Slate Welcome & Ethics", Status: models.TrainingCompleted, CompletionDate: &done},
				{ModuleID: "train002", Title: "Basic Cleaning Techniques", Status: models.TrainingCompleted, CompletionDate: &done},
			},
			Version: 1,
		},
		{
			ID: Worker2ID, FullName: "John Smith", Email: "john.smith@example.com", Phone: "0731234567",
			Address: "456 Oak Ave, Anytown", IDNumber: "8503156000085",
			ServicesOffered:   []string{"essential-tidying", "kitchen-detail", "deluxe-deep-clean"},
			Experience:        "10 years experience, specializing in deep cleaning and kitchen details.",
			BankAccountNumber: "0987654321", BankName: "Capitec", BranchCode: "470010",
			Status: models.WorkerActive, TrainingVerified: true, HourlyRateCents: 12500,
			UnavailableDates: []string{now.AddDate(0, 0, 10).Format("2006-01-02")},
			OnboardingSteps:  completedSteps(),
			AssignedTrainingModules: []models.AssignedTrainingModule{
				{ModuleID: "train001", Title: "Clean Slate Welcome & Ethics", Status: models.TrainingCompleted, CompletionDate: &done},
				{ModuleID: "train003", Title: "Customer Service Excellence", Status: models.TrainingCompleted, Score: &score, CompletionDate: &done},
			},
			Version: 1,
		},
		{
			ID: "worker-pending", FullName: "Alice Applicant", Email: "pending@example.com", Phone: "0810000000",
			Address: "789 Pine Rd, Anytown", IDNumber: "9512107000081",
			ServicesOffered:   []string{"essential-tidying"},
			Experience:        "New applicant, eager to learn.",
			BankAccountNumber: "111222333", BankName: "Nedbank", BranchCode: "198765",
			Status: models.WorkerPendingApproval, HourlyRateCents: booking.DefaultHourlyRateCents,
			UnavailableDates:        []string{},
			OnboardingSteps:         models.DefaultOnboardingSteps(),
			AssignedTrainingModules: []models.AssignedTrainingModule{},
			Version:                 1,
		},
		{
			ID: "worker-training", FullName: "Bob Trainee", Email: "trainee@example.com", Phone: "0810000001",
			Address: "10 Hillside Cres, Anytown", IDNumber: "9207078000088",
			ServicesOffered:   []string{"laundry-linen"},
			Experience:        "Completed initial application, ready for training.",
			BankAccountNumber: "444555666", BankName: "Absa", BranchCode: "632005",
			Status: models.WorkerTrainingPending, HourlyRateCents: booking.DefaultHourlyRateCents,
			UnavailableDates: []string{},
			OnboardingSteps:  trainee,
			AssignedTrainingModules: []models.AssignedTrainingModule{
				{ModuleID: "train001", Title: "Clean Slate Welcome & Ethics", Status: models.TrainingInProgress},
				{ModuleID: "train004", Title: "Health & Safety Protocols", Status: models.TrainingNotStarted},
			},
			Version: 1,
		},
	}
}

func bookings(now time.Time, currency string) []*models.Booking {
	rating := 5
	start := now.Truncate(time.Hour)
	return []*models.Booking{
		{
			ID: "booking1", CustomerID: CustomerID, CustomerName: "Valued Customer",
			WorkerID: Worker1ID, WorkerName: "Jane Doe",
			ServiceItemIDs:           []string{"et-sweep-mop", "ll-wash-dry-fold"},
			ServiceNames:             booking.ServiceNames([]string{"et-sweep-mop", "ll-wash-dry-fold"}),
			BookingDate:              start.AddDate(0, 0, 3),
			EstimatedDurationMinutes: 150,
			TotalPriceCents:          booking.LabourCents(150, 11000) + 1500 + 2500,
			Currency:                 currency,
			Status:                   models.StatusConfirmedByWorker,
			Location:                 models.Location{Address: "Customer Address 1, Suburbia"},
			CreatedAt:                now,
			UpdatedAt:                now,
			Version:                  1,
		},
		{
			ID: "booking2", CustomerID: CustomerID, CustomerName: "Valued Customer",
			WorkerID: Worker2ID, WorkerName: "John Smith",
			ServiceItemIDs:           []string{"kd-oven-clean", "ddc-windows-inside"},
			ServiceNames:             booking.ServiceNames([]string{"kd-oven-clean", "ddc-windows-inside"}),
			BookingDate:              start.AddDate(0, 0, 5),
			EstimatedDurationMinutes: 150,
			TotalPriceCents:          booking.LabourCents(150, 12500) + 3000 + 2500,
			Currency:                 currency,
			Status:                   models.StatusCompletedByWorker,
			Rating:                   &rating,
			Review:                   "John did an amazing job! My kitchen is sparkling.",
			Location:                 models.Location{Address: "Another Customer Address, Cityville"},
			CreatedAt:                now.Add(time.Second),
			UpdatedAt:                now.Add(time.Second),
			Version:                  1,
		},
	}
}
