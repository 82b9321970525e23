package worker

import (
	"context"
	"fmt"
	"time"

	trainingRepo "cleanslate/database/repository/training"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
	"cleanslate/services/notification"
	"cleanslate/utils"

	"go.uber.org/zap"
)

type WorkerService interface {
	// Applications and profiles
	Register(ctx context.Context, app models.WorkerApplication) (*models.Worker, error)
	Get(ctx context.Context, id string) (*models.Worker, error)
	List(ctx context.Context, statuses ...models.WorkerStatus) ([]models.Worker, error)
	SetUnavailableDates(ctx context.Context, workerID string, dates []string) (*models.Worker, error)

	// Lifecycle and onboarding
	UpdateStatus(ctx context.Context, workerID string, status models.WorkerStatus) (*models.Worker, error)
	UpdateOnboardingStep(ctx context.Context, workerID, stepID string, completed bool, notes string) (*models.Worker, error)
	AssignTrainingModule(ctx context.Context, workerID, moduleID string) (*models.Worker, error)
	UpdateTrainingModuleStatus(ctx context.Context, workerID, moduleID string, status models.TrainingProgress, score *int) (*models.Worker, error)

	// Training catalog
	ListModules(ctx context.Context) ([]models.TrainingModule, error)
	GetModule(ctx context.Context, id string) (*models.TrainingModule, error)
	AddModule(ctx context.Context, in models.NewTrainingModule) (*models.TrainingModule, error)
}

// DefaultWorkerService is the production implementation.
type DefaultWorkerService struct {
	workers   workerRepo.WorkerRepository
	modules   trainingRepo.TrainingModuleRepository
	publisher notification.Publisher
	logger    *zap.Logger

	initialTraining map[string]struct{}
	locks           *utils.KeyedMutex
	now             func() time.Time
}

// NewDefaultWorkerService wires the service. initialTrainingModules lists the module ids whose
// completion also completes the initial training onboarding step. locks may be shared with the
// booking service; nil creates a private one.
func NewDefaultWorkerService(
	workers workerRepo.WorkerRepository,
	modules trainingRepo.TrainingModuleRepository,
	publisher notification.Publisher,
	logger *zap.Logger,
	initialTrainingModules []string,
	locks *utils.KeyedMutex,
) (*DefaultWorkerService, error) {
	if workers == nil || modules == nil {
		return nil, fmt.Errorf("worker service initialization error: repositories are nil")
	}
	if publisher == nil {
		publisher = notification.NewLogPublisher(logger)
	}
	if locks == nil {
		locks = utils.NewKeyedMutex()
	}
	initial := make(map[string]struct{}, len(initialTrainingModules))
	for _, id := range initialTrainingModules {
		initial[id] = struct{}{}
	}
	return &DefaultWorkerService{
		workers:         workers,
		modules:         modules,
		publisher:       publisher,
		logger:          logger,
		initialTraining: initial,
		locks:           locks,
		now:             time.Now,
	}, nil
}

// WithClock overrides the time source. Used by tests.
func (s *DefaultWorkerService) WithClock(now func() time.Time) *DefaultWorkerService {
	s.now = now
	return s
}
