package worker

import (
	"context"
	"fmt"

	"cleanslate/database/repository"
	"cleanslate/models"
	"cleanslate/services/notification"
	"cleanslate/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultWorkerService) AssignTrainingModule(ctx context.Context, workerID, moduleID string) (*models.Worker, error) {
	module, err := s.modules.GetByID(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("assign training: %w", err)
	}
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		for _, m := range w.AssignedTrainingModules {
			if m.ModuleID == moduleID {
				return fmt.Errorf("module %s for worker %s: %w", moduleID, workerID, utils.ErrAlreadyAssigned)
			}
		}
		w.AssignedTrainingModules = append(w.AssignedTrainingModules, models.AssignedTrainingModule{
			ModuleID: module.ID,
			Title:    module.Title,
			Status:   models.TrainingNotStarted,
		})
		return nil
	})
}

// UpdateTrainingModuleStatus records progress on an assigned module. Completing one
// of the initial training modules also completes the initial training step.
func (s *DefaultWorkerService) UpdateTrainingModuleStatus(ctx context.Context, workerID, moduleID string, status models.TrainingProgress, score *int) (*models.Worker, error) {
	if !status.IsValid() {
		return nil, utils.NewValidationError("status", fmt.Sprintf("unknown training status %q", status))
	}
	if score != nil && (*score < 0 || *score > 100) {
		return nil, utils.NewValidationError("score", "must be between 0 and 100")
	}

	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		idx := -1
		for i, m := range w.AssignedTrainingModules {
			if m.ModuleID == moduleID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("module %s is not assigned to worker %s: %w", moduleID, workerID, repository.ErrNotFound)
		}

		m := &w.AssignedTrainingModules[idx]
		m.Status = status
		if score != nil {
			sc := *score
			m.Score = &sc
		}
		if status != models.TrainingCompleted {
			m.CompletionDate = nil
			return nil
		}

		done := s.now().UTC()
		m.CompletionDate = &done
		if _, ok := s.initialTraining[moduleID]; ok {
			for i := range w.OnboardingSteps {
				if w.OnboardingSteps[i].ID == models.StepInitialTraining {
					w.OnboardingSteps[i].Completed = true
				}
			}
			if autoAdvance(w) {
				s.logger.Info("worker onboarding complete", zap.String("workerId", w.ID))
			}
		}
		return nil
	})
}

func (s *DefaultWorkerService) ListModules(ctx context.Context) ([]models.TrainingModule, error) {
	return s.modules.List(ctx)
}

func (s *DefaultWorkerService) GetModule(ctx context.Context, id string) (*models.TrainingModule, error) {
	m, err := s.modules.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get training module: %w", err)
	}
	return m, nil
}

func (s *DefaultWorkerService) AddModule(ctx context.Context, in models.NewTrainingModule) (*models.TrainingModule, error) {
	if !in.Type.IsValid() {
		return nil, utils.NewValidationError("type", fmt.Sprintf("unknown training type %q", in.Type))
	}
	if in.EstimatedDurationMinutes <= 0 {
		return nil, utils.NewValidationError("estimatedDurationMinutes", "must be positive")
	}
	m := &models.TrainingModule{
		ID:                       uuid.New().String(),
		Title:                    in.Title,
		Type:                     in.Type,
		Description:              in.Description,
		ContentURL:               in.ContentURL,
		QuizID:                   in.QuizID,
		EstimatedDurationMinutes: in.EstimatedDurationMinutes,
	}
	if err := s.modules.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("add training module: %w", err)
	}
	event := notification.NewEvent(models.EventTrainingModuleAdded, "trainingModule", m.ID, map[string]string{"title": m.Title})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish training event", zap.Error(err))
	}
	return m, nil
}
