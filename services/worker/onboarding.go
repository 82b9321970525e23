package worker

import (
	"context"
	"fmt"

	"cleanslate/database/repository"
	"cleanslate/models"
	"cleanslate/utils"

	"go.uber.org/zap"
)

// UpdateStatus applies an admin lifecycle decision. Forcing a worker Active
// completes the whole onboarding checklist.
func (s *DefaultWorkerService) UpdateStatus(ctx context.Context, workerID string, status models.WorkerStatus) (*models.Worker, error) {
	if !status.IsValid() {
		return nil, utils.NewValidationError("status", fmt.Sprintf("unknown worker status %q", status))
	}
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		if !CanTransition(w.Status, status) {
			return &utils.IllegalTransitionError{Entity: "worker", From: string(w.Status), To: string(status)}
		}
		s.logger.Info("worker status changed",
			zap.String("workerId", w.ID),
			zap.String("from", string(w.Status)),
			zap.String("to", string(status)))
		w.Status = status
		if status == models.WorkerActive {
			completeOnboarding(w)
		}
		return nil
	})
}

// UpdateOnboardingStep marks one checklist item. Completing the last one moves a
// worker in TrainingPending or PendingApproval to OnboardingComplete.
func (s *DefaultWorkerService) UpdateOnboardingStep(ctx context.Context, workerID, stepID string, completed bool, notes string) (*models.Worker, error) {
	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		idx := -1
		for i, step := range w.OnboardingSteps {
			if step.ID == stepID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("onboarding step %s: %w", stepID, repository.ErrNotFound)
		}
		w.OnboardingSteps[idx].Completed = completed
		if notes != "" {
			w.OnboardingSteps[idx].Notes = notes
		}
		if autoAdvance(w) {
			s.logger.Info("worker onboarding complete", zap.String("workerId", w.ID))
		}
		return nil
	})
}
