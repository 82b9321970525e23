package worker

import (
	"cleanslate/models"
)

// statusTransitions is the admin-driven worker lifecycle.
var statusTransitions = map[models.WorkerStatus][]models.WorkerStatus{
	models.WorkerPendingApplication: {models.WorkerPendingApproval, models.WorkerTrainingPending, models.WorkerRejected},
	models.WorkerPendingApproval:    {models.WorkerPendingApplication, models.WorkerTrainingPending, models.WorkerActive, models.WorkerRejected},
	models.WorkerTrainingPending:    {models.WorkerOnboardingComplete, models.WorkerActive, models.WorkerRejected},
	models.WorkerOnboardingComplete: {models.WorkerActive},
	models.WorkerActive:             {models.WorkerSuspended},
	models.WorkerSuspended:          {models.WorkerActive},
	models.WorkerRejected:           {models.WorkerPendingApplication, models.WorkerPendingApproval},
}

// CanTransition reports whether an admin may move a worker from one status to another.
func CanTransition(from, to models.WorkerStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// completeOnboarding ticks every step; used when an admin forces a worker Active.
func completeOnboarding(w *models.Worker) {
	for i := range w.OnboardingSteps {
		w.OnboardingSteps[i].Completed = true
	}
}

// autoAdvance moves a worker waiting on onboarding to OnboardingComplete once
// the last step is done.
func autoAdvance(w *models.Worker) bool {
	if !w.AllStepsCompleted() {
		return false
	}
	if w.Status != models.WorkerTrainingPending && w.Status != models.WorkerPendingApproval {
		return false
	}
	w.Status = models.WorkerOnboardingComplete
	return true
}

// refreshVerified keeps trainingVerified true exactly when the worker is
// Active or has completed every onboarding step.
func refreshVerified(w *models.Worker) {
	w.TrainingVerified = w.Status == models.WorkerActive || w.AllStepsCompleted()
}
