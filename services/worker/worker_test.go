package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"cleanslate/database/repository"
	trainingRepo "cleanslate/database/repository/training"
	workerRepo "cleanslate/database/repository/worker"
	"cleanslate/models"
	"cleanslate/services/notification"
	"cleanslate/utils"

	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*DefaultWorkerService, *notification.RecordingPublisher) {
	t.Helper()
	modules := trainingRepo.NewMemoryTrainingRepo()
	for _, m := range []models.TrainingModule{
		{ID: "train001", Title: "Clean Slate Welcome & Ethics", Type: models.TrainingDocument, EstimatedDurationMinutes: 30},
		{ID: "train002", Title: "Basic Cleaning Techniques", Type: models.TrainingVideo, EstimatedDurationMinutes: 60},
	} {
		m := m
		if err := modules.Create(context.Background(), &m); err != nil {
			t.Fatalf("seed module: %v", err)
		}
	}
	events := &notification.RecordingPublisher{}
	svc, err := NewDefaultWorkerService(workerRepo.NewMemoryWorkerRepo(), modules, events, zap.NewNop(), []string{"train002"}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return fixed })
	return svc, events
}

func application(email string) models.WorkerApplication {
	return models.WorkerApplication{
		FullName:          "Alice Applicant",
		Email:             email,
		Phone:             "0810000000",
		Address:           "789 Pine Rd, Anytown",
		IDNumber:          "9512107000081",
		ServicesOffered:   []string{"essential-tidying", "essential-tidying"},
		BankAccountNumber: "111222333",
		BankName:          "Nedbank",
		BranchCode:        "198765",
	}
}

func TestRegister(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	w, err := svc.Register(ctx, application("Alice@Example.com"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if w.Status != models.WorkerPendingApproval || w.TrainingVerified {
		t.Fatalf("expected unverified PendingApproval worker, got %s %v", w.Status, w.TrainingVerified)
	}
	if len(w.OnboardingSteps) != 4 || len(w.ServicesOffered) != 1 {
		t.Fatalf("expected 4 steps and deduped services, got %d and %v", len(w.OnboardingSteps), w.ServicesOffered)
	}
	if w.Email != "alice@example.com" || w.HourlyRateCents != 10000 {
		t.Fatalf("unexpected email or rate: %s %d", w.Email, w.HourlyRateCents)
	}
	if types := events.Types(); len(types) != 1 || types[0] != models.EventWorkerCreated {
		t.Fatalf("expected worker.created, got %v", types)
	}

	if _, err := svc.Register(ctx, application("alice@example.com")); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate email to be rejected, got %v", err)
	}

	bad := application("bob@example.com")
	bad.ServicesOffered = []string{"window-washing"}
	var ve *utils.ValidationError
	if _, err := svc.Register(ctx, bad); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}
}

func TestOnboardingAutoAdvances(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	w, _ := svc.Register(ctx, application("alice@example.com"))

	w, err := svc.UpdateStatus(ctx, w.ID, models.WorkerTrainingPending)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	for _, step := range []string{models.StepIDVerification, models.StepAddressConfirmation, models.StepContractSigning} {
		if w, err = svc.UpdateOnboardingStep(ctx, w.ID, step, true, ""); err != nil {
			t.Fatalf("step %s: %v", step, err)
		}
	}
	if w.Status != models.WorkerTrainingPending {
		t.Fatalf("expected still TrainingPending, got %s", w.Status)
	}

	if _, err := svc.AssignTrainingModule(ctx, w.ID, "train002"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	w, err = svc.UpdateTrainingModuleStatus(ctx, w.ID, "train002", models.TrainingCompleted, nil)
	if err != nil {
		t.Fatalf("complete training: %v", err)
	}
	if w.Status != models.WorkerOnboardingComplete || !w.TrainingVerified {
		t.Fatalf("expected verified OnboardingComplete worker, got %s %v", w.Status, w.TrainingVerified)
	}
	if w.AssignedTrainingModules[0].CompletionDate == nil {
		t.Fatalf("expected completion date to be stamped")
	}

	// Unticking a step drops verification without changing status.
	w, err = svc.UpdateOnboardingStep(ctx, w.ID, models.StepContractSigning, false, "re-sign required")
	if err != nil {
		t.Fatalf("untick: %v", err)
	}
	if w.Status != models.WorkerOnboardingComplete || w.TrainingVerified {
		t.Fatalf("expected OnboardingComplete without verification, got %s %v", w.Status, w.TrainingVerified)
	}
	if w.OnboardingSteps[2].Notes != "re-sign required" {
		t.Fatalf("expected notes to be kept, got %q", w.OnboardingSteps[2].Notes)
	}

	if w, err = svc.UpdateStatus(ctx, w.ID, models.WorkerActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !w.AllStepsCompleted() || !w.TrainingVerified {
		t.Fatalf("expected activation to complete onboarding")
	}
}

func TestForceActiveAndSuspend(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	w, _ := svc.Register(ctx, application("alice@example.com"))

	w, err := svc.UpdateStatus(ctx, w.ID, models.WorkerActive)
	if err != nil {
		t.Fatalf("force active: %v", err)
	}
	if !w.TrainingVerified || !w.AllStepsCompleted() {
		t.Fatalf("expected a forced Active worker to be fully onboarded")
	}

	w, err = svc.UpdateStatus(ctx, w.ID, models.WorkerSuspended)
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if !w.TrainingVerified {
		t.Fatalf("expected suspension to keep verification")
	}

	if _, err := svc.UpdateStatus(ctx, w.ID, models.WorkerRejected); !errors.Is(err, utils.ErrIllegalTransition) {
		t.Fatalf("expected illegal transition, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, w.ID, "Retired"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
	if _, err := svc.UpdateStatus(ctx, "ghost", models.WorkerActive); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTrainingAssignmentRules(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	w, _ := svc.Register(ctx, application("alice@example.com"))

	if _, err := svc.AssignTrainingModule(ctx, w.ID, "train001"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.AssignTrainingModule(ctx, w.ID, "train001"); !errors.Is(err, utils.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
	if _, err := svc.AssignTrainingModule(ctx, w.ID, "train999"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected unknown module to be not found, got %v", err)
	}
	if _, err := svc.UpdateTrainingModuleStatus(ctx, w.ID, "train002", models.TrainingInProgress, nil); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected unassigned module to be not found, got %v", err)
	}

	score := 101
	if _, err := svc.UpdateTrainingModuleStatus(ctx, w.ID, "train001", models.TrainingCompleted, &score); err == nil {
		t.Fatalf("expected score above 100 to be rejected")
	}

	score = 85
	w, err := svc.UpdateTrainingModuleStatus(ctx, w.ID, "train001", models.TrainingCompleted, &score)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	m := w.AssignedTrainingModules[0]
	if *m.Score != 85 || m.CompletionDate == nil {
		t.Fatalf("expected score and completion date, got %+v", m)
	}
	// train001 is not an initial module, so the step stays open.
	for _, step := range w.OnboardingSteps {
		if step.ID == models.StepInitialTraining && step.Completed {
			t.Fatalf("expected initial training step to stay incomplete")
		}
	}

	w, err = svc.UpdateTrainingModuleStatus(ctx, w.ID, "train001", models.TrainingInProgress, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if w.AssignedTrainingModules[0].CompletionDate != nil {
		t.Fatalf("expected completion date cleared when reopened")
	}
}

func TestSetUnavailableDates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	w, _ := svc.Register(ctx, application("alice@example.com"))

	w, err := svc.SetUnavailableDates(ctx, w.ID, []string{"2025-03-12", "2025-03-10", "2025-03-12"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(w.UnavailableDates) != 2 || w.UnavailableDates[0] != "2025-03-10" {
		t.Fatalf("expected sorted unique dates, got %v", w.UnavailableDates)
	}
	if _, err := svc.SetUnavailableDates(ctx, w.ID, []string{"12/03/2025"}); err == nil {
		t.Fatalf("expected bad date format to be rejected")
	}
}

func TestListAndModules(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()
	a, _ := svc.Register(ctx, application("a@example.com"))
	if _, err := svc.Register(ctx, application("b@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, a.ID, models.WorkerActive); err != nil {
		t.Fatalf("activate: %v", err)
	}

	active, err := svc.List(ctx, models.WorkerActive)
	if err != nil || len(active) != 1 || active[0].ID != a.ID {
		t.Fatalf("expected only the active worker, got %v (%v)", active, err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 workers, got %d", len(all))
	}
	if _, err := svc.List(ctx, "Sleeping"); err == nil {
		t.Fatalf("expected unknown status filter to fail")
	}

	m, err := svc.AddModule(ctx, models.NewTrainingModule{
		Title:                    "Stain Removal",
		Type:                     models.TrainingVideo,
		Description:              "Common stains and how to lift them.",
		EstimatedDurationMinutes: 20,
	})
	if err != nil {
		t.Fatalf("add module: %v", err)
	}
	modules, _ := svc.ListModules(ctx)
	if len(modules) != 3 || modules[2].ID != m.ID {
		t.Fatalf("expected new module last, got %v", modules)
	}
	types := events.Types()
	if types[len(types)-1] != models.EventTrainingModuleAdded {
		t.Fatalf("expected training.module_added last, got %v", types)
	}
	if _, err := svc.AddModule(ctx, models.NewTrainingModule{Title: "x", Type: "Podcast", EstimatedDurationMinutes: 5}); err == nil {
		t.Fatalf("expected unknown type to be rejected")
	}
}
