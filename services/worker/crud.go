package worker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cleanslate/models"
	"cleanslate/services/booking"
	"cleanslate/services/notification"
	"cleanslate/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register turns a public application into a worker awaiting approval.
func (s *DefaultWorkerService) Register(ctx context.Context, app models.WorkerApplication) (*models.Worker, error) {
	if len(app.ServicesOffered) == 0 {
		return nil, utils.NewValidationError("servicesOffered", "select at least one service category")
	}
	for _, c := range app.ServicesOffered {
		if !booking.IsCategory(c) {
			return nil, utils.NewValidationError("servicesOffered", fmt.Sprintf("unknown service category %q", c))
		}
	}

	now := s.now().UTC()
	w := &models.Worker{
		ID:                      uuid.New().String(),
		FullName:                strings.TrimSpace(app.FullName),
		Email:                   strings.ToLower(strings.TrimSpace(app.Email)),
		Phone:                   app.Phone,
		Address:                 app.Address,
		IDNumber:                app.IDNumber,
		ServicesOffered:         dedupe(app.ServicesOffered),
		Experience:              app.Experience,
		BankAccountNumber:       app.BankAccountNumber,
		BankName:                app.BankName,
		BranchCode:              app.BranchCode,
		Status:                  models.WorkerPendingApproval,
		HourlyRateCents:         booking.DefaultHourlyRateCents,
		UnavailableDates:        []string{},
		OnboardingSteps:         models.DefaultOnboardingSteps(),
		AssignedTrainingModules: []models.AssignedTrainingModule{},
		Location:                app.Location,
		CreatedAt:               now,
		UpdatedAt:               now,
		Version:                 1,
	}
	refreshVerified(w)

	if err := s.workers.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("register worker: %w", err)
	}
	s.logger.Info("worker application received", zap.String("workerId", w.ID))
	s.publish(ctx, models.EventWorkerCreated, w)
	return w, nil
}

func (s *DefaultWorkerService) Get(ctx context.Context, id string) (*models.Worker, error) {
	w, err := s.workers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return w, nil
}

func (s *DefaultWorkerService) List(ctx context.Context, statuses ...models.WorkerStatus) ([]models.Worker, error) {
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, utils.NewValidationError("status", fmt.Sprintf("unknown worker status %q", st))
		}
	}
	return s.workers.List(ctx, statuses...)
}

// SetUnavailableDates replaces the worker's blocked calendar days.
// Dates must be YYYY-MM-DD; the stored list is sorted and free of duplicates.
func (s *DefaultWorkerService) SetUnavailableDates(ctx context.Context, workerID string, dates []string) (*models.Worker, error) {
	for _, d := range dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, utils.NewValidationError("dates", fmt.Sprintf("%q is not a YYYY-MM-DD date", d))
		}
	}
	clean := dedupe(dates)
	sort.Strings(clean)

	return s.mutate(ctx, workerID, func(w *models.Worker) error {
		w.UnavailableDates = clean
		return nil
	})
}

// mutate runs a read-modify-write on one worker under its lock, restores the
// trainingVerified invariant and publishes the change.
func (s *DefaultWorkerService) mutate(ctx context.Context, workerID string, change func(w *models.Worker) error) (*models.Worker, error) {
	unlock := s.locks.Lock(workerID)
	defer unlock()

	w, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("update worker: %w", err)
	}
	expected := w.Version
	if err := change(w); err != nil {
		return nil, err
	}
	refreshVerified(w)
	w.UpdatedAt = s.now().UTC()
	if err := s.workers.Update(ctx, w, expected); err != nil {
		return nil, fmt.Errorf("update worker: %w", err)
	}
	s.publish(ctx, models.EventWorkerUpdated, w)
	return w, nil
}

func (s *DefaultWorkerService) publish(ctx context.Context, eventType string, w *models.Worker) {
	event := notification.NewEvent(eventType, "worker", w.ID, map[string]string{"status": string(w.Status)})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish worker event", zap.String("type", eventType), zap.Error(err))
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
