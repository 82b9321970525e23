package workerRepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cleanslate/database/repository"
	"cleanslate/models"
)

type MemoryWorkerRepo struct {
	mu      sync.RWMutex
	workers map[string]*models.Worker
}

func NewMemoryWorkerRepo() *MemoryWorkerRepo {
	return &MemoryWorkerRepo{workers: make(map[string]*models.Worker)}
}

func (r *MemoryWorkerRepo) Create(_ context.Context, worker *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.workers[worker.ID]; exists {
		return fmt.Errorf("worker %s: %w", worker.ID, repository.ErrDuplicate)
	}
	for _, w := range r.workers {
		if worker.Email != "" && strings.EqualFold(w.Email, worker.Email) {
			return fmt.Errorf("worker email %s: %w", worker.Email, repository.ErrDuplicate)
		}
	}
	r.workers[worker.ID] = worker.Clone()
	return nil
}

func (r *MemoryWorkerRepo) GetByID(_ context.Context, id string) (*models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[id]
	if !ok {
		return nil, fmt.Errorf("worker %s: %w", id, repository.ErrNotFound)
	}
	return w.Clone(), nil
}

func (r *MemoryWorkerRepo) GetByEmail(_ context.Context, email string) (*models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.workers {
		if strings.EqualFold(w.Email, email) {
			return w.Clone(), nil
		}
	}
	return nil, fmt.Errorf("worker email %s: %w", email, repository.ErrNotFound)
}

func (r *MemoryWorkerRepo) Update(_ context.Context, worker *models.Worker, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.workers[worker.ID]
	if !ok {
		return fmt.Errorf("worker %s: %w", worker.ID, repository.ErrNotFound)
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("worker %s at version %d, expected %d: %w",
			worker.ID, current.Version, expectedVersion, repository.ErrVersionConflict)
	}
	worker.Version = expectedVersion + 1
	r.workers[worker.ID] = worker.Clone()
	return nil
}

func (r *MemoryWorkerRepo) List(_ context.Context, statuses ...models.WorkerStatus) ([]models.Worker, error) {
	r.mu.RLock()
	out := make([]models.Worker, 0, len(r.workers))
	for _, w := range r.workers {
		if matchesStatus(w.Status, statuses) {
			out = append(out, *w.Clone())
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func matchesStatus(status models.WorkerStatus, statuses []models.WorkerStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
