package trainingRepo

import (
	"context"
	"fmt"
	"sync"

	"cleanslate/database/repository"
	"cleanslate/models"
)

type MemoryTrainingRepo struct {
	mu      sync.RWMutex
	order   []string
	modules map[string]models.TrainingModule
}

func NewMemoryTrainingRepo() *MemoryTrainingRepo {
	return &MemoryTrainingRepo{modules: make(map[string]models.TrainingModule)}
}

func (r *MemoryTrainingRepo) Create(_ context.Context, module *models.TrainingModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[module.ID]; exists {
		return fmt.Errorf("training module %s: %w", module.ID, repository.ErrDuplicate)
	}
	r.modules[module.ID] = *module
	r.order = append(r.order, module.ID)
	return nil
}

func (r *MemoryTrainingRepo) GetByID(_ context.Context, id string) (*models.TrainingModule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[id]
	if !ok {
		return nil, fmt.Errorf("training module %s: %w", id, repository.ErrNotFound)
	}
	return &m, nil
}

func (r *MemoryTrainingRepo) List(_ context.Context) ([]models.TrainingModule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TrainingModule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.modules[id])
	}
	return out, nil
}
