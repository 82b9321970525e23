package workerRepo

import (
	"context"

	"cleanslate/models"
)

// WorkerRepository defines storage for worker profiles.
type WorkerRepository interface {
	Create(ctx context.Context, worker *models.Worker) error
	GetByID(ctx context.Context, id string) (*models.Worker, error)
	GetByEmail(ctx context.Context, email string) (*models.Worker, error)
	// Update replaces the worker if the stored version equals expectedVersion.
	Update(ctx context.Context, worker *models.Worker, expectedVersion int) error
	// List returns workers in creation order, restricted to the given statuses when any are passed.
	List(ctx context.Context, statuses ...models.WorkerStatus) ([]models.Worker, error)
}
