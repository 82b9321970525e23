package trainingRepo

import (
	"context"

	"cleanslate/models"
)

// TrainingModuleRepository stores the training catalog.
type TrainingModuleRepository interface {
	Create(ctx context.Context, module *models.TrainingModule) error
	GetByID(ctx context.Context, id string) (*models.TrainingModule, error)
	// List returns modules in insertion order.
	List(ctx context.Context) ([]models.TrainingModule, error)
}
