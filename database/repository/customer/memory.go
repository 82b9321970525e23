package customerRepo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cleanslate/database/repository"
	"cleanslate/models"
)

type MemoryCustomerRepo struct {
	mu        sync.RWMutex
	customers map[string]models.Customer
}

func NewMemoryCustomerRepo() *MemoryCustomerRepo {
	return &MemoryCustomerRepo{customers: make(map[string]models.Customer)}
}

func (r *MemoryCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customers[customer.ID]; exists {
		return fmt.Errorf("customer %s: %w", customer.ID, repository.ErrDuplicate)
	}
	for _, c := range r.customers {
		if customer.Email != "" && strings.EqualFold(c.Email, customer.Email) {
			return fmt.Errorf("customer email %s: %w", customer.Email, repository.ErrDuplicate)
		}
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *MemoryCustomerRepo) GetByID(_ context.Context, id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, repository.ErrNotFound)
	}
	return &c, nil
}

func (r *MemoryCustomerRepo) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if strings.EqualFold(c.Email, email) {
			cp := c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("customer email %s: %w", email, repository.ErrNotFound)
}
