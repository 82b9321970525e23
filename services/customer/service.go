package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	customerRepo "cleanslate/database/repository/customer"
	"cleanslate/models"
	"cleanslate/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	Signup(ctx context.Context, in models.CustomerSignup) (*models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
}

type DefaultCustomerService struct {
	repo      customerRepo.CustomerRepository
	publisher notification.Publisher
	logger    *zap.Logger
}

func NewDefaultCustomerService(repo customerRepo.CustomerRepository, publisher notification.Publisher, logger *zap.Logger) *DefaultCustomerService {
	if publisher == nil {
		publisher = notification.NewLogPublisher(logger)
	}
	return &DefaultCustomerService{repo: repo, publisher: publisher, logger: logger}
}

func (s *DefaultCustomerService) Signup(ctx context.Context, in models.CustomerSignup) (*models.Customer, error) {
	c := &models.Customer{
		ID:        uuid.New().String(),
		FullName:  strings.TrimSpace(in.FullName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
		Version:   1,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("customer signup: %w", err)
	}
	s.logger.Info("customer signed up", zap.String("customerId", c.ID))
	if err := s.publisher.Publish(ctx, notification.NewEvent(models.EventCustomerCreated, "customer", c.ID, nil)); err != nil {
		s.logger.Warn("failed to publish customer event", zap.Error(err))
	}
	return c, nil
}

func (s *DefaultCustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}
