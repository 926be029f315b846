package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aliantdev/orderflow/internal/core/domain"
	"github.com/aliantdev/orderflow/internal/core/port"
	"github.com/aliantdev/orderflow/internal/core/utils"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	publisher    port.EventPublisher
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	publisher port.EventPublisher, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		publisher:    publisher,
		logger:       logger,
	}, nil
}

func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exUser, err := s.repo.GetUserByLogin(ctx, user.Login)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, login string, password string) (string, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

// CreateOrder stores a PENDING order, then announces it to the queue.
// Publishing is best effort: a failed publish is logged and the PENDING
// order is returned anyway. There is no outbox, so an order whose event
// was lost stays PENDING until reconciled out of band.
func (s *Service) CreateOrder(ctx context.Context, ownerID uint64,
	description string, amount decimal.Decimal) (*domain.Order, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.ErrOrderEmptyDescription
	}
	if amount.IsNeg() {
		return nil, domain.ErrOrderNegativeAmount
	}

	now := time.Now()
	order := &domain.Order{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Description: description,
		Amount:      amount.Round(2),
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	newOrder, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	event := &domain.OrderCreatedEvent{
		OrderID: newOrder.ID,
		OwnerID: newOrder.OwnerID,
		Amount:  newOrder.Amount,
		SentAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("order saved but event publish failed, order stays PENDING",
			zap.String("order", newOrder.ID), zap.Error(err))
	}

	return newOrder, nil
}

func (s *Service) GetOrder(ctx context.Context, ownerID uint64, orderID string) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.OwnerID != ownerID {
		return nil, domain.ErrDataNotFound
	}

	return order, nil
}

func (s *Service) GetOrdersByOwner(ctx context.Context, ownerID uint64,
	status domain.OrderStatus) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByOwner(ctx, ownerID, status)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}
