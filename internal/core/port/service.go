package port

import (
	"context"

	"github.com/aliantdev/orderflow/internal/core/domain"
	"github.com/govalues/decimal"
)

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, login string, password string) (string, error)

	CreateOrder(ctx context.Context, ownerID uint64, description string, amount decimal.Decimal) (*domain.Order, error)
	GetOrder(ctx context.Context, ownerID uint64, orderID string) (*domain.Order, error)
	GetOrdersByOwner(ctx context.Context, ownerID uint64, status domain.OrderStatus) ([]*domain.Order, error)
}
