package port

import (
	"context"

	"github.com/aliantdev/orderflow/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByOwner(ctx context.Context, ownerID uint64, status domain.OrderStatus) ([]*domain.Order, error)

	// TransitionOrderStatus sets the order status to `to` only if it
	// currently equals `from`, in one atomic statement. Returns the number
	// of affected rows: 1 when the transition happened, 0 when the order
	// is absent or already past `from`. This is the only write path for
	// the status column after creation.
	TransitionOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (int64, error)
}
