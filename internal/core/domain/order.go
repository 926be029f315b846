package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

// Status is monotonic: PENDING -> PROCESSED, exactly once, no way back.
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusProcessed OrderStatus = "PROCESSED"
)

type Order struct {
	ID          string
	OwnerID     uint64
	Description string
	Amount      decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
