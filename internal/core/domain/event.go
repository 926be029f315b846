package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// OrderCreatedEvent announces a freshly accepted order to the processing
// queue. The consumer only needs OrderID, the rest is carried for tracing.
type OrderCreatedEvent struct {
	OrderID string
	OwnerID uint64
	Amount  decimal.Decimal
	SentAt  time.Time
}
