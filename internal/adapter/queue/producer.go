package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aliantdev/orderflow/internal/core/domain"
	"github.com/aliantdev/orderflow/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type Producer struct {
	queue  port.QueueClient
	logger *zap.Logger
}

func NewProducer(queue port.QueueClient, logger *zap.Logger) (*Producer, error) {
	return &Producer{
		queue:  queue,
		logger: logger,
	}, nil
}

type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	s := fmt.Sprintf("%f", decimal.Decimal(j))
	return []byte(s), nil
}

type eventPayload struct {
	OrderID string      `json:"orderId"`
	OwnerID string      `json:"ownerId"`
	Amount  jsonDecimal `json:"amount"`
	SentAt  time.Time   `json:"sentAt"`
}

// Publish serializes the event and sends it in one call. No retry here:
// the caller owns the policy for a failed publish.
func (p *Producer) Publish(ctx context.Context, event *domain.OrderCreatedEvent) error {
	payload := eventPayload{
		OrderID: event.OrderID,
		OwnerID: strconv.FormatUint(event.OwnerID, 10),
		Amount:  jsonDecimal(event.Amount),
		SentAt:  event.SentAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.queue.SendMessage(ctx, string(body)); err != nil {
		return err
	}

	p.logger.Debug("event sent", zap.String("order", event.OrderID))
	return nil
}
