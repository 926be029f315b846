package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aliantdev/orderflow/internal/core/domain"
	"github.com/aliantdev/orderflow/internal/core/port"
	"go.uber.org/zap"
)

// Consumer drives orders from PENDING to PROCESSED off the queue. The queue
// delivers at least once, so the same order may arrive any number of times,
// on any replica; the conditional status update in the repository is what
// makes the effect happen at most once.
type Consumer struct {
	queue        port.QueueClient
	repo         port.Repository
	pollInterval time.Duration
	logger       *zap.Logger
}

func NewConsumer(queue port.QueueClient, repo port.Repository,
	pollInterval time.Duration, logger *zap.Logger) (*Consumer, error) {
	return &Consumer{
		queue:        queue,
		repo:         repo,
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

// orderMessage is the part of the event body the consumer cares about.
// Extra fields are ignored.
type orderMessage struct {
	OrderID string `json:"orderId"`
}

// Run polls until ctx is canceled. An error in one iteration is logged and
// the loop keeps going: a bad message or a failed call must never take the
// worker down.
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("consumer started", zap.Duration("poll_interval", c.pollInterval))

	for {
		if err := c.ProcessOnce(ctx); err != nil && ctx.Err() == nil {
			c.logger.Error("iteration failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped")
			return
		case <-time.After(c.pollInterval):
		}
	}
}

// ProcessOnce runs one receive-decide-acknowledge cycle. A message is
// deleted when its work is done or can never be done (order already past
// PENDING, order unknown, body malformed); it is kept on a store failure so
// the visibility timeout redelivers it.
func (c *Consumer) ProcessOnce(ctx context.Context) error {
	msg, err := c.queue.ReceiveMessage(ctx)
	if err != nil {
		return fmt.Errorf("receive message: %w", err)
	}
	if msg == nil {
		return nil
	}

	var body orderMessage
	if err := json.Unmarshal([]byte(msg.Body), &body); err != nil || body.OrderID == "" {
		// A body without an order id can never be processed. Dropping it
		// loses the event but stops it from redelivering forever.
		c.logger.Error("malformed message body, dropping",
			zap.String("body", msg.Body), zap.Error(err))
		return c.queue.DeleteMessage(ctx, msg.ReceiptHandle)
	}

	affected, err := c.repo.TransitionOrderStatus(ctx, body.OrderID,
		domain.OrderStatusPending, domain.OrderStatusProcessed)
	if err != nil {
		// Store failure. Keep the message: it becomes visible again after
		// the visibility timeout and some replica retries.
		c.logger.Error("store error, message will return to queue",
			zap.String("order", body.OrderID), zap.Error(err))
		return nil
	}

	if affected > 0 {
		c.logger.Info("order processed", zap.String("order", body.OrderID))
	} else {
		c.logger.Warn("order already processed or not found, discarding",
			zap.String("order", body.OrderID))
	}

	return c.queue.DeleteMessage(ctx, msg.ReceiptHandle)
}
