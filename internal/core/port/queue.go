package port

import (
	"context"

	"github.com/aliantdev/orderflow/internal/core/domain"
)

// Message is one delivery of a queue message. ReceiptHandle acknowledges
// this delivery only; the same body may arrive again with a new handle.
type Message struct {
	Body          string
	ReceiptHandle string
}

//go:generate mockgen -source=queue.go -destination=mock/queue.go -package=mock
type QueueClient interface {
	SendMessage(ctx context.Context, body string) error

	// ReceiveMessage long-polls for at most one message and returns nil
	// when the queue is empty.
	ReceiveMessage(ctx context.Context) (*Message, error)

	DeleteMessage(ctx context.Context, receiptHandle string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event *domain.OrderCreatedEvent) error
}
