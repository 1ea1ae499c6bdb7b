package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"contacts-api/internal/infrastructure/mq"
)

// EventPublisher must not block the caller.
type EventPublisher interface {
	Publish(e mq.Event)
}

// EventBroker is the RabbitMQ side of contact events: it owns the
// connection and drains published events in PublisherWorker.
type EventBroker interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}

type EventConsumer interface {
	Init() error
	DeliveryWorker(ctx context.Context)
}
