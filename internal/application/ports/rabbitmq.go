package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"user-account-api/internal/infrastructure/mq"
)

type (
	// EventPublisher must not block the caller.
	EventPublisher interface {
		Publish(e mq.Event) bool
	}
	RabbitMQ interface {
		EventPublisher
		Connect(ctx context.Context, dsn string) error
		Init() error
		PublisherWorker(ctx context.Context)
		GetConn() *amqp091.Connection
	}
	// EventAuditor reads the user events back from the exchange and logs them
	// until the worker's context ends.
	EventAuditor interface {
		Connect(dsn string) error
		Init() error
		AuditWorker(ctx context.Context)
	}
)
