package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/anikett35/MediMage/internal/metrics"

	"github.com/nats-io/nats.go"
)

// HandlerFunc receives the message key and raw JSON payload.
type HandlerFunc func(ctx context.Context, key string, data []byte) error

type Consumer struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	subject string
	queue   string
	handler HandlerFunc
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewConsumer subscribes through a queue group, so several workers share the subject
// and each event is handled once.
func NewConsumer(url, subject, queue string, handler HandlerFunc, logger *slog.Logger, m *metrics.Metrics) (*Consumer, error) {
	nc, err := nats.Connect(url, nats.Name("medimaga-notifier"))
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:    nc,
		subject: subject,
		queue:   queue,
		handler: handler,
		logger:  logger,
		metrics: m,
	}, nil
}

// Start blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	sub, err := c.conn.QueueSubscribe(c.subject, c.queue, func(msg *nats.Msg) {
		key := msg.Header.Get(KeyHeader)
		c.logger.InfoContext(ctx, "received message from NATS", "subject", msg.Subject, "key", key)

		start := time.Now()
		err := c.handler(ctx, key, msg.Data)
		c.metrics.Messaging.RecordConsume(ctx, msg.Subject, time.Since(start), err)
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to handle message", "subject", msg.Subject, "key", key, "error", err)
		}
	})
	if err != nil {
		return err
	}

	c.sub = sub
	c.logger.Info("NATS consumer started", "subject", c.subject, "queue", c.queue)

	<-ctx.Done()
	return ctx.Err()
}

func (c *Consumer) Close() error {
	if c.sub != nil {
		c.sub.Unsubscribe()
	}
	return c.conn.Drain()
}

// HealthCheck verifies NATS connection is healthy
func (c *Consumer) HealthCheck() error {
	if c.conn == nil {
		return nats.ErrConnectionClosed
	}

	if !c.conn.IsConnected() {
		return nats.ErrDisconnected
	}

	return nil
}
