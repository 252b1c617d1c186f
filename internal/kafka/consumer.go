package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anikett35/MediMage/internal/metrics"

	"github.com/IBM/sarama"
)

// HandlerFunc receives the record key and raw JSON value.
type HandlerFunc func(ctx context.Context, key string, data []byte) error

type Consumer struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  *ConsumerGroupHandler
	logger   *slog.Logger
}

func NewConsumer(brokers []string, topic, group string, handler HandlerFunc, logger *slog.Logger, m *metrics.Metrics) (*Consumer, error) {
	config := sarama.NewConfig()
	config.ClientID = "medimaga-notifier"
	config.Version = sarama.V2_8_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumerGroup, err := sarama.NewConsumerGroup(brokers, group, config)
	if err != nil {
		return nil, err
	}

	logger.Info("kafka consumer initialized", "brokers", brokers, "topic", topic, "group", group)

	return &Consumer{
		consumer: consumerGroup,
		topic:    topic,
		handler: &ConsumerGroupHandler{
			Handler: handler,
			Logger:  logger,
			Metrics: m,
		},
		logger: logger,
	}, nil
}

// Start blocks until ctx is cancelled, rejoining the group after each rebalance.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		if err := c.consumer.Consume(ctx, []string{c.topic}, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.logger.Error("error consuming messages", "error", err)
			return err
		}

		// Check if context was cancelled
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.consumer.Close()
}

// ConsumerGroupHandler implements sarama.ConsumerGroupHandler interface
type ConsumerGroupHandler struct {
	Handler HandlerFunc
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func (h *ConsumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *ConsumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks every record, including ones the handler rejects; a failed
// notification is logged and not redelivered.
func (h *ConsumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()

	for msg := range claim.Messages() {
		h.Logger.InfoContext(ctx, "received message from Kafka",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
		)

		start := time.Now()
		err := h.Handler(ctx, string(msg.Key), msg.Value)
		h.Metrics.Messaging.RecordConsume(ctx, msg.Topic, time.Since(start), err)
		if err != nil {
			h.Logger.ErrorContext(ctx, "failed to handle message",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err,
			)
		}

		session.MarkMessage(msg, "")
	}

	return nil
}
