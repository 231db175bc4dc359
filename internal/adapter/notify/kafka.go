package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// KafkaNotifier publishes order lifecycle events to a Kafka topic.
// Publishing runs off the request path and failures are only logged;
// order state never depends on delivery.
type KafkaNotifier struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaNotifier(brokers []string, topic string, logger *zap.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: publishTimeout,
	}
	return &KafkaNotifier{
		writer: writer,
		logger: logger,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, notification domain.Notification) {
	go func() {
		// detach from the request context, the caller does not wait
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		payload, err := json.Marshal(notification)
		if err != nil {
			n.logger.Error("notification marshal failed", zap.Error(err))
			return
		}

		err = n.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(notification.OrderNo),
			Value: payload,
		})
		if err != nil {
			n.logger.Error("notification publish failed",
				zap.String("order_no", notification.OrderNo),
				zap.String("kind", string(notification.Kind)),
				zap.Error(err))
		}
	}()
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// LogNotifier writes the event to the log only. Used when no Kafka
// brokers are configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) {
	n.logger.Info("notification",
		zap.String("kind", string(notification.Kind)),
		zap.String("order_no", notification.OrderNo),
		zap.Uint64("user_id", notification.UserID),
		zap.Int64("amount", notification.Amount),
		zap.String("reason", notification.Reason))
}
