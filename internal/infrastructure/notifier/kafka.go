package notifier

import (
	"context"
	"strconv"

	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the notifier uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier produces notifications to a topic keyed by symbol, so all
// alerts for one symbol land on one partition in order.
type KafkaNotifier struct {
	writer MessageWriter
	logger logger.Interface
}

// NewKafkaNotifier creates a KafkaNotifier backed by a kafka-go writer.
func NewKafkaNotifier(cfg config.KafkaConfig, logger logger.Interface) *KafkaNotifier {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.AlertTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: int(kafka.RequireOne),
	})

	return NewKafkaNotifierWithWriter(writer, logger)
}

// NewKafkaNotifierWithWriter creates a KafkaNotifier over an existing writer.
func NewKafkaNotifierWithWriter(writer MessageWriter, logger logger.Interface) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, logger: logger}
}

func (k *KafkaNotifier) Name() string { return "kafka" }

func (k *KafkaNotifier) Notify(ctx context.Context, n Notification) error {
	msg := kafka.Message{
		Key:   []byte(n.Symbol),
		Value: n.Bytes(),
		Headers: []kafka.Header{
			{Key: "alert_id", Value: []byte(strconv.FormatInt(n.AlertID, 10))},
			{Key: "direction", Value: []byte(n.Direction)},
		},
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		k.logger.ErrorContext(ctx, err,
			logger.Field{Key: "error", Value: err.Error()},
			logger.Field{Key: "alertId", Value: n.AlertID},
		)
		return errors.Wrap(errors.NotifierPublishError, err, "publish alert to kafka")
	}
	return nil
}

// Close flushes and closes the writer.
func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
