package tradepublisher

import (
	"context"

	tradepublisherv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/trade-publisher/v1"
	"github.com/abhatnagar21/HFT-Simulator/pkg/config"
	"github.com/abhatnagar21/HFT-Simulator/pkg/errors"
	"github.com/abhatnagar21/HFT-Simulator/pkg/logger"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

// Publisher exports the trade feed to a Kafka topic. The feed is
// append-only; each event carries a ulid so consumers can dedupe replays.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher creates a new Kafka publisher for trade events.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrade publishes one trade event. An empty EventID is assigned here.
func (p *Publisher) PublishTrade(ctx context.Context, event *tradepublisherv1.TradeEvent) error {
	if event.EventID == "" {
		event.EventID = ulid.Make().String()
	}

	msg := kafka.Message{
		Key:   []byte(event.Symbol),
		Value: tradepublisherv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "eventID", Value: event.EventID},
			logger.Field{Key: "sequence", Value: event.Sequence},
		)
		return errors.NewTracer(string(errors.TradePublishError)).Wrap(err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
