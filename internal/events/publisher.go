package events

import (
	"context"
	"encoding/json"
	"strconv"

	"warungpos/internal/config"
	"warungpos/internal/observability"
	"warungpos/internal/order"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Producer is the write side of a Kafka topic.
type Producer interface {
	WriteMessage(ctx context.Context, msg kafkago.Message) error
	Close() error
}

// NewKafkaProducer builds a traced writer for the sales topic.
func NewKafkaProducer(cfg *config.Config, tp trace.TracerProvider) (Producer, error) {
	baseWriter := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBroker),
		Topic:                  cfg.KafkaSalesTopic,
		Balancer:               &kafkago.LeastBytes{},
		BatchTimeout:           config.KafkaBatchTimeout,
		BatchSize:              config.KafkaBatchSize,
		AllowAutoTopicCreation: true,
	}

	writer, err := otelkafka.NewWriter(baseWriter,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(cfg.KafkaSalesTopic),
				attribute.String("messaging.kafka.client_id", config.ServiceName),
			},
		),
	)
	if err != nil {
		return nil, err
	}
	return writer, nil
}

// Publisher sends OrderCompleted events. A Publisher without a producer
// drops every event, which is how the till runs when no broker is set.
type Publisher struct {
	producer Producer
	logger   observability.Logger
}

func NewPublisher(producer Producer, logger observability.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

func (p *Publisher) Enabled() bool { return p.producer != nil }

// PublishOrderCompleted writes the event for a completed order, keyed by
// order id.
func (p *Publisher) PublishOrderCompleted(ctx context.Context, o *order.Order) error {
	if p.producer == nil {
		return nil
	}

	event := NewOrderCompletedEvent(o)
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize OrderCompleted event",
			zap.Error(err),
			zap.Int("order_id", event.OrderID),
		)
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(strconv.Itoa(event.OrderID)),
		Value: payload,
	}

	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		p.logger.Error("Failed to publish OrderCompleted event",
			zap.Error(err),
			zap.Int("order_id", event.OrderID),
		)
		return err
	}

	p.logger.Info("Sent OrderCompleted event", zap.Int("order_id", event.OrderID))
	return nil
}

func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
