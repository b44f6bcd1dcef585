package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"memory_mapping/internal/config"
	"memory_mapping/internal/domain"
	"memory_mapping/internal/model"
	"memory_mapping/internal/queue"
	"memory_mapping/internal/service/memories"
)

type noopConsumer struct{}

func (n *noopConsumer) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

type Consumer struct {
	url         string
	svc         *memories.Service
	logger      *zap.Logger
	exchange    string
	queue       string
	routingKey  string
	consumerTag string
}

func NewConsumer(cfg *config.Config, svc *memories.Service, logger *zap.Logger) queue.Consumer {
	if cfg.RabbitMQURL == "" {
		return &noopConsumer{}
	}
	return &Consumer{
		url:         cfg.RabbitMQURL,
		svc:         svc,
		logger:      logger,
		exchange:    cfg.RabbitExchange,
		queue:       cfg.RabbitQueue,
		routingKey:  cfg.RabbitRoutingKey,
		consumerTag: cfg.RabbitConsumerTag,
	}
}

func (r *Consumer) Start(ctx context.Context) error {
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.consume_loop")
	span.SetAttributes(r.attributes(r.routingKey)...)
	defer span.End()

	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fail(span, "dial", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fail(span, "channel", err)
	}
	defer func() { _ = ch.Close() }()

	queueName, err := r.declare(ch)
	if err != nil {
		return fail(span, "declare", err)
	}

	deliveries, err := ch.Consume(queueName, r.consumerTag, false, false, false, false, nil)
	if err != nil {
		return fail(span, "consume", err)
	}

	r.logger.Info("memory ingest consumer started",
		zap.String("exchange", r.exchange),
		zap.String("queue", queueName),
		zap.String("routing_key", r.routingKey),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return fail(span, "deliveries", errors.New("channel closed"))
			}
			if err := r.handleMessage(ctx, msg); err != nil {
				span.RecordError(err)
				return err
			}
		}
	}
}

// declare sets up the durable topic exchange and the ingest queue bound to it.
func (r *Consumer) declare(ch *amqp.Channel) (string, error) {
	if err := ch.Qos(10, 0, false); err != nil {
		return "", fmt.Errorf("qos: %w", err)
	}
	if err := ch.ExchangeDeclare(r.exchange, "topic", true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("exchange %s: %w", r.exchange, err)
	}
	q, err := ch.QueueDeclare(r.queue, true, false, false, false, nil)
	if err != nil {
		return "", fmt.Errorf("queue %s: %w", r.queue, err)
	}
	if err := ch.QueueBind(q.Name, r.routingKey, r.exchange, false, nil); err != nil {
		return "", fmt.Errorf("bind %s to %s: %w", q.Name, r.exchange, err)
	}
	return q.Name, nil
}

func (r *Consumer) attributes(routingKey string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("messaging.system", "rabbitmq"),
		attribute.String("messaging.destination", r.exchange),
		attribute.String("messaging.destination_kind", "exchange"),
		attribute.String("messaging.rabbitmq.routing_key", routingKey),
	}
}

func fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	return fmt.Errorf("rabbitmq %s: %w", op, err)
}

func (r *Consumer) handleMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx = otel.GetTextMapPropagator().Extract(ctx, amqpHeaderCarrier(msg.Headers))
	ctx, span := otel.Tracer("rabbitmq").Start(ctx, "rabbitmq.handle_message")
	span.SetAttributes(r.attributes(msg.RoutingKey)...)
	defer span.End()

	var m queue.MemoryMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid json")
		r.logger.Error("rabbitmq invalid json", zap.Error(err))
		return msg.Ack(false)
	}

	memory := model.Memory{
		MemoryID:    m.MemoryID,
		Description: m.Description,
		Price:       m.Price,
		Owner:       m.Owner,
	}

	addCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	created, err := r.svc.Add(addCtx, memory)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrInvalidInput) {
			span.SetStatus(codes.Error, "invalid memory")
			r.logger.Warn("rabbitmq invalid memory",
				zap.String("memory_id", m.MemoryID),
				zap.String("owner", m.Owner),
				zap.Error(err),
			)
			return msg.Ack(false)
		}
		span.SetStatus(codes.Error, "add memory failed")
		r.logger.Error("rabbitmq add memory failed", zap.Error(err))
		if nackErr := msg.Nack(false, true); nackErr != nil {
			r.logger.Error("rabbitmq nack failed", zap.Error(nackErr))
		}
		return nil
	}

	span.SetAttributes(attribute.Int64("memory.sequence", created.Sequence))
	return msg.Ack(false)
}
