package producer

import (
	"context"
	"encoding/json"
	"time"

	"go-hris-audit/internal/config"
	"go-hris-audit/internal/events"
	"go-hris-audit/internal/messaging/kafka"
	"go-hris-audit/internal/shared/apperror"
	"go-hris-audit/internal/shared/telemetry"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const PublishSpanName = "kafka.producer.publish"

var ErrPublishFailed = apperror.New(apperror.KindTransientInfra, apperror.CodeServiceUnavailable, "Event could not be published")

// Writer is the part of *kafkago.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publisher writes messages to the topology exchange, retrying failed writes
// with exponential backoff.
type Publisher struct {
	writer   Writer
	topology kafka.Topology
	policy   config.RetryPolicy
	logger   *zap.Logger

	tracer   trace.Tracer
	attempts metric.Int64Counter
	failures metric.Int64Counter

	now func() time.Time
}

func NewPublisher(
	writer Writer,
	topology kafka.Topology,
	policy config.RetryPolicy,
	logger *zap.Logger,
	opts ...telemetry.Option,
) (*Publisher, error) {
	if logger == nil {
		logger = zap.L()
	}

	cfg := telemetry.NewConfig(opts...)
	p := &Publisher{
		writer:   writer,
		topology: topology,
		policy:   policy.OrDefault(config.DefaultPublishRetry()),
		logger:   logger.Named("kafka.producer"),
		tracer:   cfg.Tracer(),
		now:      time.Now,
	}

	var err error
	meter := cfg.Meter()
	if p.attempts, err = meter.Int64Counter(
		"kafka.producer.publish.attempts",
		metric.WithDescription("Count of broker write attempts, retries included"),
	); err != nil {
		return nil, err
	}
	if p.failures, err = meter.Int64Counter(
		"kafka.producer.publish.failures",
		metric.WithDescription("Count of publishes that exhausted every attempt"),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Publish encodes payload as JSON and writes it keyed by key, so every event of
// one entity lands on the same partition. The message id stays the same across
// attempts so the consumer can drop duplicates.
func (p *Publisher) Publish(ctx context.Context, key string, eventType events.EventType, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return apperror.ErrInternal.WithCause(err)
	}

	msg := kafkago.Message{
		Topic: p.topology.Exchange,
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: events.HeaderEventType, Value: []byte(eventType)},
			{Key: events.HeaderRoutingKey, Value: []byte(p.topology.RoutingKey)},
			{Key: events.HeaderMessageID, Value: []byte(uuid.NewString())},
			{Key: events.HeaderCreatedAt, Value: []byte(p.now().UTC().Format(time.RFC3339Nano))},
		},
	}

	ctx, span := p.tracer.Start(ctx, PublishSpanName,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			telemetry.TopicAttribute.String(msg.Topic),
			telemetry.EventTypeAttribute.String(string(eventType)),
		),
	)
	defer span.End()

	log := p.logger.With(
		zap.String("topic", msg.Topic),
		zap.String("event_type", string(eventType)),
		zap.String("key", key),
	)

	attempt := 0
	write := func() error {
		attempt++
		p.attempts.Add(ctx, 1, metric.WithAttributes(telemetry.TopicAttribute.String(msg.Topic)))

		err := p.writer.WriteMessages(ctx, msg)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("publish attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(write, kafka.NewBackOff(ctx, p.policy), notify); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		p.failures.Add(ctx, 1, metric.WithAttributes(telemetry.TopicAttribute.String(msg.Topic)))
		log.Error("publish gave up", zap.Int("attempts", attempt), zap.Error(err))
		return ErrPublishFailed.WithCause(err)
	}

	span.SetAttributes(telemetry.AttemptAttribute.Int(attempt))
	log.Debug("event published", zap.Int("attempts", attempt))
	return nil
}
