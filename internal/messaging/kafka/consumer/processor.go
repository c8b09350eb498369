package consumer

import (
	"context"
	"errors"
	"time"

	"go-hris-audit/internal/config"
	"go-hris-audit/internal/events"
	"go-hris-audit/internal/messaging/kafka"
	"go-hris-audit/internal/messaging/kafka/producer"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Headers added when a message leaves the primary topic.
const (
	HeaderDeathReason      = "x-death-reason"
	HeaderExceptionMessage = "x-exception-message"
	HeaderOriginalTopic    = "x-original-topic"

	DeathReasonExpired = "expired"
)

// Handler processes one message. A returned error is retried.
type Handler interface {
	Handle(ctx context.Context, msg kafkago.Message) error
}

type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg kafkago.Message) error {
	return f(ctx, msg)
}

// Processor applies the topology to every fetched message before and after
// the handler runs: binding, expiry, retry and the error-queue recoverer.
// A nil result means the message is settled and may be committed.
type Processor struct {
	topology kafka.Topology
	handler  Handler
	writer   producer.Writer
	policy   config.RetryPolicy
	logger   *zap.Logger
	now      func() time.Time
}

func NewProcessor(
	topology kafka.Topology,
	handler Handler,
	writer producer.Writer,
	policy config.RetryPolicy,
	logger *zap.Logger,
) *Processor {
	if logger == nil {
		logger = zap.L()
	}
	return &Processor{
		topology: topology,
		handler:  handler,
		writer:   writer,
		policy:   policy.OrDefault(config.DefaultConsumerRetry()),
		logger:   logger.Named("kafka.consumer.processor"),
		now:      time.Now,
	}
}

func (p *Processor) Process(ctx context.Context, msg kafkago.Message) error {
	log := p.logger.With(
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
		zap.String("message_id", kafka.Header(msg, events.HeaderMessageID)),
	)

	if !p.topology.Binds(msg) {
		log.Debug("routing key not bound to queue, skipping",
			zap.String("routing_key", kafka.Header(msg, events.HeaderRoutingKey)),
		)
		return nil
	}

	if p.topology.Expired(msg, p.now()) {
		log.Warn("message expired, forwarding to dead letter", zap.String("dead_letter", p.topology.DeadLetter))
		return p.forward(ctx, msg, p.topology.DeadLetter,
			kafkago.Header{Key: HeaderDeathReason, Value: []byte(DeathReasonExpired)},
		)
	}

	attempt := 0
	handle := func() error {
		attempt++
		err := p.handler.Handle(ctx, msg)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warn("handle failed, retrying", zap.Int("attempt", attempt), zap.Duration("retry_in", wait), zap.Error(err))
	}

	err := backoff.RetryNotify(handle, kafka.NewBackOff(ctx, p.policy), notify)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		// Shutting down; leave the message uncommitted for redelivery.
		return errors.Join(ctx.Err(), err)
	}

	log.Error("retries exhausted, forwarding to error queue",
		zap.Int("attempts", attempt),
		zap.String("error_queue", p.topology.Error),
		zap.Error(err),
	)
	return p.forward(ctx, msg, p.topology.Error,
		kafkago.Header{Key: HeaderExceptionMessage, Value: []byte(err.Error())},
	)
}

func (p *Processor) forward(ctx context.Context, msg kafkago.Message, topic string, extra ...kafkago.Header) error {
	headers := make([]kafkago.Header, 0, len(msg.Headers)+len(extra)+1)
	headers = append(headers, msg.Headers...)
	headers = append(headers, kafkago.Header{Key: HeaderOriginalTopic, Value: []byte(msg.Topic)})
	headers = append(headers, extra...)

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic:   topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
	})
}
