package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"go-hris-audit/internal/events"
	"go-hris-audit/internal/messaging/kafka"
	"go-hris-audit/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	ConsumedKeyPrefix = "events:consumed:"
	DefaultDedupeTTL  = 24 * time.Hour
)

// Receiver turns employee event messages into stored events. Messages that
// can never be stored are logged and dropped; everything else is returned so
// the consumer retries it.
//
// The store rejects a second event with the same message id. Redis only
// remembers ids that are already stored, so a redelivery can skip the store.
type Receiver struct {
	service Service
	rdb     *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewReceiver checks and records stored message ids in rdb when it is non-nil.
func NewReceiver(service Service, rdb *redis.Client, logger ...*zap.Logger) *Receiver {
	l := zap.L().Named("eventlog.receiver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("eventlog.receiver")
	}
	return &Receiver{
		service: service,
		rdb:     rdb,
		ttl:     DefaultDedupeTTL,
		logger:  l,
	}
}

func (r *Receiver) Receive(ctx context.Context, msg kafkago.Message) error {
	messageID := kafka.Header(msg, events.HeaderMessageID)
	log := r.logger.With(
		zap.String("message_id", messageID),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	var body events.EmployeeEventMessage
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		log.Warn("dropping undecodable message", zap.Error(err))
		return nil
	}
	if err := body.Validate(); err != nil {
		log.Warn("dropping invalid employee event",
			zap.String("event_type", string(body.EventType)),
			zap.Error(err),
		)
		return nil
	}

	if r.stored(ctx, log, messageID) {
		log.Info("duplicate delivery skipped", zap.String("employee_id", body.Employee.ID))
		return nil
	}

	evt, err := r.service.Append(ctx, messageID, body.EventType, body.Employee)
	switch {
	case apperror.IsKind(err, apperror.KindConflict):
		log.Info("duplicate delivery already stored", zap.String("employee_id", body.Employee.ID))
		r.remember(ctx, log, messageID)
		return nil
	case permanent(err):
		log.Warn("dropping rejected employee event",
			zap.String("employee_id", body.Employee.ID),
			zap.Error(err),
		)
		return nil
	case err != nil:
		return err
	}

	r.remember(ctx, log, messageID)
	log.Info("employee event stored",
		zap.String("event_id", evt.ID.String()),
		zap.String("employee_id", evt.EmployeeID),
		zap.String("event_type", string(evt.EventType)),
	)
	return nil
}

// stored reports whether messageID is known to be stored. Redis errors are
// logged and treated as unknown; the store still rejects the duplicate.
func (r *Receiver) stored(ctx context.Context, log *zap.Logger, messageID string) bool {
	if r.rdb == nil || messageID == "" {
		return false
	}
	n, err := r.rdb.Exists(ctx, ConsumedKeyPrefix+messageID).Result()
	if err != nil {
		log.Warn("consumed marker lookup failed", zap.Error(err))
		return false
	}
	return n > 0
}

func (r *Receiver) remember(ctx context.Context, log *zap.Logger, messageID string) {
	if r.rdb == nil || messageID == "" {
		return
	}
	if err := r.rdb.Set(context.WithoutCancel(ctx), ConsumedKeyPrefix+messageID, 1, r.ttl).Err(); err != nil {
		log.Warn("failed to record consumed marker", zap.Error(err))
	}
}

func permanent(err error) bool {
	return apperror.IsKind(err, apperror.KindPermanentConsumer) ||
		apperror.IsKind(err, apperror.KindValidation)
}
