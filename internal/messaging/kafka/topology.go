package kafka

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-hris-audit/internal/events"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	DeadLetterSuffix = ".deadLetter"
	ErrorSuffix      = ".error"
)

// Topology names the broker objects of the employee event pipeline.
//
// Exchange is the topic producers write to. Queue is the consumer group that
// reads it, bound by RoutingKey. Expired messages go to DeadLetter and
// messages that exhaust consumer retries go to Error.
type Topology struct {
	Exchange   string
	Queue      string
	DeadLetter string
	Error      string
	RoutingKey string
	MessageTTL time.Duration
}

func NewTopology(exchange, queue, routingKey string, ttl time.Duration) Topology {
	return Topology{
		Exchange:   exchange,
		Queue:      queue,
		DeadLetter: queue + DeadLetterSuffix,
		Error:      queue + ErrorSuffix,
		RoutingKey: routingKey,
		MessageTTL: ttl,
	}
}

func (t Topology) Validate() error {
	if t.Exchange == "" || t.Queue == "" {
		return errors.New("topology requires exchange and queue names")
	}
	if t.RoutingKey == "" {
		return errors.New("topology requires a routing key")
	}
	return nil
}

// TopicCreator is satisfied by *kafkago.Conn connected to the controller.
type TopicCreator interface {
	CreateTopics(topics ...kafkago.TopicConfig) error
}

func (t Topology) TopicConfigs(partitions, replication int) []kafkago.TopicConfig {
	if partitions < 1 {
		partitions = 1
	}
	if replication < 1 {
		replication = 1
	}

	primary := kafkago.TopicConfig{
		Topic:             t.Exchange,
		NumPartitions:     partitions,
		ReplicationFactor: replication,
	}
	if t.MessageTTL > 0 {
		// The broker drops what the consumer never reached; the consumer
		// dead-letters what it reaches too late.
		primary.ConfigEntries = []kafkago.ConfigEntry{{
			ConfigName:  "retention.ms",
			ConfigValue: strconv.FormatInt(t.MessageTTL.Milliseconds()*2, 10),
		}}
	}

	return []kafkago.TopicConfig{
		primary,
		{Topic: t.DeadLetter, NumPartitions: 1, ReplicationFactor: replication},
		{Topic: t.Error, NumPartitions: 1, ReplicationFactor: replication},
	}
}

// Declare creates the topics. Topics that already exist are left untouched.
func (t Topology) Declare(creator TopicCreator, partitions, replication int) error {
	if err := t.Validate(); err != nil {
		return err
	}
	err := creator.CreateTopics(t.TopicConfigs(partitions, replication)...)
	if err != nil && !errors.Is(err, kafkago.TopicAlreadyExists) {
		return fmt.Errorf("declare topology: %w", err)
	}
	return nil
}

// Binds reports whether msg was published with this topology's routing key.
// Messages without the header predate routing and are accepted.
func (t Topology) Binds(msg kafkago.Message) bool {
	key, ok := LookupHeader(msg, events.HeaderRoutingKey)
	return !ok || key == t.RoutingKey
}

// Expired reports whether msg outlived the TTL at now.
func (t Topology) Expired(msg kafkago.Message, now time.Time) bool {
	if t.MessageTTL <= 0 {
		return false
	}
	created := msg.Time
	if raw, ok := LookupHeader(msg, events.HeaderCreatedAt); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			created = ts
		}
	}
	if created.IsZero() {
		return false
	}
	return now.Sub(created) > t.MessageTTL
}

func LookupHeader(msg kafkago.Message, key string) (string, bool) {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}

func Header(msg kafkago.Message, key string) string {
	v, _ := LookupHeader(msg, key)
	return v
}
