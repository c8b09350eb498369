package kafka_test

import (
	"errors"
	"testing"
	"time"

	"go-hris-audit/internal/events"
	"go-hris-audit/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	topics []kafkago.TopicConfig
	err    error
}

func (f *fakeCreator) CreateTopics(topics ...kafkago.TopicConfig) error {
	f.topics = append(f.topics, topics...)
	return f.err
}

func TestNewTopology(t *testing.T) {
	topo := kafka.NewTopology("hr.employee.events", "hr.employee.events.audit", "employee", time.Minute)

	assert.Equal(t, "hr.employee.events", topo.Exchange)
	assert.Equal(t, "hr.employee.events.audit.deadLetter", topo.DeadLetter)
	assert.Equal(t, "hr.employee.events.audit.error", topo.Error)
	assert.NoError(t, topo.Validate())
}

func TestTopology_Declare(t *testing.T) {
	topo := kafka.NewTopology("ex", "q", "rk", time.Minute)

	t.Run("creates the three topics", func(t *testing.T) {
		creator := &fakeCreator{}

		require.NoError(t, topo.Declare(creator, 3, 1))

		require.Len(t, creator.topics, 3)
		assert.Equal(t, "ex", creator.topics[0].Topic)
		assert.Equal(t, 3, creator.topics[0].NumPartitions)
		assert.Equal(t, "120000", creator.topics[0].ConfigEntries[0].ConfigValue)
		assert.Equal(t, "q.deadLetter", creator.topics[1].Topic)
		assert.Equal(t, "q.error", creator.topics[2].Topic)
	})

	t.Run("already existing topics are fine", func(t *testing.T) {
		assert.NoError(t, topo.Declare(&fakeCreator{err: kafkago.TopicAlreadyExists}, 1, 1))
	})

	t.Run("other errors surface", func(t *testing.T) {
		assert.Error(t, topo.Declare(&fakeCreator{err: errors.New("not controller")}, 1, 1))
	})

	t.Run("invalid topology", func(t *testing.T) {
		assert.Error(t, kafka.Topology{}.Declare(&fakeCreator{}, 1, 1))
	})
}

func TestTopology_Expired(t *testing.T) {
	topo := kafka.NewTopology("ex", "q", "rk", time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	fresh := kafkago.Message{Headers: []kafkago.Header{{
		Key: events.HeaderCreatedAt, Value: []byte(now.Add(-30 * time.Second).Format(time.RFC3339Nano)),
	}}}
	stale := kafkago.Message{Headers: []kafkago.Header{{
		Key: events.HeaderCreatedAt, Value: []byte(now.Add(-2 * time.Minute).Format(time.RFC3339Nano)),
	}}}

	assert.False(t, topo.Expired(fresh, now))
	assert.True(t, topo.Expired(stale, now))
	assert.True(t, topo.Expired(kafkago.Message{Time: now.Add(-time.Hour)}, now), "falls back to broker time")
	assert.False(t, topo.Expired(kafkago.Message{}, now), "no timestamp never expires")
	assert.False(t, kafka.NewTopology("ex", "q", "rk", 0).Expired(stale, now), "zero ttl disables expiry")
}

func TestTopology_Binds(t *testing.T) {
	topo := kafka.NewTopology("ex", "q", "employee", 0)

	assert.True(t, topo.Binds(kafkago.Message{Headers: []kafkago.Header{{Key: events.HeaderRoutingKey, Value: []byte("employee")}}}))
	assert.False(t, topo.Binds(kafkago.Message{Headers: []kafkago.Header{{Key: events.HeaderRoutingKey, Value: []byte("payroll")}}}))
	assert.True(t, topo.Binds(kafkago.Message{}))
}
