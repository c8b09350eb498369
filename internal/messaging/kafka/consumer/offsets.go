package consumer

import (
	"context"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type topicPartition struct {
	topic     string
	partition int
}

type partitionOffsets struct {
	pending []int64 // fetched and not yet committed, in fetch order
	settled map[int64]bool
}

// offsetTracker commits, per partition, the longest run of settled messages
// that starts at the oldest uncommitted fetch. A message that never settles
// holds back every later offset of its partition.
type offsetTracker struct {
	reader Reader
	logger *zap.Logger

	mu         sync.Mutex
	partitions map[topicPartition]*partitionOffsets
}

func newOffsetTracker(reader Reader, logger *zap.Logger) *offsetTracker {
	return &offsetTracker{
		reader:     reader,
		logger:     logger,
		partitions: make(map[topicPartition]*partitionOffsets),
	}
}

// track must be called in fetch order, before msg is handed to a worker.
func (t *offsetTracker) track(msg kafkago.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := topicPartition{topic: msg.Topic, partition: msg.Partition}
	po := t.partitions[key]
	if po == nil || (len(po.pending) > 0 && msg.Offset <= po.pending[len(po.pending)-1]) {
		// The reader rewound, e.g. after a rebalance; restart from msg.
		po = &partitionOffsets{settled: make(map[int64]bool)}
		t.partitions[key] = po
	}
	po.pending = append(po.pending, msg.Offset)
}

// settle marks msg done and commits the settled prefix of its partition, if
// any. Commits run under the lock so a partition's offset never moves back.
func (t *offsetTracker) settle(ctx context.Context, msg kafkago.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	po := t.partitions[topicPartition{topic: msg.Topic, partition: msg.Partition}]
	if po == nil {
		return
	}
	po.settled[msg.Offset] = true

	n := 0
	for n < len(po.pending) && po.settled[po.pending[n]] {
		delete(po.settled, po.pending[n])
		n++
	}
	if n == 0 {
		return
	}
	last := po.pending[n-1]
	po.pending = po.pending[n:]

	commit := kafkago.Message{Topic: msg.Topic, Partition: msg.Partition, Offset: last}
	if err := t.reader.CommitMessages(ctx, commit); err != nil && ctx.Err() == nil {
		// The next commit on this partition covers these offsets.
		t.logger.Error("commit offsets failed",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", last),
			zap.Error(err),
		)
	}
}
