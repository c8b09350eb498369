package consumer

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reader is the part of *kafkago.Reader the pool needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type ProcessFunc func(ctx context.Context, msg kafkago.Message) error

type PoolOptions struct {
	MinWorkers  int
	MaxWorkers  int
	IdleTimeout time.Duration
	// RedeliveryDelay is the first pause before an unsettled message is
	// processed again. Later pauses double up to MaxRedeliveryDelay.
	RedeliveryDelay time.Duration
}

const MaxRedeliveryDelay = 30 * time.Second

// Pool fans messages from one reader out to an elastic set of workers. MinWorkers
// always run. When every worker is busy another is started, up to MaxWorkers,
// and workers above the minimum stop after IdleTimeout without work.
//
// A partition's offset only advances past messages that have settled. A
// message that fails is processed again by the same worker until it settles
// or ctx ends, and later offsets of its partition stay uncommitted meanwhile.
type Pool struct {
	reader  Reader
	process ProcessFunc
	opts    PoolOptions
	logger  *zap.Logger
	offsets *offsetTracker

	running atomic.Int32
	peak    atomic.Int32
}

func NewPool(reader Reader, process ProcessFunc, opts PoolOptions, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.L()
	}
	if opts.MinWorkers < 1 {
		opts.MinWorkers = 1
	}
	if opts.MaxWorkers < opts.MinWorkers {
		opts.MaxWorkers = opts.MinWorkers
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 30 * time.Second
	}
	if opts.RedeliveryDelay <= 0 {
		opts.RedeliveryDelay = time.Second
	}
	logger = logger.Named("kafka.consumer.pool")
	return &Pool{
		reader:  reader,
		process: process,
		opts:    opts,
		logger:  logger,
		offsets: newOffsetTracker(reader, logger),
	}
}

// Running is the current number of workers.
func (p *Pool) Running() int { return int(p.running.Load()) }

// Peak is the highest number of workers seen since Run started.
func (p *Pool) Peak() int { return int(p.peak.Load()) }

// Run blocks until ctx is cancelled or the reader is closed.
func (p *Pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan kafkago.Message)

	for i := 0; i < p.opts.MinWorkers; i++ {
		p.spawn(g, gctx, jobs, false)
	}

	g.Go(func() error {
		defer close(jobs)
		return p.dispatch(gctx, g, jobs)
	})

	p.logger.Info("consumer pool started",
		zap.Int("min_workers", p.opts.MinWorkers),
		zap.Int("max_workers", p.opts.MaxWorkers),
	)

	err := g.Wait()
	p.logger.Info("consumer pool stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *Pool) dispatch(ctx context.Context, g *errgroup.Group, jobs chan kafkago.Message) error {
	for {
		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			p.logger.Error("fetch message failed", zap.Error(err))
			continue
		}
		p.offsets.track(msg)

		select {
		case jobs <- msg:
			continue
		default:
		}

		// Only the dispatcher spawns, so this check cannot overshoot.
		if p.Running() < p.opts.MaxWorkers {
			p.spawn(g, ctx, jobs, true)
		}

		select {
		case jobs <- msg:
		case <-ctx.Done():
			return nil
		}
	}
}

func (p *Pool) spawn(g *errgroup.Group, ctx context.Context, jobs <-chan kafkago.Message, elastic bool) {
	n := p.running.Add(1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	if elastic {
		p.logger.Debug("worker started", zap.Int32("running", n))
	}

	g.Go(func() error {
		defer p.running.Add(-1)
		p.work(ctx, jobs, elastic)
		return nil
	})
}

func (p *Pool) work(ctx context.Context, jobs <-chan kafkago.Message, elastic bool) {
	var idle *time.Timer
	var idleC <-chan time.Time
	if elastic {
		idle = time.NewTimer(p.opts.IdleTimeout)
		defer idle.Stop()
		idleC = idle.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-idleC:
			p.logger.Debug("idle worker retired", zap.Int("running", p.Running()-1))
			return
		case msg, ok := <-jobs:
			if !ok {
				return
			}
			p.handle(ctx, msg)
			if idle != nil {
				if !idle.Stop() {
					select {
					case <-idle.C:
					default:
					}
				}
				idle.Reset(p.opts.IdleTimeout)
			}
		}
	}
}

func (p *Pool) handle(ctx context.Context, msg kafkago.Message) {
	err := backoff.RetryNotify(
		func() error { return p.process(ctx, msg) },
		p.redelivery(ctx),
		func(err error, wait time.Duration) {
			p.logger.Error("message not settled, processing again",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Duration("retry_in", wait),
				zap.Error(err),
			)
		},
	)
	if err != nil {
		// Only a cancelled ctx ends the loop; the message stays uncommitted.
		return
	}

	p.offsets.settle(ctx, msg)
}

func (p *Pool) redelivery(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.opts.RedeliveryDelay
	b.MaxInterval = MaxRedeliveryDelay
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(b, ctx)
}
