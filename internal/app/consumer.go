package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hris-audit/internal/bootstrap"
	"go-hris-audit/internal/config"
	"go-hris-audit/internal/eventlog"
	"go-hris-audit/internal/messaging/kafka/consumer"
	"go-hris-audit/internal/shared/connection"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunConsumer runs the downstream service: the queue consumer pool feeding
// the event log, and the HTTP query surface on router. It blocks until
// SIGINT or SIGTERM.
func RunConsumer(router *gin.Engine, cfg *config.Config, auditLogger bootstrap.AuditLogger) error {
	logger := zap.L().Named("app.consumer")

	infra, err := connectInfra(cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	topology, err := declareTopology(cfg)
	if err != nil {
		return err
	}

	store, err := eventlog.NewInstrumentedService(
		eventlog.NewService(eventlog.NewRepository(infra.GormDB), zap.L()),
	)
	if err != nil {
		return err
	}
	receiver := eventlog.NewReceiver(store, infra.Redis, zap.L())

	// Dead-letter and error queue forwarding.
	writer := connection.NewKafkaWriter(cfg.Kafka.Brokers)
	defer writer.Close()

	processor := consumer.NewProcessor(
		topology,
		consumer.HandlerFunc(receiver.Receive),
		writer,
		cfg.Consumer.Retry,
		zap.L(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          topology.Exchange,
		GroupID:        topology.Queue,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
		MaxWait:        time.Second,
	})
	defer reader.Close()

	pool := consumer.NewPool(reader, processor.Process, consumer.PoolOptions{
		MinWorkers:  cfg.Consumer.MinConcurrency,
		MaxWorkers:  cfg.Consumer.MaxConcurrency,
		IdleTimeout: cfg.Consumer.IdleTimeout,
	}, zap.L())

	registerConsumerModules(router, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("consumer starting",
		zap.String("topic", topology.Exchange),
		zap.String("group", topology.Queue),
		zap.Int("min_workers", cfg.Consumer.MinConcurrency),
		zap.Int("max_workers", cfg.Consumer.MaxConcurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pool.Run(gctx)
	})
	g.Go(func() error {
		return bootstrap.ServeHTTP(gctx, router, bootstrap.ServerConfigFrom("consumer", cfg), auditLogger)
	})

	err = g.Wait()
	logger.Info("consumer stopped", zap.Int("peak_workers", pool.Peak()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
