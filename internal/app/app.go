package app

import (
	"database/sql"

	"go-hris-audit/internal/config"
	"go-hris-audit/internal/employee"
	"go-hris-audit/internal/messaging/kafka"
	"go-hris-audit/internal/messaging/kafka/producer"
	"go-hris-audit/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the connections shared by a service's modules.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

func connectInfra(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(connection.DatabaseOptions{
		Host:     cfg.DB.Host,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Name:     cfg.DB.Name,
		Port:     cfg.DB.Port,
		SSLMode:  cfg.DB.SSLMode,
	}, cfg.DB.MaxRetries)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}

	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, running without cache and dedupe")
		return infra, nil
	}

	infra.Redis, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
	if err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}

// declareTopology creates the exchange, dead-letter and error topics if they
// are missing.
func declareTopology(cfg *config.Config) (kafka.Topology, error) {
	topology := kafka.NewTopology(cfg.Kafka.Exchange, cfg.Kafka.Queue, cfg.Kafka.RoutingKey, cfg.Kafka.MessageTTL)

	conn, err := connection.ConnectKafkaControllerWithRetry(cfg.Kafka.Brokers, cfg.Kafka.MaxRetries)
	if err != nil {
		return kafka.Topology{}, err
	}
	defer conn.Close()

	if err := topology.Declare(conn, cfg.Kafka.Partitions, cfg.Kafka.Replication); err != nil {
		return kafka.Topology{}, err
	}
	return topology, nil
}

// BuildApp wires the owning service onto router. The returned func releases
// every connection it opened.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app.api")

	infra, err := connectInfra(cfg, logger)
	if err != nil {
		return nil, err
	}

	topology, err := declareTopology(cfg)
	if err != nil {
		infra.Close()
		return nil, err
	}

	writer := connection.NewKafkaWriter(cfg.Kafka.Brokers)
	publisher, err := producer.NewPublisher(writer, topology, cfg.Publish, zap.L())
	if err != nil {
		_ = writer.Close()
		infra.Close()
		return nil, err
	}

	registerAPIModules(router, infra, employee.NewBrokerEventPublisher(publisher))
	logger.Info("api modules registered",
		zap.String("exchange", topology.Exchange),
		zap.String("routing_key", topology.RoutingKey),
	)

	return func() {
		if err := writer.Close(); err != nil {
			logger.Warn("kafka writer close failed", zap.Error(err))
		}
		infra.Close()
	}, nil
}
