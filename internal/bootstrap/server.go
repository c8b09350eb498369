package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hris-audit/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Name         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func ServerConfigFrom(name string, cfg *config.Config) ServerConfig {
	return ServerConfig{
		Name:         name,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
}

// StartHTTPServer runs the server until SIGINT or SIGTERM, then shuts it down
// gracefully.
func StartHTTPServer(
	router *gin.Engine,
	cfg ServerConfig,
	auditLogger AuditLogger,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ServeHTTP(ctx, router, cfg, auditLogger)
}

// ServeHTTP runs the server until ctx is done. It returns nil after a clean
// shutdown and the listen error otherwise.
func ServeHTTP(
	ctx context.Context,
	router http.Handler,
	cfg ServerConfig,
	auditLogger AuditLogger,
) error {
	log := zap.L().Named("bootstrap.server").With(zap.String("service", cfg.Name))

	lis, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server running", zap.String("addr", lis.Addr().String()))
		serveErr <- server.Serve(lis)
	}()

	auditLogger.Log(ctx, AuditLog{
		Action:  ActionServerStart,
		Message: "Server is accepting connections",
		Meta:    map[string]any{"service": cfg.Name, "addr": lis.Addr().String()},
	})

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error("serve error", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received", zap.NamedError("cause", context.Cause(ctx)))

	// Audit log before shutdown
	auditLogger.Log(context.WithoutCancel(ctx), AuditLog{
		Action:  ActionServerShutdown,
		Message: "Server is shutting down",
		Meta:    map[string]any{"service": cfg.Name},
	})

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}
	log.Info("server exited gracefully")
	return nil
}
