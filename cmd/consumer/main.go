package main

import (
	"go-hris-audit/internal/app"
	"go-hris-audit/internal/bootstrap"
	"go-hris-audit/internal/config"
	"go-hris-audit/internal/middleware"
	"go-hris-audit/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))

	if err := app.RunConsumer(r, cfg, bootstrap.NewStdoutAuditLogger(logger)); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
