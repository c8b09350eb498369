package app

import (
	"go-hris-audit/internal/department"
	"go-hris-audit/internal/employee"
	"go-hris-audit/internal/eventlog"
	"go-hris-audit/internal/revision"
	"go-hris-audit/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerAPIModules(
	router *gin.Engine,
	infra *Infra,
	publisher employee.EventPublisher,
) {
	logger := zap.L()

	// --- Repositories ---
	counterRepo := counter.NewRepository(infra.GormDB)
	revisionRepo := revision.NewRepository(infra.GormDB)
	departmentRepo := department.NewRepository(infra.GormDB)
	employeeRepo := employee.NewRepository(infra.GormDB)

	// --- Services ---
	revisionRecorder := revision.NewRecorder(revisionRepo, counterRepo, logger)
	departmentService := department.NewService(infra.SQLDB, departmentRepo, revisionRecorder, infra.Redis, logger)
	employeeService := employee.NewService(infra.SQLDB, employeeRepo, departmentRepo, revisionRecorder, publisher, logger)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, logger)
		employee.RegisterRoutes(api, employeeHandler, logger)
	}
}

func registerConsumerModules(router *gin.Engine, service eventlog.Service) {
	logger := zap.L()

	eventHandler := eventlog.NewHandler(service, logger)

	api := router.Group("/api/v1")
	{
		eventlog.RegisterRoutes(api, eventHandler, logger)
	}
}
