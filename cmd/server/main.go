package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/company-api/internal/adapters/repository/postgres"
	"github.com/ogurasousui/company-api/internal/core/employee"
	"github.com/ogurasousui/company-api/internal/platform/config"
	pg "github.com/ogurasousui/company-api/internal/platform/db/postgres"
	"github.com/ogurasousui/company-api/internal/platform/logger"
	"github.com/ogurasousui/company-api/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.ErrorLog(ctx, "server stopped with error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadEnvFile(); err != nil {
		return err
	}

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return err
	}

	if err := logger.InitLogging(cfg.Log.FilePath, cfg.Log.Level); err != nil {
		return err
	}
	defer logger.Close()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	var repo employee.Repository
	switch cfg.Database.WriteMode {
	case config.WriteModeProcedure:
		repo = postgres.NewProcedureEmployeeRepository(dbPool, txManager)
	default:
		repo = postgres.NewEmployeeRepository(dbPool)
	}
	logger.InfoLog(ctx, "employee writes use %s mode", cfg.Database.WriteMode)

	employeeSvc := employee.NewService(repo, txManager)
	httpServer := server.New(cfg.Server, employeeSvc)

	return httpServer.Run(ctx)
}
