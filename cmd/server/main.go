package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/rbsgo/taskhub/api/handler"
	"github.com/rbsgo/taskhub/internal/config"
	"github.com/rbsgo/taskhub/internal/infrastructure/audit"
	"github.com/rbsgo/taskhub/internal/infrastructure/monitor"
	pgInfra "github.com/rbsgo/taskhub/internal/infrastructure/postgres"
	redisInfra "github.com/rbsgo/taskhub/internal/infrastructure/redis"
	"github.com/rbsgo/taskhub/internal/infrastructure/sheets"
	"github.com/rbsgo/taskhub/internal/middleware"
	"github.com/rbsgo/taskhub/internal/router"
	svcLifecycle "github.com/rbsgo/taskhub/internal/services/lifecycle"
	"github.com/rbsgo/taskhub/internal/services/sheetsync"
	"github.com/rbsgo/taskhub/pkg/httpcontext"
	"github.com/rbsgo/taskhub/pkg/logger"
	"github.com/rbsgo/taskhub/repository/postgres"
	redisRepo "github.com/rbsgo/taskhub/repository/redis"
	assistantUC "github.com/rbsgo/taskhub/usecase/assistant"
	directoryUC "github.com/rbsgo/taskhub/usecase/directory"
	lifecycleUC "github.com/rbsgo/taskhub/usecase/lifecycle"
	parserUC "github.com/rbsgo/taskhub/usecase/parser"
	picklistUC "github.com/rbsgo/taskhub/usecase/picklist"
	viewUC "github.com/rbsgo/taskhub/usecase/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := svcLifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	auditStore, err := audit.Open(cfg.Audit.Path, "sync_reports")
	if err != nil {
		zapLogger.Fatal("failed to open audit store", zap.Error(err))
	}
	manager.Register("audit", func(ctx context.Context) error {
		return auditStore.Close()
	})
	if err := auditStore.Cleanup(time.Now().Add(-cfg.Audit.Retention)); err != nil {
		zapLogger.Warn("audit store cleanup failed", zap.Error(err))
	}

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	picklistCache := redisRepo.NewPicklistCache(redisClient, cfg.Picklist.TTL)

	directoryUseCase := directoryUC.New(userRepo, zapLogger)
	picklistUseCase := picklistUC.New(taskRepo, projectRepo, picklistCache, zapLogger)
	lifecycleUseCase := lifecycleUC.New(taskRepo, directoryUseCase, picklistUseCase, zapLogger)
	parserUseCase := parserUC.New(directoryUseCase, zapLogger)
	viewUseCase := viewUC.New(taskRepo, directoryUseCase, zapLogger)
	assistantUseCase := assistantUC.New(assistantUC.Config{
		BaseURL: cfg.Assistant.BaseURL,
		APIKey:  cfg.Assistant.APIKey,
		Model:   cfg.Assistant.Model,
		Timeout: cfg.Assistant.Timeout,
	}, zapLogger)

	var syncer *sheetsync.Syncer
	if cfg.Sheet.SpreadsheetID != "" {
		source, err := sheets.NewSource(appCtx, cfg.Sheet.CredentialsFile, cfg.Sheet.SpreadsheetID, cfg.Sheet.Worksheet)
		if err != nil {
			zapLogger.Fatal("sheets client failed", zap.Error(err))
		}
		syncer = sheetsync.New(source, projectRepo, auditStore, picklistUseCase, zapLogger, sheetsync.Config{
			Interval: cfg.Sheet.SyncInterval,
			Timeout:  cfg.Sheet.SyncTimeout,
		})
		syncer.Start()
		manager.Register("sheet_sync", func(ctx context.Context) error {
			syncer.Stop(ctx)
			return nil
		})
	} else {
		zapLogger.Warn("sheet sync disabled: SHEET_SPREADSHEET_ID not set")
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:      apiHandler.NewTaskHandler(lifecycleUseCase, parserUseCase, viewUseCase, directoryUseCase, ctxAdapter, zapLogger),
		Picklist:  apiHandler.NewPicklistHandler(picklistUseCase, directoryUseCase, ctxAdapter, zapLogger),
		User:      apiHandler.NewUserHandler(directoryUseCase, ctxAdapter, zapLogger),
		Sync:      apiHandler.NewSyncHandler(syncer, auditStore, directoryUseCase, ctxAdapter, zapLogger),
		Assistant: apiHandler.NewAssistantHandler(assistantUseCase, viewUseCase, directoryUseCase, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
