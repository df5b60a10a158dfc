package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/suvrat007/tutora-sub001/api/swagger"
	"github.com/suvrat007/tutora-sub001/internal/handler"
	"github.com/suvrat007/tutora-sub001/internal/repository"
	"github.com/suvrat007/tutora-sub001/internal/service"
	"github.com/suvrat007/tutora-sub001/pkg/cache"
	"github.com/suvrat007/tutora-sub001/pkg/config"
	"github.com/suvrat007/tutora-sub001/pkg/database"
	"github.com/suvrat007/tutora-sub001/pkg/logger"
	"github.com/suvrat007/tutora-sub001/pkg/upstream"
)

// @title Tutora Attendance Console
// @version 1.0.0
// @description Session-scoped attendance console in front of the institute API
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close() //nolint:errcheck

	checks := map[string]handler.Pinger{
		"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}

	var db *sqlx.DB
	if cfg.Journal.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		checks["postgres"] = db.PingContext
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()
	clock := service.NewClock(cfg.Attendance.Timezone, cfg.Attendance.TimeLayout)

	api := upstream.New(upstream.Options{
		BaseURL:   cfg.Upstream.BaseURL,
		QRBaseURL: cfg.Upstream.QRBaseURL,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
		Logger:    logr.Named("upstream"),
		Observer:  metricsSvc,
	})

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	stateRepo := repository.NewStateRepository(cacheRepo, cfg.Console.StateTTL)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Console.SnapshotTTL, logr, cfg.Console.CacheEnabled)

	snapshotSvc := service.NewSnapshotService(api, cacheSvc, cfg.Console.SnapshotTTL, logr)
	consoleSvc := service.NewConsoleService(stateRepo, validate, logr)
	rosterSvc := service.NewRosterService(stateRepo, snapshotSvc, clock, metricsSvc, logr)
	attendanceSvc := service.NewAttendanceService(snapshotSvc, clock, validate, logr)
	qrSvc := service.NewQRService(stateRepo, snapshotSvc, api, logr)
	adminSvc := service.NewAdminService(api, consoleSvc, snapshotSvc, logr)
	exportSvc := service.NewExportService(snapshotSvc, cfg.Export.PDFTitle, logr, nil, nil)

	validDate := service.DefaultDateTimeValidator(time.Now, clock.Location())
	var (
		journalSvc    *service.JournalService
		submissionSvc *service.SubmissionService
	)
	if db != nil {
		submissionRepo := repository.NewSubmissionRepository(db)
		if err := submissionRepo.EnsureSchema(ctx); err != nil {
			logr.Fatal("failed to prepare submission journal", zap.Error(err))
		}
		journalSvc = service.NewJournalService(submissionRepo)
		submissionSvc = service.NewSubmissionService(stateRepo, snapshotSvc, api, rosterSvc, submissionRepo, validDate, metricsSvc, logr)
	} else {
		journalSvc = service.NewJournalService(nil)
		submissionSvc = service.NewSubmissionService(stateRepo, snapshotSvc, api, rosterSvc, nil, validDate, metricsSvc, logr)
	}

	r := newRouter(cfg, logr, metricsSvc, routeHandlers{
		console:     handler.NewConsoleHandler(consoleSvc, rosterSvc, submissionSvc, snapshotSvc, qrSvc),
		snapshots:   handler.NewSnapshotHandler(snapshotSvc),
		attendance:  handler.NewAttendanceHandler(attendanceSvc, exportSvc, cfg.Export.Enabled),
		admin:       handler.NewAdminHandler(adminSvc),
		submissions: handler.NewSubmissionHandler(journalSvc),
		metrics:     handler.NewMetricsHandler(metricsSvc, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
