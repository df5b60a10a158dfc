package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/suvrat007/tutora-sub001/internal/handler"
	"github.com/suvrat007/tutora-sub001/internal/middleware"
	"github.com/suvrat007/tutora-sub001/internal/service"
	"github.com/suvrat007/tutora-sub001/pkg/config"
	"github.com/suvrat007/tutora-sub001/pkg/logger"
	corsmiddleware "github.com/suvrat007/tutora-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/suvrat007/tutora-sub001/pkg/middleware/requestid"
)

type routeHandlers struct {
	console     *handler.ConsoleHandler
	snapshots   *handler.SnapshotHandler
	attendance  *handler.AttendanceHandler
	admin       *handler.AdminHandler
	submissions *handler.SubmissionHandler
	metrics     *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metricsSvc *service.MetricsService, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(middleware.Session(cfg.Console.SessionHeader, cfg.Upstream.CookieName))
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins, cfg.Console.SessionHeader))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	console := api.Group("/console")
	console.GET("/state", h.console.State)
	console.PUT("/selection", h.console.Select)
	console.POST("/present/:studentId", h.console.TogglePresent)
	console.DELETE("/present", h.console.ClearPresent)
	console.POST("/roster", h.console.FetchRoster)
	console.POST("/submit", h.console.Submit)
	console.POST("/refresh", h.console.Refresh)
	console.POST("/qr", h.console.QRCode)

	api.GET("/batches", h.snapshots.Batches)
	api.GET("/students", h.snapshots.Students)
	api.GET("/class-logs", h.snapshots.ClassLogs)

	api.GET("/classes/total", h.attendance.TotalClasses)
	api.GET("/attendance/present", h.attendance.AlreadyPresent)
	api.GET("/attendance/summary", h.attendance.Summary)
	api.GET("/attendance/summary/export", h.attendance.ExportSummary)

	api.GET("/submissions", h.submissions.List)

	api.GET("/admin", h.admin.Profile)
	api.POST("/logout", h.admin.Logout)

	return r
}
