package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/backend/internal/api/handlers"
	"github.com/stockroomhq/stockroom/backend/internal/api/middleware"
	"github.com/stockroomhq/stockroom/backend/internal/config"
	"github.com/stockroomhq/stockroom/backend/internal/metrics"
	"github.com/stockroomhq/stockroom/backend/internal/models"
	"github.com/stockroomhq/stockroom/backend/internal/services"
)

// Register wires up API routes, performs automatic migrations and starts the
// notification engine. The returned scheduler must be stopped when the
// process shuts down.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) (*services.Scheduler, error) {
	if err := db.AutoMigrate(
		&models.Order{},
		&models.Package{},
		&models.InventoryItem{},
		&models.InventoryProfile{},
		&models.Warranty{},
		&models.Notification{},
		&models.Setting{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/api/v1/health", handlers.HealthHandler)

	settingsService := services.NewSettingsService(db)
	notificationService := services.NewNotificationService(
		services.NewGormSnapshotProvider(db),
		settingsService,
		services.NewSettingReadStateStore(db),
		services.NewGormRemoteMirror(db),
		services.NewPushService(cfg.PushURLs),
		cfg.EmployeeID,
	)
	navigationService := services.NewNavigationService(services.LogSink{})
	scheduler := services.NewScheduler(notificationService, cfg.GenerateInterval)

	// Prime from the mirror before the first cycle so previously persisted
	// alerts show up with their read state applied.
	notificationService.LoadFromMirror(context.Background())

	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("start scheduler: %w", err)
	}
	go scheduler.GenerateNow()

	api := router.Group("/api/v1")
	api.Use(middleware.EmployeeAuth(cfg.JWTSecret))
	{
		notificationHandler := handlers.NewNotificationHandler(notificationService, navigationService, scheduler)
		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
		api.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)
		api.POST("/notifications/:id/archive", notificationHandler.Archive)
		api.POST("/notifications/:id/navigate", notificationHandler.Navigate)
		api.POST("/notifications/generate", notificationHandler.Generate)

		settingsHandler := handlers.NewSettingsHandler(settingsService)
		api.GET("/notifications/settings", settingsHandler.GetSettings)
		api.PUT("/notifications/settings", settingsHandler.UpdateSettings)
	}

	return scheduler, nil
}
