package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/backend/internal/api/middleware"
	"github.com/stockroomhq/stockroom/backend/internal/api/routes"
	"github.com/stockroomhq/stockroom/backend/internal/config"
	"github.com/stockroomhq/stockroom/backend/internal/services"
)

// Server wraps the HTTP engine and shared dependencies for easier testing.
type Server struct {
	Engine    *gin.Engine
	cfg       config.Config
	scheduler *services.Scheduler
}

// New wires up the HTTP router, registers versioned routes and starts the
// notification engine.
func New(db *gorm.DB, cfg config.Config) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Environment == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery(cfg.Environment == "development"))

	scheduler, err := routes.Register(router, db, cfg)
	if err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	return &Server{Engine: router, cfg: cfg, scheduler: scheduler}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails. The periodic generator is stopped on the way out.
func (s *Server) Run(ctx context.Context) error {
	defer s.scheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", s.cfg.HTTPPort),
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
