package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-animation/config"
	"chat-animation/internal/handler"
	"chat-animation/internal/middleware"
	"chat-animation/internal/redis"
	"chat-animation/internal/services"
	"chat-animation/internal/transport/httpdto"
	"chat-animation/internal/websocket"
	"chat-animation/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Settings  *handler.AnimationSettingsHandler
	WebSocket *websocket.Handler
}

// Guards are the middlewares applied to mutating routes. Nil members are
// skipped.
type Guards struct {
	Auth    *services.AuthService
	Limiter *redis.RateLimiter
}

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, guards Guards, health HealthCheck) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	if handlers.WebSocket != nil {
		s.engine.GET("/ws", handlers.WebSocket.Connect)
	}

	write := []gin.HandlerFunc{
		middleware.AuthMiddleware(guards.Auth),
		middleware.WriteRateLimitMiddleware(guards.Limiter, s.logger),
	}

	settings := s.engine.Group("/v1/animation-settings")
	{
		settings.GET("", handlers.Settings.List)
		settings.GET("/types", handlers.Settings.Types)
		settings.GET("/slots/:type", handlers.Settings.Get)
		settings.GET("/export", handlers.Settings.Export)

		mutating := settings.Group("", write...)
		mutating.PUT("/slots/:type", handlers.Settings.Replace)
		mutating.POST("/apply", handlers.Settings.Apply)
		mutating.POST("/restore", handlers.Settings.Restore)
		mutating.POST("/export/file", handlers.Settings.ExportFile)
		mutating.POST("/export/s3", handlers.Settings.ExportToStorage)
		mutating.POST("/import", handlers.Settings.Import)
		mutating.POST("/import/s3", handlers.Settings.ImportFromStorage)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
