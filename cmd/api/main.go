package main

import (
	"context"
	"time"

	"chat-animation/config"
	"chat-animation/internal/backend"
	"chat-animation/internal/handler"
	"chat-animation/internal/server"
	"chat-animation/internal/services"
	"chat-animation/internal/storage"
	"chat-animation/internal/websocket"
	"chat-animation/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	b, err := backend.Open(ctx, cfg, hub)
	if err != nil {
		l.Errorf("open %s store: %v", cfg.StoreBackend, err)
		return
	}
	defer b.Close()

	if b.Subscriber != nil {
		bridge := websocket.NewRedisBridge(b.Subscriber, hub)
		go func() {
			if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
				l.Errorf("settings event bridge stopped: %v", err)
			}
		}()
	}

	manager := services.NewAnimationSettingsManager(ctx, b.Store, l, services.WithExportDir(cfg.ExportDir))
	settingsService := services.NewAnimationSettingsService(manager, b.Publisher, l)
	authService := services.NewAuthService(cfg.JWTSecret)
	if !authService.Enabled() {
		l.Warnf("JWT_SECRET is empty; settings writes are not authenticated")
	}

	var exportService *services.ExportService
	s3Cfg := storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PresignTTL: time.Duration(cfg.S3PresignTTLSec) * time.Second,
	}
	if s3Cfg.Enabled() {
		s3Client, err := storage.NewClient(ctx, s3Cfg)
		if err != nil {
			l.Errorf("init s3 client: %v", err)
			return
		}
		exportService = services.NewExportService(settingsService, s3Client)
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Settings:  handler.NewAnimationSettingsHandler(settingsService, exportService),
		WebSocket: websocket.NewHandler(settingsService, hub, l),
	}, server.Guards{Auth: authService, Limiter: b.Limiter}, b.Health)

	if err := srv.Start(); err != nil {
		l.Errorf("server stopped with error: %v", err)
	}
}
