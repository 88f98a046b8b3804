package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"upload-gateway/internal/api"
	"upload-gateway/internal/config"
	"upload-gateway/internal/index"
	"upload-gateway/internal/logging"
	"upload-gateway/internal/storage"
	"upload-gateway/internal/sweeper"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

func main() {
	log := logging.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", "error", err)
	}

	store := storage.New(afero.NewOsFs(), cfg.UploadDir)
	if err := store.Init(); err != nil {
		log.Fatal("failed to create upload directory", "dir", cfg.UploadDir, "error", err)
	}

	idx, err := index.Open()
	if err != nil {
		log.Fatal("failed to open file index", "error", err)
	}
	files, err := store.List()
	if err != nil {
		log.Fatal("failed to scan upload directory", "dir", cfg.UploadDir, "error", err)
	}
	if err := idx.Rebuild(files); err != nil {
		log.Fatal("failed to build file index", "error", err)
	}

	r := gin.Default()

	// CORS Middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"POST", "OPTIONS", "GET", "PUT", "DELETE"},
		AllowHeaders: []string{
			"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token",
			"Authorization", "Accept", "Origin", "Cache-Control", "X-Requested-With",
		},
		MaxAge: 12 * time.Hour,
	}))

	uploadHandler := api.NewUploadHandler(cfg, store, idx, log)
	fileHandler := api.NewFileHandler(store, idx, log)

	r.GET("/health", api.Health)
	r.POST("/upload", api.RequireToken(cfg.UploadToken), uploadHandler.Upload)
	r.GET("/files/:name", fileHandler.Serve)
	r.DELETE("/files/:name", api.RequireToken(cfg.UploadToken), fileHandler.Delete)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sweeper.New(store, idx, cfg.MaxAge(), log).Run(ctx)

	log.Info("server starting",
		"port", cfg.Port,
		"upload_dir", cfg.UploadDir,
		"max_file_size", humanize.IBytes(uint64(api.MaxFileBytes)),
		"retention", cfg.MaxAge())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to run server", "error", err)
	}
}
