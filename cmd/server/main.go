package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pixieshare/pixieshare/internal/api"
	"github.com/pixieshare/pixieshare/pkg/pixieshare"
	"github.com/pixieshare/pixieshare/pkg/pixieshare/repo/jsonfile"
	fsstorage "github.com/pixieshare/pixieshare/pkg/pixieshare/storage/fs"
)

// metadataFilename is the JSON sidecar inside the upload directory.
const metadataFilename = "_files.json"

type Config struct {
	Port          int    `env:"PORT" env-default:"3000"`
	UploadDir     string `env:"UPLOAD_DIR" env-default:"./uploads"`
	MaxFileSizeMB int64  `env:"MAX_FILE_SIZE_MB" env-default:"500"`
}

func main() {
	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	blobStore, err := fsstorage.New(fsstorage.Config{
		BaseDir:  config.UploadDir,
		MaxBytes: config.MaxFileSizeMB * 1024 * 1024,
	})
	if err != nil {
		slog.Error("Failed to initialize blob store", "dir", config.UploadDir, "error", err)
		os.Exit(1)
	}

	repo, err := jsonfile.New(filepath.Join(config.UploadDir, metadataFilename))
	if err != nil {
		slog.Error("Failed to initialize metadata store", "error", err)
		os.Exit(1)
	}

	svc, err := pixieshare.New(
		pixieshare.WithRepository(repo),
		pixieshare.WithBlobStore(blobStore),
	)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	server := api.NewServer(svc)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: server.Routes(),
	}

	go func() {
		slog.Info("PixieShare starting",
			"port", config.Port,
			"upload_dir", config.UploadDir,
			"max_file_size_mb", config.MaxFileSizeMB,
			"files", repo.Len())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}
