//	@title			Fileport API
//	@version		1.0
//	@description	File uploads, append-only log ingestion and the frontend auth gate.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fileport/service/internal/applog"
	"github.com/fileport/service/internal/config"
	"github.com/fileport/service/internal/db"
	"github.com/fileport/service/internal/logging"
	appMiddleware "github.com/fileport/service/internal/middleware"
	"github.com/fileport/service/internal/server"
	"github.com/fileport/service/internal/storage"
	"github.com/fileport/service/internal/upload"

	_ "github.com/fileport/service/docs/swagger"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogFormat, cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", err)
	}

	ctx := context.Background()

	// Object storage: local directory by default, S3-compatible on request.
	var (
		store     storage.Storage
		uploadDir string
	)
	switch cfg.StorageDriver {
	case config.DriverMinio:
		s, err := storage.NewMinioStorage(ctx, storage.MinioOptions{
			Endpoint:   cfg.StorageEndpoint,
			AccessKey:  cfg.StorageAccessKey,
			SecretKey:  cfg.StorageSecretKey,
			Bucket:     cfg.StorageBucket,
			PublicBase: cfg.StoragePublicBase,
			UseSSL:     cfg.StorageUseSSL,
		})
		if err != nil {
			fatal("object storage init failed", err)
		}
		store = s
	default:
		s, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadPublicBase)
		if err != nil {
			fatal("upload directory init failed", err)
		}
		store, uploadDir = s, s.Root()
	}

	// Upload records are optional.
	var records upload.Records
	if cfg.HasDatabase() {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fatal("database connection failed", err)
		}
		defer pool.Close()

		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			fatal("database migration failed", err)
		}
		records = upload.NewRepository(pool)
	}

	// Wire dependencies: repository → service → handler
	uploadSvc := upload.NewService(store, upload.NewNamer(), records)
	uploadHandler := upload.NewHandler(uploadSvc, cfg.MaxUploadBytes)
	logHandler := applog.NewHandler(applog.New(cfg.LogDir, cfg.LogFile))

	var verifier appMiddleware.Verifier
	if cfg.AuthVerifyJWT {
		verifier = appMiddleware.JWTVerifier(cfg.JWTSecret)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewRouter(server.Deps{
			Uploads:      uploadHandler,
			ListFiles:    uploadSvc.HasRecords(),
			Logs:         logHandler,
			JWTSecret:    cfg.JWTSecret,
			UploadDir:    uploadDir,
			WebDir:       cfg.WebDir,
			GateVerifier: verifier,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv, "storage", cfg.StorageDriver)
		slog.Info("swagger UI available", "url", "http://localhost:"+cfg.Port+"/swagger/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	<-quit
	slog.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal("forced shutdown", err)
	}

	slog.Info("server stopped")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
