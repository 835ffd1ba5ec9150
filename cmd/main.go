package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/notevault/notevault-backend/internal/clients/blob"
	"github.com/notevault/notevault-backend/internal/data/db"
	"github.com/notevault/notevault-backend/internal/data/repos/notes"
	"github.com/notevault/notevault-backend/internal/http/handlers"
	"github.com/notevault/notevault-backend/internal/moderation"
	"github.com/notevault/notevault-backend/internal/observability"
	"github.com/notevault/notevault-backend/internal/pkg/envutil"
	"github.com/notevault/notevault-backend/internal/pkg/logger"
	"github.com/notevault/notevault-backend/internal/server"
	"github.com/notevault/notevault-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op unless OTEL_ENABLED)
	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "notevault",
		Environment: envutil.Get("APP_ENV", "development", log),
	})

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	noteRepo := notes.NewNoteRepo(thePG, log)

	// Blob store
	uploadsDir := ""
	var blobs blob.Store
	switch envutil.Get("BLOB_BACKEND", "local", log) {
	case "gcs":
		blobs, err = blob.NewGCSStore(ctx, log)
		if err != nil {
			log.Error("Could not init GCS blob store", "error", err)
			os.Exit(1)
		}
	default:
		uploadsDir = envutil.Get("UPLOADS_DIR", "./uploads", log)
		local, lErr := blob.NewLocalStore(log, uploadsDir, "uploads")
		if lErr != nil {
			log.Error("Could not init local blob store", "error", lErr)
			os.Exit(1)
		}
		blobs = local
	}

	// Services
	log.Info("Setting up services...")
	filter, err := moderation.NewFilterFromEnv(log)
	if err != nil {
		log.Error("Could not load moderation denylist", "error", err)
		os.Exit(1)
	}
	uploadService := services.NewUploadService(thePG, log, blobs, nil, filter, noteRepo)
	searchService := services.NewSearchService(thePG, log, noteRepo)

	// Handlers
	noteHandler := handlers.NewNoteHandler(log, uploadService, searchService, noteRepo)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:         log,
		NoteHandler: noteHandler,
		UploadsDir:  uploadsDir,
	})

	port := envutil.Get("PORT", "5000", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error("Server failed", "error", err)
	}

	if shutdownOtel != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = shutdownOtel(shutdownCtx)
		cancel()
	}
	if err := postgresService.Close(); err != nil {
		log.Warn("Failed to close Postgres", "error", err)
	}
}
