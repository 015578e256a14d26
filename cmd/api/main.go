package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pantryapi/internal/config"
	handlers "pantryapi/internal/http/handler"
	"pantryapi/internal/http/middleware"
	"pantryapi/internal/label"
	"pantryapi/internal/merge"
	apiotel "pantryapi/internal/otel"
	"pantryapi/internal/record"
	"pantryapi/internal/service"
	"pantryapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	ctx := context.Background()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	shutdownTracing, err := apiotel.Init(ctx, log)
	if err != nil {
		log.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	// Record store: Google Sheets is the system of record for intake data.
	store, err := record.NewSheetsStore(ctx, cfg.Google)
	if err != nil {
		log.Error("failed to initialize record store", "error", err)
		os.Exit(1)
	}
	resolver := record.NewResolver(store)

	// Archive backend for rendered documents.
	var archive storage.Archive
	var folders service.Folders
	switch cfg.ArchiveBackend {
	case "s3":
		archive, err = storage.NewMinIO(cfg.MinIO)
		folders = service.Folders{Labels: "labels", Merged: "merged"}
	default:
		archive, err = storage.NewDrive(ctx, cfg.Google)
		folders = service.Folders{Labels: cfg.Drive.LabelsFolderID, Merged: cfg.Drive.MergedFolderID}
	}
	if err != nil {
		log.Error("failed to initialize archive backend", "backend", cfg.ArchiveBackend, "error", err)
		os.Exit(1)
	}

	// Shared outbound client, trace-instrumented, for label assets and merging.
	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	renderer := label.NewRenderer(label.NewFetcher(cfg.Label, httpClient))

	var merger merge.Merger
	if cfg.Merge.ServiceURL != "" {
		merger = merge.NewRemote(cfg.Merge.ServiceURL, httpClient)
	} else {
		merger = merge.NewLocal(httpClient)
	}

	svc := service.NewFulfillment(resolver, renderer, archive, merger, folders, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    10 * 1024 * 1024,
	})

	// Register global middleware
	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Content-Type,Authorization",
		}))
	} else {
		app.Use(cors.New())
	}
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, svc)

	addr := ":" + cfg.Port
	log.Info("starting server", "addr", addr, "archive_backend", cfg.ArchiveBackend)

	if err := app.Listen(addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
