package main

import (
	"context"
	"os"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mediaapi/docs"
	"mediaapi/internal/auth"
	"mediaapi/internal/config"
	handlers "mediaapi/internal/http/handler"
	"mediaapi/internal/http/middleware"
	"mediaapi/internal/otel"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
)

// @title Media Upload API
// @version 1.0
// @BasePath /
func main() {
	// Structured logger shared by the service layer
	var logger kitlog.Logger
	{
		logger = kitlog.NewJSONLogger(kitlog.NewSyncWriter(os.Stderr))
		logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	}

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize OTLP tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		level.Error(logger).Log("msg", "failed to initialize tracing", "err", err)
		os.Exit(1)
	}
	defer shutdownTracing(context.Background())

	// Initialize the S3-compatible object storage backend (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		level.Error(logger).Log("msg", "failed to initialize object storage", "err", err)
		os.Exit(1)
	}

	// Initialize the credential verifier and services
	authn := auth.NewAuthenticator(auth.NewJWTVerifier(cfg.JWT.Secret))
	uploadSvc := service.NewUploadService(
		objStore,
		logger,
		cfg.Upload.ProtectedAssetURLs,
		time.Duration(cfg.MinIO.PresignExpirySec)*time.Second,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Leave room above the per-file ceiling so validation, not the
		// transport, rejects oversized uploads with a typed error.
		BodyLimit: 8 << 20,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		level.Error(logger).Log("msg", "failed to register metrics", "err", err)
		os.Exit(1)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, objStore, authn, uploadSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		level.Error(logger).Log("msg", "failed to start server", "err", err)
		os.Exit(1)
	}
}
