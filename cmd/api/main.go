package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"intranet/internal/category"
	"intranet/internal/config"
	"intranet/internal/database"
	"intranet/internal/database/migration"
	"intranet/internal/graph"
	handlers "intranet/internal/http/handler"
	"intranet/internal/http/middleware"
	"intranet/internal/index"
	otelinit "intranet/internal/otel"
	"intranet/internal/repository/postgres"
	"intranet/internal/service"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Load configuration from environment variables (.env auto-loaded if
	// present). Any missing required value aborts startup here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration invalid", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otelinit.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	// Identity store connection, verified at startup.
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to identity store", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		log.Fatal("failed to migrate identity store", zap.Error(err))
	}

	// Category registry and remote document service client.
	registry := category.NewRegistry(cfg.CategoryFolders)
	drive := graph.NewClient(cfg.Graph)

	// Document index with its background synchronizer.
	idx := index.New()
	syncMetrics, err := index.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register sync metrics", zap.Error(err))
	}
	synchronizer := index.NewSynchronizer(idx, registry, drive,
		time.Duration(cfg.SyncIntervalSec)*time.Second, syncMetrics, log)
	go synchronizer.Run(ctx)

	// Services.
	userRepo := postgres.NewUserPostgres(db)
	contentSvc := service.NewContentService(drive, cfg.Graph.NewsListID, cfg.Graph.CalendarID, cfg.Graph.PartnerListID)
	svcs := handlers.Services{
		Auth:      service.NewAuthService(userRepo),
		Documents: service.NewDocumentService(registry, drive),
		Search:    service.NewSearchService(idx, contentSvc, log),
		Content:   contentSvc,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, svcs)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Port))

	<-ctx.Done()
	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
