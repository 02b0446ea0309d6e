package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briefing/backend/internal/application/summary"
	"github.com/briefing/backend/internal/infrastructure/config"
	"github.com/briefing/backend/internal/infrastructure/content"
	"github.com/briefing/backend/internal/infrastructure/layout"
	"github.com/briefing/backend/internal/infrastructure/logger"
	infra "github.com/briefing/backend/internal/infrastructure/printing"
	"github.com/briefing/backend/internal/infrastructure/render"
	"github.com/briefing/backend/internal/interfaces/http/handler"
	"github.com/briefing/backend/internal/interfaces/http/middleware"
	"github.com/briefing/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting executive summary server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	payload, err := content.Load(cfg.Summary.ContentPath)
	if err != nil {
		log.Fatal("Failed to load summary content", zap.Error(err))
	}

	geometry, err := cfg.Summary.Geometry()
	if err != nil {
		log.Fatal("Invalid page geometry", zap.Error(err))
	}

	renderer, err := render.NewRenderer(render.NewTemplateEngine(), render.Options{
		BackLink:    cfg.Summary.BackLink,
		Geometry:    geometry,
		AutoPrint:   cfg.Summary.AutoPrint,
		AssetPrefix: cfg.Summary.AssetPrefix,
	})
	if err != nil {
		log.Fatal("Failed to initialize renderer", zap.Error(err))
	}

	// Optional headless Chrome host for PDF export and server-side printing
	var (
		opts    = []summary.Option{summary.WithLogger(logger.Named(log, "summary"))}
		host    *infra.ChromeHost
		exports *infra.ExportStore
	)
	if cfg.Chrome.Enabled {
		host = infra.NewChromeHost(&infra.ChromedpConfig{
			DefaultTimeout: cfg.Chrome.Timeout,
			RemoteURL:      cfg.Chrome.RemoteURL,
			ExecPath:       cfg.Chrome.ExecPath,
			NoSandbox:      cfg.Chrome.NoSandbox,
			Logger:         logger.Named(log, "chrome"),
		})
		defer func() {
			if err := host.Close(); err != nil {
				log.Error("Error closing Chrome host", zap.Error(err))
			}
		}()
		opts = append(opts, summary.WithExporter(host))

		exports, err = infra.NewExportStore(&infra.ExportStoreConfig{
			Dir:       cfg.Chrome.OutputDir,
			Retention: cfg.Chrome.Retention,
			Logger:    logger.Named(log, "exports"),
		})
		if err != nil {
			log.Fatal("Failed to initialize export store", zap.Error(err))
		}

		log.Info("PDF export enabled",
			zap.String("output_dir", exports.Dir()),
			zap.Bool("remote", cfg.Chrome.RemoteURL != ""),
		)
	}

	var svc *summary.Service
	if host != nil && cfg.Chrome.ServerPrint {
		// The facility reads the page through the service built below
		source := func(ctx context.Context) (*infra.PrintRequest, error) {
			return svc.PrintRequest(ctx)
		}
		facility := infra.NewHeadlessPrintFacility(host, exports, source,
			infra.WithFacilityTimeout(cfg.Chrome.Timeout),
			infra.WithFacilityLogger(logger.Named(log, "print")),
		)
		opts = append(opts, summary.WithPrintFacility(facility))
		log.Info("Server-side print trigger enabled")
	}
	svc = summary.NewService(payload, renderer, layout.NewEngine(), opts...)

	// Render at startup; a broken payload or template stops the server here
	if _, err := svc.Page(context.Background()); err != nil {
		log.Fatal("Failed to render summary", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests (assets at debug level)
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, cfg.Summary.AssetPrefix))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	summaryHandler := handler.NewSummaryHandler(svc, exports)
	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, svc)

	r := router.NewRouter(engine)
	r.RegisterDocument(handler.SummaryDocumentRoutes(summaryHandler))
	r.RegisterDocument(handler.SummaryAssetRoutes(summaryHandler))
	r.Register(handler.SummaryAPIRoutes(summaryHandler))
	r.Register(handler.SystemRoutes(systemHandler))
	r.Setup()

	engine.GET("/health", systemHandler.Health)

	for _, route := range r.Routes() {
		log.Debug("Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	// Periodic cleanup of stored exports
	stopCleanup := make(chan struct{})
	if exports != nil && cfg.Chrome.Retention > 0 {
		go runExportCleanup(exports, cfg.Chrome.Retention, stopCleanup, log)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func runExportCleanup(store *infra.ExportStore, every time.Duration, stop <-chan struct{}, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			removed, err := store.Cleanup(context.Background())
			if err != nil {
				log.Warn("Export cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("Removed expired exports", zap.Int("count", removed))
			}
		}
	}
}
