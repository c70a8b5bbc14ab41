// Package app wires configuration, logging, the dataset pipeline, and the
// HTTP server into one runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"ecomdash/internal/config"
	"ecomdash/internal/dataset"
	"ecomdash/internal/infrastructure"
	"ecomdash/internal/metrics"
	custommw "ecomdash/internal/middleware"
	"ecomdash/internal/services"
	transporthttp "ecomdash/internal/transport/http"
)

// Application holds all application dependencies.
type Application struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *metrics.Registry
	server   *http.Server
}

// New loads configuration and the dataset snapshot and builds the
// application. The dataset is loaded once at startup; requests aggregate
// over the in-memory snapshot.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	registry := metrics.NewRegistry()

	tables, stopwords, err := loadSnapshot(cfg, logger, registry)
	if err != nil {
		return nil, err
	}

	dashboards := services.NewDashboardService(tables, stopwords, logger, registry)
	exports := services.NewExportService(dashboards, cfg.Paths.ReportsDir, logger)

	router := buildRouter(cfg, logger, registry, dashboards, exports)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		server:   srv,
	}, nil
}

// loadSnapshot loads and cleans the dataset and the stopword list.
func loadSnapshot(cfg *config.Config, logger *slog.Logger, registry *metrics.Registry) (dataset.Tables, dataset.StopwordSet, error) {
	start := time.Now()

	loader := dataset.NewLoader(logger)
	raw, err := loader.Load(cfg.Paths.DataDir)
	if err != nil {
		return dataset.Tables{}, nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	tables := dataset.Clean(raw, logger)

	stopwords, err := dataset.LoadStopwords(cfg.Paths.StopwordsFile)
	if err != nil {
		return dataset.Tables{}, nil, fmt.Errorf("failed to load stopwords: %w", err)
	}

	registry.DatasetRows.WithLabelValues("orders").Set(float64(len(tables.Orders)))
	registry.DatasetRows.WithLabelValues("order_items").Set(float64(len(tables.OrderItems)))
	registry.DatasetRows.WithLabelValues("products").Set(float64(len(tables.Products)))
	registry.DatasetRows.WithLabelValues("customers").Set(float64(len(tables.Customers)))
	registry.DatasetRows.WithLabelValues("sellers").Set(float64(len(tables.Sellers)))
	registry.DatasetRows.WithLabelValues("geolocations").Set(float64(len(tables.Geolocations)))
	registry.DatasetRows.WithLabelValues("payments").Set(float64(len(tables.Payments)))
	registry.DatasetRows.WithLabelValues("reviews").Set(float64(len(tables.Reviews)))

	logger.Info("dataset snapshot ready",
		slog.Int("orders", len(tables.Orders)),
		slog.Int("stopwords", len(stopwords)),
		slog.String("duration", time.Since(start).String()))

	return tables, stopwords, nil
}

// buildRouter assembles the middleware chain and mounts all routes.
func buildRouter(cfg *config.Config, logger *slog.Logger, registry *metrics.Registry, dashboards *services.DashboardService, exports *services.ExportService) chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(custommw.SecurityHeaders)
	if cfg.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: cfg.Security.AllowedOrigins,
			Logger:         logger,
		}))
	}
	if cfg.Security.RateLimit.Enabled {
		rl := custommw.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, logger)
		r.Use(rl.Handler)
	}
	r.Use(custommw.Timeout(cfg.Server.RequestTimeout, logger))
	r.Use(requestMetrics(registry))

	dashboardHandler := transporthttp.NewDashboardHandler(dashboards, exports, logger)
	healthHandler := transporthttp.NewHealthHandler(dashboards, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.VersionInfo)
		r.Mount("/", dashboardHandler.Routes())
	})
	r.Method(http.MethodGet, "/metrics", registry.Handler())

	return r
}

// requestMetrics records request counts and latency per route.
func requestMetrics(registry *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			registry.RequestsTotal.WithLabelValues(route, strconv.Itoa(ww.status)).Inc()
			registry.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Run starts the HTTP server and blocks until shutdown.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		a.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("server stopped")
	infrastructure.CloseLogFile()
	return nil
}
