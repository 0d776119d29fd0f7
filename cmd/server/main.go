package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sfa/internal/db"
	"sfa/internal/domain/activity"
	"sfa/internal/domain/employee"
	"sfa/internal/domain/expense"
	"sfa/internal/domain/kpi"
	"sfa/internal/domain/plan"
	"sfa/internal/domain/portfolio"
	"sfa/internal/external/quotations"
	"sfa/internal/external/storage"
	"sfa/internal/platform/config"
	activityhandler "sfa/internal/transport/http/handlers/activity"
	authhandler "sfa/internal/transport/http/handlers/auth"
	employeehandler "sfa/internal/transport/http/handlers/employee"
	expensehandler "sfa/internal/transport/http/handlers/expense"
	kpihandler "sfa/internal/transport/http/handlers/kpi"
	planhandler "sfa/internal/transport/http/handlers/plan"
	portfoliohandler "sfa/internal/transport/http/handlers/portfolio"
	"sfa/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}

	// The quotations source is optional: without it, reconciliation still
	// works for employees that are not linked to an external seller.
	var quoteCounter *quotations.PGCounter
	if cfg.ExternalDatabaseURL != "" {
		externalPool, err := db.ConnectExternal(ctx, cfg)
		if err != nil {
			slog.Error("external db connect failed", "err", err)
			os.Exit(1)
		}
		defer externalPool.Close()
		quoteCounter = quotations.NewPGCounter(externalPool, cfg.ExternalQueryTimeout)
	}

	var photoStore storage.Store = storage.Noop{}
	if ftpStore, err := storage.NewFTPStore(storage.FTPConfig{
		Host:     cfg.StorageHost,
		User:     cfg.StorageUser,
		Password: cfg.StoragePassword,
		BasePath: cfg.StorageBasePath,
		Timeout:  cfg.StorageTimeout,
	}); err == nil {
		photoStore = ftpStore
	} else {
		slog.Warn("photo storage not configured, evidence uploads disabled")
	}

	kpiStore := kpi.NewStore(pool)
	var counter quotations.Counter
	if quoteCounter != nil {
		counter = quoteCounter
	}
	kpiService := kpi.NewService(kpiStore, counter)

	planService := plan.NewService(plan.NewStore(pool), kpiStore, plan.ReportDefaults{
		TargetVisits:         cfg.TargetVisits,
		TargetAssistedVisits: cfg.TargetAssistedVisits,
		TargetCalls:          cfg.TargetCalls,
		TargetEmails:         cfg.TargetEmails,
		TargetQuotations:     cfg.TargetQuotations,
		ObjectiveScore:       cfg.ObjectiveScore,
	})
	activityService := activity.NewService(activity.NewStore(pool), kpiService, photoStore)
	expenseService := expense.NewService(expense.NewStore(pool))
	employeeStore := employee.NewStore(pool)
	portfolioStore := portfolio.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics)
	}
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(employeeStore, cfg.JWTSecret).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			if cfg.Environment == "production" {
				r.Use(middleware.RequireAuth)
			}
			planhandler.NewHandler(planService).RegisterRoutes(r)
			var quotes kpihandler.QuotationLister
			if quoteCounter != nil {
				quotes = quoteCounter
			}
			kpihandler.NewHandler(kpiService, quotes).RegisterRoutes(r)
			activityhandler.NewHandler(activityService, photoStore).RegisterRoutes(r)
			expensehandler.NewHandler(expenseService).RegisterRoutes(r)
			employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
			portfoliohandler.NewHandler(portfolioStore).RegisterRoutes(r)
		})
	})

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
