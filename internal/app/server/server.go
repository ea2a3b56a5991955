package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"salesdash/internal/domain/audit"
	"salesdash/internal/domain/auth"
	"salesdash/internal/domain/catalog"
	"salesdash/internal/domain/kpi"
	"salesdash/internal/domain/planner"
	"salesdash/internal/domain/reports"
	"salesdash/internal/domain/salestarget"
	"salesdash/internal/domain/targeting"
	"salesdash/internal/platform/config"
	"salesdash/internal/platform/db"
	"salesdash/internal/platform/metrics"
	"salesdash/internal/transport/http/api"
	audithandler "salesdash/internal/transport/http/handlers/audit"
	authhandler "salesdash/internal/transport/http/handlers/auth"
	cataloghandler "salesdash/internal/transport/http/handlers/catalog"
	kpihandler "salesdash/internal/transport/http/handlers/kpi"
	plannerhandler "salesdash/internal/transport/http/handlers/planner"
	reportshandler "salesdash/internal/transport/http/handlers/reports"
	salestargethandler "salesdash/internal/transport/http/handlers/salestarget"
	targetinghandler "salesdash/internal/transport/http/handlers/targeting"
	"salesdash/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	auditSvc := audit.New(pool)
	authStore := auth.NewStore(pool)
	catalogStore := catalog.NewStore(pool)
	kpiStore := kpi.NewStore(pool)
	plannerStore := planner.NewStore(pool)
	targetingStore := targeting.NewStore(pool)
	targetStore := salestarget.NewStore(pool)
	reportsStore := reports.NewStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

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

	if collector != nil {
		router.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, auditSvc, cfg.JWTSecret).RegisterRoutes(r)
		cataloghandler.NewHandler(catalogStore, auditSvc).RegisterRoutes(r)
		kpihandler.NewHandler(kpiStore, auditSvc).RegisterRoutes(r)
		plannerhandler.NewHandler(plannerStore, auditSvc).RegisterRoutes(r)
		targetinghandler.NewHandler(targetingStore).RegisterRoutes(r)
		salestargethandler.NewHandler(targetStore, auditSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsStore, catalogStore, kpiStore).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	log.Printf("salesdash server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
