package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-perf-cache/internal/auth"
	"clinic-perf-cache/internal/cache"
	"clinic-perf-cache/internal/config"
	"clinic-perf-cache/internal/database"
	"clinic-perf-cache/internal/metrics"
	"clinic-perf-cache/internal/monitor"
	"clinic-perf-cache/internal/realtime"
	"clinic-perf-cache/internal/routes"

	"gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	db, err := database.Open(cfg.DBPath, logger.Info)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Failed to seed database: ", err)
	}
	log.Println("Database connected and migrated successfully")

	store := cache.New(cache.Config{
		MaxSize:    cfg.Cache.MaxSizeBytes,
		MaxEntries: cfg.Cache.MaxEntries,
		DefaultTTL: cfg.Cache.DefaultTTL,
	})
	cache.NewDomains(store).PreloadStatic(map[string]any{
		"home": map[string]any{"title": "Find a clinic near you", "sections": []string{"search", "featured", "contact"}},
		"faq":  map[string]any{"title": "Frequently asked questions"},
	})

	m := metrics.New("clinic_cache")
	hub := realtime.NewHub()
	publisher := monitor.NewPublisher(m, hub)

	janitor := cache.NewJanitor(store, cache.JanitorConfig{
		CleanupInterval: cfg.Cache.CleanupInterval,
		StatsInterval:   cfg.Cache.StatsInterval,
		OnCleanup:       publisher.PublishCleanup,
		OnSnapshot:      publisher.PublishStats,
	})
	janitor.Start(ctx)
	defer func() {
		if err := janitor.Close(); err != nil {
			log.Printf("janitor close: %v", err)
		}
	}()
	publisher.PublishStats(janitor.Snapshot())

	ginRoutes := routes.SetupRoutes(routes.Dependencies{
		Store:   store,
		DB:      db,
		Tokens:  auth.NewManager(cfg.JWT, cfg.Admin),
		Metrics: m,
		Hub:     hub,
	})

	srv := &http.Server{Addr: cfg.Port, Handler: ginRoutes}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("cache: maxSize=%dMiB maxEntries=%d defaultTTL=%s cleanupEvery=%s statsEvery=%s",
		cfg.Cache.MaxSizeBytes/(1024*1024), cfg.Cache.MaxEntries, cfg.Cache.DefaultTTL,
		cfg.Cache.CleanupInterval, cfg.Cache.StatsInterval)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/cache/stats")
	log.Println("  GET    /api/cache/entries/:key")
	log.Println("  PUT    /api/cache/entries/:key")
	log.Println("  DELETE /api/cache/entries/:key")
	log.Println("  DELETE /api/cache")
	log.Println("  POST   /api/cache/cleanup")
	log.Println("  POST   /api/cache/preload")
	log.Println("  GET    /api/clinics/:id")
	log.Println("  GET    /api/doctors/:id")
	log.Println("  GET    /api/search")
	log.Println("  GET    /ws/stats")
	log.Println("  GET    /metrics")
	log.Println("  GET    /health")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
