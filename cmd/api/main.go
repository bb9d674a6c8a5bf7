package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	appleads "github.com/quirky-analytics/leadgen/internal/application/leads"
	"github.com/quirky-analytics/leadgen/internal/config"
	"github.com/quirky-analytics/leadgen/internal/domain/lead"
	aiclient "github.com/quirky-analytics/leadgen/internal/infra/ai/openai"
	"github.com/quirky-analytics/leadgen/internal/infra/history"
	"github.com/quirky-analytics/leadgen/internal/infra/httpserver"
	"github.com/quirky-analytics/leadgen/internal/infra/report"
	minioStore "github.com/quirky-analytics/leadgen/internal/infra/storage"
	"github.com/quirky-analytics/leadgen/internal/middleware"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.Provider.APIKey == "" {
		log.Println("warning: no provider API key configured, analyze calls will fail")
	}

	ctx := context.Background()

	// optional report archive
	var archive lead.Archive
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			log.Fatalf("archive init error: %v", err)
		}
		archive = store
	}

	svc := &appleads.Service{
		Provider: aiclient.NewClient(cfg.Provider.APIKey, cfg.Provider.Model),
		History:  history.NewMemoryStore(),
		Criteria: cfg.DefaultCriteria(),
		Clock:    appleads.SystemClock{},
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Logging)
	mux.Use(middleware.CountRequests)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	bucket := middleware.NewTokenBucket(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
	mux.Mount("/", httpserver.NewRouter(svc, report.NewGenerator(), archive, cfg.Provider.APIKey != "", bucket))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // analyze waits on two provider round-trips
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
