package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uilibs/internal/config"
	"uilibs/internal/db"
	"uilibs/internal/email"
	"uilibs/internal/handlers"
	"uilibs/internal/jobs"
	"uilibs/internal/metrics"
	"uilibs/internal/prefs"
	"uilibs/internal/server"
	"uilibs/internal/storage"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Register Prometheus collectors
	metrics.Init(database)

	// Image storage: S3 when configured, in-memory otherwise (dev only)
	var images storage.Store
	if cfg.S3Enabled() {
		images, err = storage.NewS3(ctx, storage.S3Options{
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			UseSSL:        cfg.S3UseSSL,
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		log.Printf("Image storage: s3 (bucket %s)", cfg.S3Bucket)
	} else {
		images = storage.NewMemory()
		log.Println("Image storage: in-memory (uploads will not survive restarts)")
	}

	// Favorites
	favorites := prefs.NewMemory()

	// Email notifications
	notifier := email.NewNotifier(cfg, database)
	handlers.SetNotifier(notifier)
	if !cfg.EmailEnabled() {
		log.Println("Email notifications disabled (SMTP_HOST or SMTP_FROM not set)")
	}

	// Background website health checking
	if cfg.EnableHealthChecks {
		checker := jobs.NewHealthChecker(database, notifier, 15*time.Minute, 24*time.Hour)
		go checker.Start(ctx)
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, favorites, images, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
