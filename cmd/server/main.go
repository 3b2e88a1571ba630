package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aayushs-edu/stockapp-sub000/internal/api"
	"github.com/aayushs-edu/stockapp-sub000/internal/config"
	"github.com/aayushs-edu/stockapp-sub000/internal/database"
	"github.com/aayushs-edu/stockapp-sub000/internal/repository"
	"github.com/aayushs-edu/stockapp-sub000/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	accountService := service.NewAccountService(accountRepo)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo)
	impExpService := service.NewImpExpService(transactionRepo, accountRepo)
	reportService := service.NewReportService(transactionService)
	snapshotService := service.NewSnapshotService(snapshotRepo, accountRepo, transactionService)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Account:     accountService,
		Transaction: transactionService,
		ImpExp:      impExpService,
		Report:      reportService,
		Snapshot:    snapshotService,
	}, cfg)

	// Schedule the nightly snapshot job
	scheduler := cron.New()
	if cfg.Snapshot.Schedule != "" {
		if _, err := scheduler.AddFunc(cfg.Snapshot.Schedule, snapshotService.RunScheduled); err != nil {
			log.Fatalf("Failed to schedule snapshot job: %v", err)
		}
		scheduler.Start()
		log.Printf("Snapshot job scheduled: %s", cfg.Snapshot.Schedule)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the scheduler and wait for a running job to finish
	<-scheduler.Stop().Done()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
