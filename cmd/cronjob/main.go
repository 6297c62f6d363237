package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	"givehub-backend/internal/config"
	"givehub-backend/internal/jobs"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/repository/firestorerepo"
	"givehub-backend/internal/repository/postgres"
	"givehub-backend/internal/scheduler"
	"givehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('pending-org-digest', 'purge-notifications', 'all-daily')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GiveHub Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize Repositories
	var (
		userRepo repository.UserRepository
		noteRepo repository.NotificationRepository
	)
	switch cfg.Database.Driver {
	case "firestore":
		fbConfig := &firebase.Config{ProjectID: cfg.Firebase.ProjectID}
		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}
		app, err := firebase.NewApp(ctx, fbConfig, opts...)
		if err != nil {
			logger.Error("Failed to initialize Firebase", "error", err)
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			logger.Error("Failed to create Firestore client", "error", err)
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer client.Close()
		store := firestorerepo.NewStore(client)
		userRepo, noteRepo = store.UserRepository, store.NotificationRepository
	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")
		store := postgres.NewStore(db)
		userRepo, noteRepo = store.UserRepository, store.NotificationRepository
	}

	// Initialize Email Service (optional)
	var emailSvc service.EmailService
	if cfg.Email.APIKey != "" {
		emailSvc = service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	}

	jobRunner := jobs.NewJobRunner(userRepo, noteRepo, emailSvc, cfg)

	// Run-once mode for manual execution and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "pending-org-digest":
			jobRunner.SendPendingOrganizationsDigest()
		case "purge-notifications":
			jobRunner.PurgeReadNotifications()
		case "all-daily":
			jobRunner.RunAllDailyJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		logger.Info("Run-once complete", "job", *runOnce)
		return
	}

	// Scheduled mode
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down...", "signal", sig.String())
	sched.Stop()
}
