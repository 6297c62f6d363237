package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	httpapi "givehub-backend/internal/api/http"
	"givehub-backend/internal/config"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/push"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/repository/firestorerepo"
	"givehub-backend/internal/repository/postgres"
	"givehub-backend/internal/security"
	"givehub-backend/internal/service"
	"givehub-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GiveHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver)

	ctx := context.Background()

	// Initialize Firebase when any firebase-backed concern is enabled
	var app *firebase.App
	if needsFirebase(cfg) {
		fbConfig := &firebase.Config{
			ProjectID:     cfg.Firebase.ProjectID,
			StorageBucket: cfg.Firebase.StorageBucket,
		}
		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}
		app, err = firebase.NewApp(ctx, fbConfig, opts...)
		if err != nil {
			logger.Error("Failed to initialize Firebase", "error", err)
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		logger.Info("Firebase initialized", "project_id", cfg.Firebase.ProjectID)
	}

	// Initialize Repositories
	var (
		userRepo     repository.UserRepository
		donationRepo repository.DonationRepository
		supportRepo  repository.SupportRequestRepository
		issueRepo    repository.IssueRepository
		noteRepo     repository.NotificationRepository
	)
	switch cfg.Database.Driver {
	case "firestore":
		client, err := app.Firestore(ctx)
		if err != nil {
			logger.Error("Failed to create Firestore client", "error", err)
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer client.Close()
		store := firestorerepo.NewStore(client)
		userRepo, donationRepo = store.UserRepository, store.DonationRepository
		supportRepo, issueRepo = store.SupportRequestRepository, store.IssueRepository
		noteRepo = store.NotificationRepository
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
		userRepo, donationRepo = store.UserRepository, store.DonationRepository
		supportRepo, issueRepo = store.SupportRequestRepository, store.IssueRepository
		noteRepo = store.NotificationRepository
	}

	// Initialize Security
	var (
		verifier security.TokenVerifier
		revoker  security.CredentialRevoker = security.NoopRevoker{}
	)
	if cfg.Auth.Mode == "firebase" {
		authClient, err := app.Auth(ctx)
		if err != nil {
			logger.Error("Failed to create Firebase auth client", "error", err)
			log.Fatalf("Failed to create Firebase auth client: %v", err)
		}
		fv := security.NewFirebaseVerifier(authClient)
		verifier, revoker = fv, fv
	} else {
		logger.Info("Using local token verification")
		verifier = security.NewLocalTokenManager(cfg.Auth.Secret)
	}
	authorizer := security.NewAuthorizer()

	// Initialize Push Channel
	var sender push.Sender = push.NewLogSender()
	if cfg.Push.Enabled {
		msgClient, err := app.Messaging(ctx)
		if err != nil {
			logger.Error("Failed to create messaging client", "error", err)
			log.Fatalf("Failed to create messaging client: %v", err)
		}
		sender = push.NewFCMSender(msgClient)
	} else {
		logger.Info("Push delivery disabled, logging instead")
	}

	// Initialize Email Service (optional)
	var emailSvc service.EmailService
	if cfg.Email.APIKey != "" {
		emailSvc = service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
		logger.Info("Email delivery enabled", "from", cfg.Email.From)
	}

	// Initialize Image Storage
	var imageStore storage.Store
	if cfg.Storage.Type == "firebase" {
		storageClient, err := app.Storage(ctx)
		if err != nil {
			logger.Error("Failed to create storage client", "error", err)
			log.Fatalf("Failed to create storage client: %v", err)
		}
		bucket, err := storageClient.Bucket(cfg.Firebase.StorageBucket)
		if err != nil {
			logger.Error("Failed to open storage bucket", "error", err)
			log.Fatalf("Failed to open storage bucket: %v", err)
		}
		imageStore = storage.NewBucketStore(bucket, cfg.Firebase.StorageBucket)
		logger.Info("Using Firebase storage bucket", "bucket", cfg.Firebase.StorageBucket)
	} else {
		localStore, err := storage.NewLocalStore(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		imageStore = localStore
		logger.Info("Using local storage", "upload_dir", cfg.Storage.UploadDir)
	}

	// Initialize Services
	pushTimeout := time.Duration(cfg.Push.TimeoutSeconds) * time.Second
	dispatcher := service.NewDispatcher(userRepo, noteRepo, sender, emailSvc, pushTimeout)
	userSvc := service.NewUserService(userRepo, authorizer, revoker, dispatcher)
	donationSvc := service.NewDonationService(donationRepo, authorizer, dispatcher)
	supportSvc := service.NewSupportService(supportRepo, issueRepo, authorizer, dispatcher)
	noteSvc := service.NewNotificationService(noteRepo, authorizer, dispatcher)
	reportSvc := service.NewReportService(userRepo, donationRepo, authorizer)
	maxImageBytes := cfg.Storage.MaxFileSizeMB * 1024 * 1024
	imageSvc := service.NewImageService(imageStore, userRepo, int(maxImageBytes))

	// Initialize Router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Verifier:      verifier,
		UserRepo:      userRepo,
		Users:         userSvc,
		Donations:     donationSvc,
		Support:       supportSvc,
		Notifications: noteSvc,
		Reports:       reportSvc,
		Images:        imageSvc,
		ImageStore:    imageStore,
		Dispatcher:    dispatcher,
		TriggerSecret: cfg.Trigger.Secret,
		MaxImageBytes: maxImageBytes,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down...", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// needsFirebase reports whether any configured concern requires the Firebase
// app: the firestore driver, firebase auth, the storage bucket, or push.
func needsFirebase(cfg *config.Config) bool {
	return cfg.Database.Driver == "firestore" ||
		cfg.Auth.Mode == "firebase" ||
		cfg.Storage.Type == "firebase" ||
		cfg.Push.Enabled
}
