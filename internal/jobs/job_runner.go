package jobs

import (
	"time"

	"givehub-backend/internal/config"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	email    service.EmailService // nil when email delivery is disabled
	config   *config.Config
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	email service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		userRepo: userRepo,
		noteRepo: noteRepo,
		email:    email,
		config:   cfg,
		now:      time.Now,
	}
}

// Config exposes the configuration for schedule registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendPendingOrganizationsDigest()
	jr.PurgeReadNotifications()
}
