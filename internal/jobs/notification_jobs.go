package jobs

import (
	"context"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
)

// SendPendingOrganizationsDigest emails administrators a daily list of
// organizations that have been waiting for approval longer than the
// configured minimum age.
func (jr *JobRunner) SendPendingOrganizationsDigest() {
	jr.runWithRecovery("SendPendingOrganizationsDigest", func() {
		if jr.email == nil {
			logger.Debug("Email delivery disabled, skipping digest")
			return
		}
		ctx := context.Background()

		pending, err := jr.userRepo.ListByRoleAndStatus(ctx, domain.RoleOrganization, domain.UserStatusPending)
		if err != nil {
			logger.Error("Failed to list pending organizations", "error", err)
			return
		}

		minAge := time.Duration(jr.config.Scheduler.PendingOrgMinAgeHours) * time.Hour
		cutoff := jr.now().Add(-minAge)
		var stale []domain.User
		for _, org := range pending {
			if org.CreatedAt.Before(cutoff) {
				stale = append(stale, org)
			}
		}
		if len(stale) == 0 {
			logger.Info("No stale pending organizations")
			return
		}

		admins, err := jr.userRepo.ListByRole(ctx, domain.RoleAdministrator)
		if err != nil {
			logger.Error("Failed to list administrators", "error", err)
			return
		}

		sent := 0
		for _, admin := range admins {
			if !admin.EmailNotifications || admin.Email == "" {
				continue
			}
			if err := jr.email.SendPendingOrganizationsDigest(ctx, admin.Email, stale); err != nil {
				logger.Error("Failed to send pending organizations digest",
					"admin_id", admin.ID,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Pending organizations digest sent",
			"pending_count", len(stale),
			"admins_notified", sent)
	})
}

// PurgeReadNotifications deletes read notification records older than the
// configured retention window. Unread and starred state does not matter;
// only read records are eligible.
func (jr *JobRunner) PurgeReadNotifications() {
	jr.runWithRecovery("PurgeReadNotifications", func() {
		ctx := context.Background()

		keep := time.Duration(jr.config.Scheduler.NotificationKeepDays) * 24 * time.Hour
		cutoff := jr.now().Add(-keep)

		deleted, err := jr.noteRepo.DeleteReadBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge read notifications", "error", err)
			return
		}

		logger.Info("Purged read notifications",
			"count", deleted,
			"cutoff", cutoff.Format(time.RFC3339))
	})
}
