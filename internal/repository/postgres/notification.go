package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) (string, error) {
	n.ID = uuid.New().String()
	query := `INSERT INTO notifications (id, recipient_id, title, message, type, timestamp, read, starred, donor_email, donation_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	logger.Debug("→ Database call", "operation", "INSERT", "query", "notifications", "recipientID", n.RecipientID)
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.RecipientID, n.Title, n.Message, n.Type, n.Timestamp,
		n.Read, n.Starred, nullString(n.DonorEmail), nullString(n.DonationID))
	if err != nil {
		return "", domain.WrapUpstream("failed to create notification", err)
	}
	return n.ID, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, since time.Time) ([]domain.Notification, error) {
	query := `SELECT id, recipient_id, title, message, type, timestamp, read, starred, COALESCE(donor_email, ''), COALESCE(donation_id, '')
	          FROM notifications WHERE recipient_id = $1`
	args := []any{recipientID}
	if !since.IsZero() {
		args = append(args, since)
		query += ` AND timestamp >= $2`
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapUpstream("failed to list notifications", err)
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type,
			&n.Timestamp, &n.Read, &n.Starred, &n.DonorEmail, &n.DonationID); err != nil {
			return nil, domain.WrapUpstream("failed to scan notification", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapUpstream("failed to iterate notifications", err)
	}
	return notes, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	return r.setFlag(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
}

func (r *notificationRepository) SetStarred(ctx context.Context, id, recipientID string, starred bool) error {
	query := `UPDATE notifications SET starred = $3 WHERE id = $1 AND recipient_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, recipientID, starred)
	if err != nil {
		return domain.WrapUpstream("failed to update notification", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.NotFound, "notification not found")
	}
	return nil
}

func (r *notificationRepository) setFlag(ctx context.Context, query, id, recipientID string) error {
	res, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return domain.WrapUpstream("failed to update notification", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.NotFound, "notification not found")
	}
	return nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE read = TRUE AND timestamp < $1`, cutoff)
	if err != nil {
		return 0, domain.WrapUpstream("failed to purge notifications", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
