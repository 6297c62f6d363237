package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

type supportRequestRepository struct {
	db *sql.DB
}

func NewSupportRequestRepository(db *sql.DB) repository.SupportRequestRepository {
	return &supportRequestRepository{db: db}
}

func (r *supportRequestRepository) Create(ctx context.Context, req *domain.SupportRequest) (string, error) {
	req.ID = uuid.New().String()
	query := `INSERT INTO support_requests (id, user_id, name, email, message, status, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.UserID, req.Name, req.Email, req.Message, req.Status, req.Timestamp)
	if err != nil {
		return "", domain.WrapUpstream("failed to create support request", err)
	}
	return req.ID, nil
}

func (r *supportRequestRepository) GetByID(ctx context.Context, id string) (*domain.SupportRequest, error) {
	req := &domain.SupportRequest{}
	query := `SELECT id, user_id, name, email, message, status, COALESCE(response, ''), timestamp, updated_at
	          FROM support_requests WHERE id = $1`
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.UserID, &req.Name,
		&req.Email, &req.Message, &req.Status, &req.Response, &req.Timestamp, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.E(domain.NotFound, "support request not found")
		}
		return nil, domain.WrapUpstream("failed to get support request", err)
	}
	if updatedAt.Valid {
		req.UpdatedAt = updatedAt.Time
	}
	return req, nil
}

func (r *supportRequestRepository) Update(ctx context.Context, id string, upd domain.RespondUpdate) error {
	return respondUpdate(ctx, r.db, "support_requests", "support request", id, upd)
}

// respondUpdate applies an admin response/status change to a ticket table.
func respondUpdate(ctx context.Context, db *sql.DB, table, what, id string, upd domain.RespondUpdate) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Response != nil {
		add("response", *upd.Response)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	updatedAt := upd.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	add("updated_at", updatedAt)
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, joinSets(sets), len(args))
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapUpstream("failed to update "+what, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.NotFound, what+" not found")
	}
	return nil
}
