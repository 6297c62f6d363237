package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

type issueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) repository.IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) (string, error) {
	issue.ID = uuid.New().String()
	query := `INSERT INTO issues (id, user_id, description, image_url, status, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		issue.ID, issue.UserID, issue.Description, nullString(issue.ImageURL),
		issue.Status, issue.Timestamp)
	if err != nil {
		return "", domain.WrapUpstream("failed to create issue", err)
	}
	return issue.ID, nil
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	issue := &domain.Issue{}
	query := `SELECT id, user_id, description, COALESCE(image_url, ''), status, COALESCE(response, ''), timestamp, updated_at
	          FROM issues WHERE id = $1`
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&issue.ID, &issue.UserID,
		&issue.Description, &issue.ImageURL, &issue.Status, &issue.Response,
		&issue.Timestamp, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.E(domain.NotFound, "issue not found")
		}
		return nil, domain.WrapUpstream("failed to get issue", err)
	}
	if updatedAt.Valid {
		issue.UpdatedAt = updatedAt.Time
	}
	return issue, nil
}

func (r *issueRepository) Update(ctx context.Context, id string, upd domain.RespondUpdate) error {
	return respondUpdate(ctx, r.db, "issues", "issue", id, upd)
}
