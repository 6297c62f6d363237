package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, role, status, notifications_enabled, email_notifications,
	COALESCE(push_token, ''), COALESCE(profile_image_url, ''), latitude, longitude, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, role, status, notifications_enabled, email_notifications, push_token, profile_image_url, latitude, longitude, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	var lat, lng sql.NullFloat64
	if u.Location != nil {
		lat = sql.NullFloat64{Float64: u.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: u.Location.Longitude, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, string(u.Role), string(u.Status), u.NotificationsEnabled,
		u.EmailNotifications, nullString(u.PushToken), nullString(u.ProfileImageURL),
		lat, lng, u.CreatedAt)
	if err != nil {
		return domain.WrapUpstream("failed to create user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.E(domain.NotFound, "user not found")
		}
		return nil, domain.WrapUpstream("failed to get user", err)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, id string, upd domain.UserUpdate) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Role != nil {
		add("role", string(*upd.Role))
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.NotificationsEnabled != nil {
		add("notifications_enabled", *upd.NotificationsEnabled)
	}
	if upd.EmailNotifications != nil {
		add("email_notifications", *upd.EmailNotifications)
	}
	if upd.PushToken != nil {
		add("push_token", nullString(*upd.PushToken))
	}
	if upd.ProfileImageURL != nil {
		add("profile_image_url", nullString(*upd.ProfileImageURL))
	}
	if upd.Location != nil {
		add("latitude", upd.Location.Latitude)
		add("longitude", upd.Location.Longitude)
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

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", joinSets(sets), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapUpstream("failed to update user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.NotFound, "user not found")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.WrapUpstream("failed to delete user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.NotFound, "user not found")
	}
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at`
	return r.queryUsers(ctx, query, string(role))
}

func (r *userRepository) ListByRoleAndStatus(ctx context.Context, role domain.Role, status domain.UserStatus) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 AND status = $2 ORDER BY created_at`
	return r.queryUsers(ctx, query, string(role), string(status))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	return r.queryUsers(ctx, query)
}

func (r *userRepository) queryUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	logger.Debug("→ Database call", "operation", "SELECT", "query", "users")
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapUpstream("failed to list users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.WrapUpstream("failed to scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapUpstream("failed to iterate users", err)
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var role, status string
	var lat, lng sql.NullFloat64
	var updatedAt sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &role, &status, &u.NotificationsEnabled,
		&u.EmailNotifications, &u.PushToken, &u.ProfileImageURL, &lat, &lng,
		&u.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	if lat.Valid && lng.Valid {
		u.Location = &domain.GeoPoint{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.Time
	}
	return u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func joinSets(sets []string) string {
	out := ""
	for i, s := range sets {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
