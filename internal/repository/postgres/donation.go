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

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

const donationColumns = `id, item, category, quantity, delivery_option, COALESCE(description, ''),
	status, COALESCE(user_id, ''), COALESCE(org_id, ''), COALESCE(location_name, ''),
	latitude, longitude, COALESCE(image_url, ''), requires_action, timestamp,
	COALESCE(last_edited_by, ''), last_edited_at`

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) (string, error) {
	d.ID = uuid.New().String()
	query := `INSERT INTO donations (id, item, category, quantity, delivery_option, description, status, user_id, org_id, location_name, latitude, longitude, image_url, requires_action, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	var lat, lng sql.NullFloat64
	if d.LocationCoords != nil {
		lat = sql.NullFloat64{Float64: d.LocationCoords.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: d.LocationCoords.Longitude, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Item, d.Category, d.Quantity, d.DeliveryOption, nullString(d.Description),
		d.Status, nullString(d.UserID), nullString(d.OrgID), nullString(d.LocationName),
		lat, lng, nullString(d.ImageURL), d.RequiresAction, d.Timestamp)
	if err != nil {
		return "", domain.WrapUpstream("failed to create donation", err)
	}
	return d.ID, nil
}

func (r *donationRepository) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.E(domain.NotFound, "donation not found")
		}
		return nil, domain.WrapUpstream("failed to get donation", err)
	}
	return d, nil
}

func (r *donationRepository) Update(ctx context.Context, id string, upd domain.DonationUpdate) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Item != nil {
		add("item", *upd.Item)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
	}
	if upd.DeliveryOption != nil {
		add("delivery_option", *upd.DeliveryOption)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.LocationName != nil {
		add("location_name", *upd.LocationName)
	}
	if upd.LocationCoords != nil {
		add("latitude", upd.LocationCoords.Latitude)
		add("longitude", upd.LocationCoords.Longitude)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if upd.RequiresAction != nil {
		add("requires_action", *upd.RequiresAction)
	}
	if len(sets) == 0 {
		return nil
	}
	if upd.LastEditedBy != "" {
		add("last_edited_by", upd.LastEditedBy)
	}
	editedAt := upd.LastEditedAt
	if editedAt.IsZero() {
		editedAt = time.Now().UTC()
	}
	add("last_edited_at", editedAt)
	args = append(args, id)

	query := fmt.Sprintf("UPDATE donations SET %s WHERE id = $%d", joinSets(sets), len(args))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapUpstream("failed to update donation", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.NotFound, "donation not found")
	}
	return nil
}

func (r *donationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return domain.WrapUpstream("failed to delete donation", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.NotFound, "donation not found")
	}
	return nil
}

func (r *donationRepository) List(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations`
	var where []string
	var args []any
	cond := func(expr string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(expr, len(args)))
	}
	if filter.UserID != "" {
		cond("user_id = $%d", filter.UserID)
	}
	if filter.OrgID != "" {
		cond("org_id = $%d", filter.OrgID)
	}
	if filter.Search != "" {
		cond("item LIKE $%d", filter.Search+"%")
	}
	if !filter.From.IsZero() {
		cond("timestamp >= $%d", filter.From)
	}
	if !filter.To.IsZero() {
		cond("timestamp <= $%d", filter.To)
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " ORDER BY timestamp DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.WrapUpstream("failed to list donations", err)
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, domain.WrapUpstream("failed to scan donation", err)
		}
		donations = append(donations, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapUpstream("failed to iterate donations", err)
	}
	return donations, nil
}

func scanDonation(row rowScanner) (*domain.Donation, error) {
	d := &domain.Donation{}
	var lat, lng sql.NullFloat64
	var lastEditedAt sql.NullTime
	err := row.Scan(&d.ID, &d.Item, &d.Category, &d.Quantity, &d.DeliveryOption,
		&d.Description, &d.Status, &d.UserID, &d.OrgID, &d.LocationName,
		&lat, &lng, &d.ImageURL, &d.RequiresAction, &d.Timestamp,
		&d.LastEditedBy, &lastEditedAt)
	if err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		d.LocationCoords = &domain.GeoPoint{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	if lastEditedAt.Valid {
		d.LastEditedAt = lastEditedAt.Time
	}
	return d, nil
}
