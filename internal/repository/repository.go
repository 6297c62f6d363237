package repository

import (
	"context"
	"time"

	"givehub-backend/internal/domain"
)

// The directory store: one interface per watched collection. Implementations
// return domain.NotFound for absent documents and domain.Upstream for
// datastore failures so callers never see driver-specific errors.

type UserRepository interface {
	// Create stores a user under its pre-assigned auth uid.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, upd domain.UserUpdate) error
	Delete(ctx context.Context, id string) error
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	ListByRoleAndStatus(ctx context.Context, role domain.Role, status domain.UserStatus) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type DonationRepository interface {
	// Create assigns a fresh id and returns it.
	Create(ctx context.Context, d *domain.Donation) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Donation, error)
	Update(ctx context.Context, id string, upd domain.DonationUpdate) error
	Delete(ctx context.Context, id string) error
	// List returns donations matching the filter, newest first.
	List(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error)
}

type SupportRequestRepository interface {
	Create(ctx context.Context, req *domain.SupportRequest) (string, error)
	GetByID(ctx context.Context, id string) (*domain.SupportRequest, error)
	Update(ctx context.Context, id string, upd domain.RespondUpdate) error
}

type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	Update(ctx context.Context, id string, upd domain.RespondUpdate) error
}

type NotificationRepository interface {
	// Create assigns a fresh id; records never contend since each dispatch
	// writes under a new key.
	Create(ctx context.Context, n *domain.Notification) (string, error)
	// ListByRecipient returns the recipient's notifications, newest first,
	// optionally bounded below by since.
	ListByRecipient(ctx context.Context, recipientID string, since time.Time) ([]domain.Notification, error)
	// MarkRead flips the read flag; fails NotFound unless the record belongs
	// to recipientID.
	MarkRead(ctx context.Context, id, recipientID string) error
	SetStarred(ctx context.Context, id, recipientID string, starred bool) error
	// DeleteReadBefore removes read records older than cutoff, returning the
	// number removed.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error)
}
