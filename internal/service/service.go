package service

import (
	"context"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/security"
)

// Dispatcher is the single choke point translating domain events into push
// deliveries and durable notification records.
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.Event) error
	// HandleChange resolves a before/after snapshot pair into at most one
	// event and dispatches it. No watched field changed means no event.
	HandleChange(ctx context.Context, change domain.Change) error
}

type CreateUserInput struct {
	UID   string
	Email string
	Role  domain.Role
}

type UserService interface {
	GetUser(ctx context.Context, p security.Principal, id string) (*domain.User, error)
	CreateUser(ctx context.Context, p security.Principal, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, p security.Principal, id string, upd domain.UserUpdate) error
	DeleteUser(ctx context.Context, p security.Principal, id string) error
}

type CreateDonationInput struct {
	Item           string
	Category       string
	Quantity       int
	DeliveryOption string
	Description    string
	LocationName   string
	LocationCoords *domain.GeoPoint
	ImageURL       string
}

type DonationService interface {
	ListDonations(ctx context.Context, p security.Principal, orgID, search string) ([]domain.Donation, error)
	CreateDonation(ctx context.Context, p security.Principal, in CreateDonationInput) (*domain.Donation, error)
	UpdateDonation(ctx context.Context, p security.Principal, id string, upd domain.DonationUpdate) error
	DeleteDonation(ctx context.Context, p security.Principal, id string) error
	// ReassignDropoff flags the donation for donor action and notifies the
	// donor; the donor's approval round-trip happens client-side.
	ReassignDropoff(ctx context.Context, p security.Principal, id, locationName string, coords *domain.GeoPoint) error
}

type CreateSupportRequestInput struct {
	Name    string
	Email   string
	Message string
}

type CreateIssueInput struct {
	Description string
	ImageURL    string
}

type SupportService interface {
	SubmitRequest(ctx context.Context, p security.Principal, in CreateSupportRequestInput) (*domain.SupportRequest, error)
	RespondToRequest(ctx context.Context, p security.Principal, id, response, status string) error
	SubmitIssue(ctx context.Context, p security.Principal, in CreateIssueInput) (*domain.Issue, error)
	RespondToIssue(ctx context.Context, p security.Principal, id, response, status string) error
}

type NotificationService interface {
	ListNotifications(ctx context.Context, p security.Principal, since time.Time) ([]domain.Notification, error)
	MarkRead(ctx context.Context, p security.Principal, id string) error
	SetStarred(ctx context.Context, p security.Principal, id string, starred bool) error
	// SendDirect pushes an ad-hoc message to one recipient (admin use).
	SendDirect(ctx context.Context, p security.Principal, recipientID, title, body string) error
}

type ReportFilter struct {
	Category string
	From     time.Time
	To       time.Time
}

type ReportService interface {
	DonationReport(ctx context.Context, p security.Principal, filter ReportFilter) (*domain.Report, error)
}

type ImageService interface {
	// UploadImage stores image bytes and returns a public URL. Kind is
	// "profile" or "donation"; profile uploads also update the uploader's
	// profile image URL.
	UploadImage(ctx context.Context, p security.Principal, kind string, data []byte) (string, error)
}

type EmailService interface {
	SendNotificationEmail(ctx context.Context, to, subject, body string) error
	SendPendingOrganizationsDigest(ctx context.Context, to string, orgs []domain.User) error
}
