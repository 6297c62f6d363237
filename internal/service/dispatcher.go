package service

import (
	"context"
	"fmt"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/push"
	"givehub-backend/internal/repository"
)

type dispatcherService struct {
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	sender      push.Sender
	emailSvc    EmailService // nil when email delivery is disabled
	pushTimeout time.Duration
	now         func() time.Time
}

func NewDispatcher(
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	sender push.Sender,
	emailSvc EmailService,
	pushTimeout time.Duration,
) Dispatcher {
	return &dispatcherService{
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		sender:      sender,
		emailSvc:    emailSvc,
		pushTimeout: pushTimeout,
		now:         time.Now,
	}
}

// Dispatch resolves the recipient set for the event, delivers pushes, and
// persists one notification record per eligible recipient. Per-recipient
// failures are logged and never abort the remaining recipients; the record
// write happens whether or not the push went through.
func (s *dispatcherService) Dispatch(ctx context.Context, event domain.Event) error {
	recipients, err := s.recipients(ctx, event)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	content := render(event)

	// Per-recipient opt-in: a disabled or token-less recipient gets nothing,
	// not even a stored record.
	var eligible []*domain.User
	for _, id := range recipients {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			// A missing recipient aborts only that recipient.
			logger.Warn("skipping notification recipient", "recipientID", id, "error", err)
			continue
		}
		if !user.NotificationsEnabled || user.PushToken == "" {
			logger.Debug("recipient opted out of notifications", "recipientID", id)
			continue
		}
		eligible = append(eligible, user)
	}
	if len(eligible) == 0 {
		return nil
	}

	s.deliver(ctx, eligible, content)

	for _, user := range eligible {
		note := &domain.Notification{
			RecipientID: user.ID,
			Title:       content.title,
			Message:     content.message,
			Type:        event.Kind(),
			Timestamp:   s.now().UTC(),
			DonorEmail:  content.donorEmail,
			DonationID:  content.donationID,
		}
		if _, err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Error("failed to store notification record", "recipientID", user.ID, "type", note.Type, "error", err)
		}
	}

	if s.emailSvc != nil {
		for _, user := range eligible {
			if !user.EmailNotifications || user.Email == "" {
				continue
			}
			if err := s.emailSvc.SendNotificationEmail(ctx, user.Email, content.title, content.body); err != nil {
				logger.Warn("failed to send notification email", "recipientID", user.ID, "error", err)
			}
		}
	}

	return nil
}

// deliver pushes the rendered content to every eligible token, batching when
// the channel supports it. Failures are logged per token.
func (s *dispatcherService) deliver(ctx context.Context, eligible []*domain.User, content rendered) {
	ctx, cancel := context.WithTimeout(ctx, s.pushTimeout)
	defer cancel()

	msg := push.Message{Title: content.title, Body: content.body, Data: content.data()}

	if len(eligible) == 1 {
		if err := s.sender.Send(ctx, eligible[0].PushToken, msg); err != nil {
			logger.Warn("push delivery failed", "recipientID", eligible[0].ID, "error", err)
		}
		return
	}

	tokens := make([]string, len(eligible))
	for i, u := range eligible {
		tokens[i] = u.PushToken
	}
	outcomes, err := s.sender.SendMulticast(ctx, tokens, msg)
	if err != nil {
		logger.Warn("multicast push delivery failed", "recipients", len(tokens), "error", err)
		return
	}
	for i, outcome := range outcomes {
		if outcome != nil {
			logger.Warn("push delivery failed", "recipientID", eligible[i].ID, "error", outcome)
		}
	}
}

// recipients resolves the deduplicated recipient set for an event.
// Administrator membership is queried fresh on every dispatch; it changes
// between calls and must never be cached in process state.
func (s *dispatcherService) recipients(ctx context.Context, event domain.Event) ([]string, error) {
	switch e := event.(type) {
	case domain.DonationCreated:
		return s.adminIDs(ctx)
	case domain.DonationStatusChanged:
		return dedupe(e.Donation.OwnerID()), nil
	case domain.SupportRequestCreated:
		return s.adminIDs(ctx)
	case domain.SupportStatusChanged:
		return dedupe(e.Request.UserID), nil
	case domain.SupportResponded:
		return dedupe(e.Request.UserID), nil
	case domain.IssueCreated:
		return s.adminIDs(ctx)
	case domain.IssueStatusChanged:
		return dedupe(e.Issue.UserID), nil
	case domain.IssueResponded:
		return dedupe(e.Issue.UserID), nil
	case domain.OrganizationRegistered:
		if e.User.Role != domain.RoleOrganization || e.User.Status != domain.UserStatusPending {
			return nil, nil
		}
		return s.adminIDs(ctx)
	case domain.OrganizationStatusChanged:
		return dedupe(e.User.ID), nil
	case domain.DropoffReassigned:
		return dedupe(e.Donation.UserID), nil
	case domain.DirectMessage:
		return dedupe(e.RecipientID), nil
	default:
		return nil, domain.Ef(domain.InvalidArgument, "unknown event kind %q", event.Kind())
	}
}

func (s *dispatcherService) adminIDs(ctx context.Context) ([]string, error) {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdministrator)
	if err != nil {
		return nil, domain.WrapUpstream("failed to resolve administrators", err)
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	return dedupe(ids...), nil
}

func dedupe(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// rendered is the human-readable projection of an event. message is what
// lands in the stored record; for most kinds it equals the push body.
type rendered struct {
	title      string
	body       string
	message    string
	kind       string
	donorEmail string
	donationID string
}

func (r rendered) data() map[string]string {
	data := map[string]string{"type": r.kind}
	if r.donationID != "" {
		data["donationId"] = r.donationID
	}
	if r.donorEmail != "" {
		data["donorEmail"] = r.donorEmail
	}
	return data
}

func render(event domain.Event) rendered {
	r := rendered{kind: event.Kind()}
	switch e := event.(type) {
	case domain.DonationCreated:
		r.title = "New Donation Request"
		r.body = fmt.Sprintf("%s created a donation request for %s (%s).", e.DonorEmail, e.Donation.Item, e.Donation.Category)
		r.message = fmt.Sprintf("%s donated %s (%s) - Quantity: %d", e.DonorEmail, e.Donation.Item, e.Donation.Category, e.Donation.Quantity)
		r.donorEmail = e.DonorEmail
		r.donationID = e.Donation.ID
	case domain.DonationStatusChanged:
		r.title = "Donation Status Updated"
		r.body = fmt.Sprintf("Your donation of %d %s has been %s.", e.Donation.Quantity, e.Donation.Category, e.Donation.Status)
		r.donationID = e.Donation.ID
	case domain.SupportRequestCreated:
		r.title = "New Support Request"
		r.body = fmt.Sprintf("Support request from %s: %s", e.Request.Email, preview(e.Request.Message))
	case domain.SupportStatusChanged:
		r.title = "Support Request Updated"
		r.body = fmt.Sprintf("Your support request status changed to %s.", e.Request.Status)
	case domain.SupportResponded:
		r.title = "New Support Response"
		r.body = fmt.Sprintf("Admin responded to your support request: %s", preview(e.Request.Response))
	case domain.IssueCreated:
		r.title = "New Problem Report"
		r.body = fmt.Sprintf("Problem reported by %s: %s", e.ReporterEmail, preview(e.Issue.Description))
	case domain.IssueStatusChanged:
		r.title = "Issue Status Updated"
		r.body = fmt.Sprintf("Your reported issue status changed to %s.", e.Issue.Status)
	case domain.IssueResponded:
		r.title = "New Issue Response"
		r.body = fmt.Sprintf("Admin responded to your issue: %s", preview(e.Issue.Response))
	case domain.OrganizationRegistered:
		r.title = "New Organization Registration"
		r.body = fmt.Sprintf("Organization %s has registered and is pending approval.", e.User.Email)
	case domain.OrganizationStatusChanged:
		r.title = "Organization Status Updated"
		r.body = fmt.Sprintf("Your organization has been %s.", e.User.Status)
	case domain.DropoffReassigned:
		r.title = "Dropoff Location Changed"
		r.body = fmt.Sprintf("The dropoff for your donation of %s has been reassigned. Please review the new location.", e.Donation.Item)
		r.donationID = e.Donation.ID
	case domain.DirectMessage:
		r.title = e.Title
		r.body = e.Body
	}
	if r.message == "" {
		r.message = r.body
	}
	return r
}

const previewLen = 50

// preview truncates free text for push bodies the way the mobile clients
// expect: first 50 characters plus an ellipsis.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) > previewLen {
		runes = runes[:previewLen]
	}
	return string(runes) + "..."
}
