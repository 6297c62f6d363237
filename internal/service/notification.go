package service

import (
	"context"
	"time"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
)

type notificationService struct {
	noteRepo   repository.NotificationRepository
	authz      *security.Authorizer
	dispatcher Dispatcher
}

func NewNotificationService(
	noteRepo repository.NotificationRepository,
	authz *security.Authorizer,
	dispatcher Dispatcher,
) NotificationService {
	return &notificationService{
		noteRepo:   noteRepo,
		authz:      authz,
		dispatcher: dispatcher,
	}
}

// ListNotifications returns only the caller's own records; there is no
// cross-recipient read, not even for administrators.
func (s *notificationService) ListNotifications(ctx context.Context, p security.Principal, since time.Time) ([]domain.Notification, error) {
	return s.noteRepo.ListByRecipient(ctx, p.UID, since)
}

func (s *notificationService) MarkRead(ctx context.Context, p security.Principal, id string) error {
	return s.noteRepo.MarkRead(ctx, id, p.UID)
}

func (s *notificationService) SetStarred(ctx context.Context, p security.Principal, id string, starred bool) error {
	return s.noteRepo.SetStarred(ctx, id, p.UID, starred)
}

// SendDirect is the admin broadcast path. Unlike the mutation services,
// dispatch failure here is the operation failing, so it propagates.
func (s *notificationService) SendDirect(ctx context.Context, p security.Principal, recipientID, title, body string) error {
	if err := s.authz.RequireAdmin(p); err != nil {
		return err
	}
	if recipientID == "" || title == "" || body == "" {
		return domain.E(domain.InvalidArgument, "recipientId, title and body are required")
	}
	return s.dispatcher.Dispatch(ctx, domain.DirectMessage{
		RecipientID: recipientID,
		Title:       title,
		Body:        body,
	})
}
