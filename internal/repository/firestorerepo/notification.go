package firestorerepo

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

type notificationRepository struct {
	client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) col() *firestore.CollectionRef {
	return r.client.Collection(notificationsCollection)
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) (string, error) {
	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, n); err != nil {
		return "", domain.WrapUpstream("failed to create notification", err)
	}
	n.ID = ref.ID
	return ref.ID, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, since time.Time) ([]domain.Notification, error) {
	q := r.col().Where("recipientId", "==", recipientID)
	if !since.IsZero() {
		q = q.Where("timestamp", ">=", since)
	}
	q = q.OrderBy("timestamp", firestore.Desc)

	it := q.Documents(ctx)
	defer it.Stop()

	var notes []domain.Notification
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.WrapUpstream("failed to list notifications", err)
		}
		var n domain.Notification
		if err := snap.DataTo(&n); err != nil {
			return nil, domain.WrapUpstream("failed to decode notification", err)
		}
		n.ID = snap.Ref.ID
		notes = append(notes, n)
	}
	return notes, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	return r.setFlag(ctx, id, recipientID, "read", true)
}

func (r *notificationRepository) SetStarred(ctx context.Context, id, recipientID string, starred bool) error {
	return r.setFlag(ctx, id, recipientID, "starred", starred)
}

// setFlag verifies ownership before flipping, so a recipient can never touch
// someone else's record. Reported as NotFound either way to avoid leaking
// existence.
func (r *notificationRepository) setFlag(ctx context.Context, id, recipientID, field string, value bool) error {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return mapGetError(err, "notification")
	}
	var n domain.Notification
	if err := snap.DataTo(&n); err != nil {
		return domain.WrapUpstream("failed to decode notification", err)
	}
	if n.RecipientID != recipientID {
		return domain.E(domain.NotFound, "notification not found")
	}
	if _, err := snap.Ref.Update(ctx, []firestore.Update{{Path: field, Value: value}}); err != nil {
		return domain.WrapUpstream("failed to update notification", err)
	}
	return nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	q := r.col().Where("read", "==", true).Where("timestamp", "<", cutoff)
	it := q.Documents(ctx)
	defer it.Stop()

	deleted := 0
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, domain.WrapUpstream("failed to scan notifications", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return deleted, domain.WrapUpstream("failed to delete notification", err)
		}
		deleted++
	}
	return deleted, nil
}
