package firestorerepo

import (
	"context"

	"cloud.google.com/go/firestore"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

type supportRequestRepository struct {
	client *firestore.Client
}

func NewSupportRequestRepository(client *firestore.Client) repository.SupportRequestRepository {
	return &supportRequestRepository{client: client}
}

func (r *supportRequestRepository) col() *firestore.CollectionRef {
	return r.client.Collection(supportRequestsCollection)
}

func (r *supportRequestRepository) Create(ctx context.Context, req *domain.SupportRequest) (string, error) {
	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, req); err != nil {
		return "", domain.WrapUpstream("failed to create support request", err)
	}
	req.ID = ref.ID
	return ref.ID, nil
}

func (r *supportRequestRepository) GetByID(ctx context.Context, id string) (*domain.SupportRequest, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapGetError(err, "support request")
	}
	var req domain.SupportRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, domain.WrapUpstream("failed to decode support request", err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

func (r *supportRequestRepository) Update(ctx context.Context, id string, upd domain.RespondUpdate) error {
	updates := respondUpdates(upd)
	if len(updates) == 0 {
		return nil
	}
	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		return mapGetError(err, "support request")
	}
	return nil
}

func respondUpdates(upd domain.RespondUpdate) []firestore.Update {
	var updates []firestore.Update
	if upd.Response != nil {
		updates = append(updates, firestore.Update{Path: "response", Value: *upd.Response})
	}
	if upd.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: *upd.Status})
	}
	if len(updates) > 0 && !upd.UpdatedAt.IsZero() {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: upd.UpdatedAt})
	}
	return updates
}
