package firestorerepo

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

type donationRepository struct {
	client *firestore.Client
}

func NewDonationRepository(client *firestore.Client) repository.DonationRepository {
	return &donationRepository{client: client}
}

func (r *donationRepository) col() *firestore.CollectionRef {
	return r.client.Collection(donationsCollection)
}

func (r *donationRepository) Create(ctx context.Context, d *domain.Donation) (string, error) {
	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, d); err != nil {
		return "", domain.WrapUpstream("failed to create donation", err)
	}
	d.ID = ref.ID
	return ref.ID, nil
}

func (r *donationRepository) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapGetError(err, "donation")
	}
	var d domain.Donation
	if err := snap.DataTo(&d); err != nil {
		return nil, domain.WrapUpstream("failed to decode donation", err)
	}
	d.ID = snap.Ref.ID
	return &d, nil
}

func (r *donationRepository) Update(ctx context.Context, id string, upd domain.DonationUpdate) error {
	updates := donationUpdates(upd)
	if len(updates) == 0 {
		return nil
	}
	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		return mapGetError(err, "donation")
	}
	return nil
}

func (r *donationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return domain.WrapUpstream("failed to delete donation", err)
	}
	return nil
}

func (r *donationRepository) List(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	q := r.col().Query
	if filter.UserID != "" {
		q = q.Where("userId", "==", filter.UserID)
	}
	if filter.OrgID != "" {
		q = q.Where("orgId", "==", filter.OrgID)
	}
	if !filter.From.IsZero() {
		q = q.Where("timestamp", ">=", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("timestamp", "<=", filter.To)
	}
	if filter.Search != "" {
		// Prefix scan over the item name. Firestore requires the first
		// ordering to match the inequality field.
		q = q.Where("item", ">=", filter.Search).
			Where("item", "<=", filter.Search+"").
			OrderBy("item", firestore.Asc)
	} else {
		q = q.OrderBy("timestamp", firestore.Desc)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var donations []domain.Donation
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.WrapUpstream("failed to list donations", err)
		}
		var d domain.Donation
		if err := snap.DataTo(&d); err != nil {
			return nil, domain.WrapUpstream("failed to decode donation", err)
		}
		d.ID = snap.Ref.ID
		donations = append(donations, d)
	}
	return donations, nil
}

func donationUpdates(upd domain.DonationUpdate) []firestore.Update {
	var updates []firestore.Update
	if upd.Item != nil {
		updates = append(updates, firestore.Update{Path: "item", Value: *upd.Item})
	}
	if upd.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *upd.Category})
	}
	if upd.Quantity != nil {
		updates = append(updates, firestore.Update{Path: "quantity", Value: *upd.Quantity})
	}
	if upd.DeliveryOption != nil {
		updates = append(updates, firestore.Update{Path: "deliveryOption", Value: *upd.DeliveryOption})
	}
	if upd.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *upd.Description})
	}
	if upd.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: *upd.Status})
	}
	if upd.LocationName != nil {
		updates = append(updates, firestore.Update{Path: "locationName", Value: *upd.LocationName})
	}
	if upd.LocationCoords != nil {
		updates = append(updates, firestore.Update{Path: "locationCoords", Value: *upd.LocationCoords})
	}
	if upd.ImageURL != nil {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: *upd.ImageURL})
	}
	if upd.RequiresAction != nil {
		updates = append(updates, firestore.Update{Path: "requiresAction", Value: *upd.RequiresAction})
	}
	if len(updates) > 0 {
		if upd.LastEditedBy != "" {
			updates = append(updates, firestore.Update{Path: "lastEditedBy", Value: upd.LastEditedBy})
		}
		if !upd.LastEditedAt.IsZero() {
			updates = append(updates, firestore.Update{Path: "lastEditedAt", Value: upd.LastEditedAt})
		}
	}
	return updates
}
