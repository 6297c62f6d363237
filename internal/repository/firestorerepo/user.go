package firestorerepo

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) col() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	// Users are keyed by their auth uid, not an auto-id.
	if _, err := r.col().Doc(u.ID).Set(ctx, u); err != nil {
		return domain.WrapUpstream("failed to create user", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapGetError(err, "user")
	}
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, domain.WrapUpstream("failed to decode user", err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, id string, upd domain.UserUpdate) error {
	updates := userUpdates(upd)
	if len(updates) == 0 {
		return nil
	}
	if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
		return mapGetError(err, "user")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return domain.WrapUpstream("failed to delete user", err)
	}
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.query(ctx, r.col().Where("role", "==", string(role)))
}

func (r *userRepository) ListByRoleAndStatus(ctx context.Context, role domain.Role, status domain.UserStatus) ([]domain.User, error) {
	q := r.col().Where("role", "==", string(role)).Where("status", "==", string(status))
	return r.query(ctx, q)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.query(ctx, r.col().Query)
}

func (r *userRepository) query(ctx context.Context, q firestore.Query) ([]domain.User, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var users []domain.User
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.WrapUpstream("failed to list users", err)
		}
		var u domain.User
		if err := snap.DataTo(&u); err != nil {
			return nil, domain.WrapUpstream("failed to decode user", err)
		}
		u.ID = snap.Ref.ID
		users = append(users, u)
	}
	return users, nil
}

func userUpdates(upd domain.UserUpdate) []firestore.Update {
	var updates []firestore.Update
	if upd.Role != nil {
		updates = append(updates, firestore.Update{Path: "role", Value: string(*upd.Role)})
	}
	if upd.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*upd.Status)})
	}
	if upd.NotificationsEnabled != nil {
		updates = append(updates, firestore.Update{Path: "notificationsEnabled", Value: *upd.NotificationsEnabled})
	}
	if upd.EmailNotifications != nil {
		updates = append(updates, firestore.Update{Path: "emailNotifications", Value: *upd.EmailNotifications})
	}
	if upd.PushToken != nil {
		updates = append(updates, firestore.Update{Path: "fcmToken", Value: *upd.PushToken})
	}
	if upd.ProfileImageURL != nil {
		updates = append(updates, firestore.Update{Path: "profileImageUrl", Value: *upd.ProfileImageURL})
	}
	if upd.Location != nil {
		updates = append(updates, firestore.Update{Path: "location", Value: *upd.Location})
	}
	if len(updates) > 0 && !upd.UpdatedAt.IsZero() {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: upd.UpdatedAt})
	}
	return updates
}
