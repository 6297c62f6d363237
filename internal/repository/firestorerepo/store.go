// Package firestorerepo implements the directory store on Cloud Firestore,
// the datastore the mobile clients share with this backend.
package firestorerepo

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
)

const (
	usersCollection           = "users"
	donationsCollection       = "donations"
	supportRequestsCollection = "support_requests"
	issuesCollection          = "issues"
	notificationsCollection   = "notifications"
)

type Store struct {
	client *firestore.Client
	repository.UserRepository
	repository.DonationRepository
	repository.SupportRequestRepository
	repository.IssueRepository
	repository.NotificationRepository
}

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:                   client,
		UserRepository:           NewUserRepository(client),
		DonationRepository:       NewDonationRepository(client),
		SupportRequestRepository: NewSupportRequestRepository(client),
		IssueRepository:          NewIssueRepository(client),
		NotificationRepository:   NewNotificationRepository(client),
	}
}

// mapGetError converts Firestore lookup failures into the domain taxonomy.
func mapGetError(err error, what string) error {
	if status.Code(err) == codes.NotFound {
		return domain.E(domain.NotFound, what+" not found")
	}
	return domain.WrapUpstream("firestore get failed", err)
}
