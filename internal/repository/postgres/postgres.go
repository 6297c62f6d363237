// Package postgres implements the directory store on PostgreSQL for
// self-hosted deployments that do not use Firebase.
package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"givehub-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.DonationRepository
	repository.SupportRequestRepository
	repository.IssueRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		DonationRepository:       NewDonationRepository(db),
		SupportRequestRepository: NewSupportRequestRepository(db),
		IssueRepository:          NewIssueRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
	}
}
