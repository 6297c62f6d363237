package domain

import "time"

const (
	SupportStatusOpen     = "open"
	SupportStatusResolved = "resolved"

	IssueStatusUnresolved = "unresolved"
	IssueStatusResolved   = "resolved"
)

// SupportRequest is a help ticket submitted by any authenticated user.
// Status and Response are mutated only by administrators.
type SupportRequest struct {
	ID        string    `json:"id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Message   string    `json:"message" firestore:"message"`
	Status    string    `json:"status" firestore:"status"`
	Response  string    `json:"response,omitempty" firestore:"response,omitempty"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// Issue is a problem report, optionally with a screenshot.
type Issue struct {
	ID          string    `json:"id" firestore:"-"`
	UserID      string    `json:"userId" firestore:"userId"`
	Description string    `json:"description" firestore:"description"`
	ImageURL    string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Status      string    `json:"status" firestore:"status"`
	Response    string    `json:"response,omitempty" firestore:"response,omitempty"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// RespondUpdate carries an administrator's reply to a support request or
// issue; at least one of Response/Status must be set.
type RespondUpdate struct {
	Response  *string
	Status    *string
	UpdatedAt time.Time
}

func (u RespondUpdate) Empty() bool {
	return u.Response == nil && u.Status == nil
}
