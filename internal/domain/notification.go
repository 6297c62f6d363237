package domain

import "time"

// Notification type tags, one per triggering event.
const (
	NotifTypeDonationRequest     = "donation_request"
	NotifTypeDonationStatus      = "donation"
	NotifTypeSupportRequest      = "support_request"
	NotifTypeSupportStatus       = "support_status_change"
	NotifTypeSupportResponse     = "support_response"
	NotifTypeIssueReport         = "issue_report"
	NotifTypeIssueStatus         = "issue_status_change"
	NotifTypeIssueResponse       = "issue_response"
	NotifTypeUserRegistration    = "user_registration"
	NotifTypeOrgRegistration     = "org_registration"
	NotifTypeDropoffReassignment = "dropoff_reassignment"
	NotifTypeMessage             = "message"
)

// Notification is the durable in-app record of a delivered (or attempted)
// push. Append-only: after creation only Read and Starred flip, and only by
// the recipient.
type Notification struct {
	ID          string    `json:"id" firestore:"-"`
	RecipientID string    `json:"recipientId" firestore:"recipientId"`
	Title       string    `json:"title" firestore:"title"`
	Message     string    `json:"message" firestore:"message"`
	Type        string    `json:"type" firestore:"type"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
	Read        bool      `json:"read" firestore:"read"`
	Starred     bool      `json:"starred" firestore:"starred"`

	// Event-specific payload, carried as structured fields rather than
	// concatenated into the message.
	DonorEmail string `json:"donorEmail,omitempty" firestore:"donorEmail,omitempty"`
	DonationID string `json:"donationId,omitempty" firestore:"donationId,omitempty"`
}
