package domain

import "encoding/json"

// Event is the closed union of domain events the dispatcher fans out.
// Each variant carries exactly the fields its notification template needs;
// the unexported marker keeps the set closed so a new event kind forces an
// exhaustive update of the dispatcher's switch.
type Event interface {
	// Kind returns the notification type tag recorded for the event.
	Kind() string
	isEvent()
}

type DonationCreated struct {
	Donation   Donation
	DonorEmail string
}

type DonationStatusChanged struct {
	Donation       Donation
	PreviousStatus string
}

type SupportRequestCreated struct {
	Request SupportRequest
}

type SupportStatusChanged struct {
	Request        SupportRequest
	PreviousStatus string
}

type SupportResponded struct {
	Request SupportRequest
}

type IssueCreated struct {
	Issue         Issue
	ReporterEmail string
}

type IssueStatusChanged struct {
	Issue          Issue
	PreviousStatus string
}

type IssueResponded struct {
	Issue Issue
}

type OrganizationRegistered struct {
	User User
}

type OrganizationStatusChanged struct {
	User           User
	PreviousStatus UserStatus
}

type DropoffReassigned struct {
	Donation Donation
}

type DirectMessage struct {
	RecipientID string
	Title       string
	Body        string
}

func (DonationCreated) Kind() string           { return NotifTypeDonationRequest }
func (DonationStatusChanged) Kind() string     { return NotifTypeDonationStatus }
func (SupportRequestCreated) Kind() string     { return NotifTypeSupportRequest }
func (SupportStatusChanged) Kind() string      { return NotifTypeSupportStatus }
func (SupportResponded) Kind() string          { return NotifTypeSupportResponse }
func (IssueCreated) Kind() string              { return NotifTypeIssueReport }
func (IssueStatusChanged) Kind() string        { return NotifTypeIssueStatus }
func (IssueResponded) Kind() string            { return NotifTypeIssueResponse }
func (OrganizationRegistered) Kind() string    { return NotifTypeUserRegistration }
func (OrganizationStatusChanged) Kind() string { return NotifTypeOrgRegistration }
func (DropoffReassigned) Kind() string         { return NotifTypeDropoffReassignment }
func (DirectMessage) Kind() string             { return NotifTypeMessage }

func (DonationCreated) isEvent()           {}
func (DonationStatusChanged) isEvent()     {}
func (SupportRequestCreated) isEvent()     {}
func (SupportStatusChanged) isEvent()      {}
func (SupportResponded) isEvent()          {}
func (IssueCreated) isEvent()              {}
func (IssueStatusChanged) isEvent()        {}
func (IssueResponded) isEvent()            {}
func (OrganizationRegistered) isEvent()    {}
func (OrganizationStatusChanged) isEvent() {}
func (DropoffReassigned) isEvent()         {}
func (DirectMessage) isEvent()             {}

// Change is the payload the hosting platform delivers when a watched record
// is created or updated. Before is empty for creates; snapshots are the raw
// document JSON for the named collection.
type Change struct {
	Collection string          `json:"collection"`
	DocumentID string          `json:"documentId"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after"`
}
