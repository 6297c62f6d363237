package domain

import "time"

const (
	DonationStatusPending   = "pending"
	DonationStatusAccepted  = "accepted"
	DonationStatusPickedUp  = "picked up"
	DonationStatusDelivered = "delivered"
	DonationStatusRejected  = "rejected"
)

// Donation is owned by exactly one of UserID (a Donor) or OrgID (an
// Organization), never both.
type Donation struct {
	ID             string    `json:"id" firestore:"-"`
	Item           string    `json:"item" firestore:"item"`
	Category       string    `json:"category" firestore:"category"`
	Quantity       int       `json:"quantity" firestore:"quantity"`
	DeliveryOption string    `json:"deliveryOption" firestore:"deliveryOption"`
	Description    string    `json:"description,omitempty" firestore:"description,omitempty"`
	Status         string    `json:"status" firestore:"status"`
	UserID         string    `json:"userId,omitempty" firestore:"userId,omitempty"`
	OrgID          string    `json:"orgId,omitempty" firestore:"orgId,omitempty"`
	LocationName   string    `json:"locationName,omitempty" firestore:"locationName,omitempty"`
	LocationCoords *GeoPoint `json:"locationCoords,omitempty" firestore:"locationCoords,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	RequiresAction bool      `json:"requiresAction,omitempty" firestore:"requiresAction,omitempty"`
	Timestamp      time.Time `json:"timestamp" firestore:"timestamp"`
	LastEditedBy   string    `json:"lastEditedBy,omitempty" firestore:"lastEditedBy,omitempty"`
	LastEditedAt   time.Time `json:"lastEditedAt,omitempty" firestore:"lastEditedAt,omitempty"`
}

// OwnerID returns the uid of whichever party owns the donation.
func (d *Donation) OwnerID() string {
	if d.UserID != "" {
		return d.UserID
	}
	return d.OrgID
}

// ValidOwnership reports whether exactly one owning id is set.
func (d *Donation) ValidOwnership() bool {
	return (d.UserID == "") != (d.OrgID == "")
}

// DonationUpdate is a partial-merge update; nil fields are left untouched.
type DonationUpdate struct {
	Item           *string
	Category       *string
	Quantity       *int
	DeliveryOption *string
	Description    *string
	Status         *string
	LocationName   *string
	LocationCoords *GeoPoint
	ImageURL       *string
	RequiresAction *bool
	LastEditedBy   string
	LastEditedAt   time.Time
}

func (u DonationUpdate) Empty() bool {
	return u.Item == nil && u.Category == nil && u.Quantity == nil &&
		u.DeliveryOption == nil && u.Description == nil && u.Status == nil &&
		u.LocationName == nil && u.LocationCoords == nil && u.ImageURL == nil &&
		u.RequiresAction == nil
}

// DonationFilter narrows donation listings. Zero values mean "no constraint";
// role scoping is decided by the authorizer before the filter reaches a
// repository.
type DonationFilter struct {
	UserID string
	OrgID  string
	Search string // item name prefix
	From   time.Time
	To     time.Time
}
