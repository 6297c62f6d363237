package domain

import "time"

type Role string

const (
	RoleNone          Role = ""
	RoleDonor         Role = "Donor"
	RoleOrganization  Role = "Organization"
	RoleAdministrator Role = "Administrator"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleDonor, RoleOrganization, RoleAdministrator:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserStatusPending, UserStatusApproved, UserStatusRejected:
		return true
	}
	return false
}

// GeoPoint is a latitude/longitude pair stored alongside users and donations.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

type User struct {
	ID                   string     `json:"id" firestore:"-"`
	Email                string     `json:"email" firestore:"email"`
	Role                 Role       `json:"role" firestore:"role"`
	Status               UserStatus `json:"status" firestore:"status"`
	NotificationsEnabled bool       `json:"notificationsEnabled" firestore:"notificationsEnabled"`
	EmailNotifications   bool       `json:"emailNotifications" firestore:"emailNotifications"`
	PushToken            string     `json:"fcmToken,omitempty" firestore:"fcmToken,omitempty"`
	ProfileImageURL      string     `json:"profileImageUrl,omitempty" firestore:"profileImageUrl,omitempty"`
	Location             *GeoPoint  `json:"location,omitempty" firestore:"location,omitempty"`
	CreatedAt            time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// DefaultStatus returns the signup status for a role. Organizations wait for
// an administrator's approval; everyone else is active immediately.
func DefaultStatus(role Role) UserStatus {
	if role == RoleOrganization {
		return UserStatusPending
	}
	return UserStatusApproved
}

// UserUpdate is a partial-merge update; nil fields are left untouched.
type UserUpdate struct {
	Role                 *Role
	Status               *UserStatus
	NotificationsEnabled *bool
	EmailNotifications   *bool
	PushToken            *string
	ProfileImageURL      *string
	Location             *GeoPoint
	UpdatedAt            time.Time
}

func (u UserUpdate) Empty() bool {
	return u.Role == nil && u.Status == nil && u.NotificationsEnabled == nil &&
		u.EmailNotifications == nil && u.PushToken == nil && u.ProfileImageURL == nil &&
		u.Location == nil
}
