package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/security"
)

func newTestDonationService(repo *MockDonationRepo, dispatcher *MockDispatcher) DonationService {
	return NewDonationService(repo, security.NewAuthorizer(), dispatcher)
}

func TestDonationService_ListDonations(t *testing.T) {
	ctx := context.Background()

	t.Run("DonorScopedToOwn", func(t *testing.T) {
		repo := new(MockDonationRepo)
		svc := newTestDonationService(repo, new(MockDispatcher))

		repo.On("List", ctx, domain.DonationFilter{UserID: "donor-1", Search: "rice"}).
			Return([]domain.Donation{{ID: "d1"}}, nil)

		p := security.Principal{UID: "donor-1", Role: domain.RoleDonor}
		donations, err := svc.ListDonations(ctx, p, "ignored-org", "rice")
		assert.NoError(t, err)
		assert.Len(t, donations, 1)
	})

	t.Run("OrganizationSeesRequestedOrg", func(t *testing.T) {
		repo := new(MockDonationRepo)
		svc := newTestDonationService(repo, new(MockDispatcher))

		repo.On("List", ctx, domain.DonationFilter{OrgID: "org-9"}).
			Return([]domain.Donation{}, nil)

		p := security.Principal{UID: "org-1", Role: domain.RoleOrganization}
		_, err := svc.ListDonations(ctx, p, "org-9", "")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("NoRoleDenied", func(t *testing.T) {
		svc := newTestDonationService(new(MockDonationRepo), new(MockDispatcher))
		p := security.Principal{UID: "u1"}
		_, err := svc.ListDonations(ctx, p, "", "")
		assert.True(t, domain.IsKind(err, domain.PermissionDenied))
	})
}

func TestDonationService_CreateDonation(t *testing.T) {
	ctx := context.Background()

	t.Run("DonorOwnsViaUserID", func(t *testing.T) {
		repo := new(MockDonationRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestDonationService(repo, dispatcher)

		repo.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return d.UserID == "donor-1" && d.OrgID == "" && d.Status == domain.DonationStatusPending
		})).Return("don-1", nil)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(e domain.Event) bool {
			created, ok := e.(domain.DonationCreated)
			return ok && created.DonorEmail == "donor@example.com" && created.Donation.ID == "don-1"
		})).Return(nil)

		p := security.Principal{UID: "donor-1", Email: "donor@example.com", Role: domain.RoleDonor}
		d, err := svc.CreateDonation(ctx, p, CreateDonationInput{Item: "Rice", Category: "Food", Quantity: 2})
		assert.NoError(t, err)
		assert.True(t, d.ValidOwnership())
		dispatcher.AssertExpectations(t)
	})

	t.Run("OrganizationOwnsViaOrgID", func(t *testing.T) {
		repo := new(MockDonationRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestDonationService(repo, dispatcher)

		repo.On("Create", ctx, mock.MatchedBy(func(d *domain.Donation) bool {
			return d.OrgID == "org-1" && d.UserID == ""
		})).Return("don-2", nil)
		dispatcher.On("Dispatch", ctx, mock.Anything).Return(nil)

		p := security.Principal{UID: "org-1", Role: domain.RoleOrganization}
		d, err := svc.CreateDonation(ctx, p, CreateDonationInput{Item: "Desks", Category: "Furniture", Quantity: 5})
		assert.NoError(t, err)
		assert.Equal(t, "org-1", d.OwnerID())
	})

	t.Run("DispatchFailureDoesNotFailCreate", func(t *testing.T) {
		repo := new(MockDonationRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestDonationService(repo, dispatcher)

		repo.On("Create", ctx, mock.Anything).Return("don-3", nil)
		dispatcher.On("Dispatch", ctx, mock.Anything).
			Return(domain.E(domain.Upstream, "fcm unavailable"))

		p := security.Principal{UID: "donor-1", Role: domain.RoleDonor}
		_, err := svc.CreateDonation(ctx, p, CreateDonationInput{Item: "Rice", Category: "Food", Quantity: 1})
		assert.NoError(t, err)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := newTestDonationService(new(MockDonationRepo), new(MockDispatcher))
		p := security.Principal{UID: "donor-1", Role: domain.RoleDonor}

		_, err := svc.CreateDonation(ctx, p, CreateDonationInput{Category: "Food", Quantity: 1})
		assert.True(t, domain.IsKind(err, domain.InvalidArgument))

		_, err = svc.CreateDonation(ctx, p, CreateDonationInput{Item: "Rice", Category: "Food"})
		assert.True(t, domain.IsKind(err, domain.InvalidArgument))
	})

	t.Run("AdminCannotCreate", func(t *testing.T) {
		svc := newTestDonationService(new(MockDonationRepo), new(MockDispatcher))
		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		_, err := svc.CreateDonation(ctx, p, CreateDonationInput{Item: "Rice", Category: "Food", Quantity: 1})
		assert.True(t, domain.IsKind(err, domain.PermissionDenied))
	})
}

func TestDonationService_UpdateDonation(t *testing.T) {
	ctx := context.Background()

	t.Run("StatusChangeDispatches", func(t *testing.T) {
		repo := new(MockDonationRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestDonationService(repo, dispatcher)

		repo.On("GetByID", ctx, "don-1").
			Return(&domain.Donation{ID: "don-1", OrgID: "org-1", Status: domain.DonationStatusPending}, nil)
		repo.On("Update", ctx, "don-1", mock.Anything).Return(nil)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(e domain.Event) bool {
			changed, ok := e.(domain.DonationStatusChanged)
			return ok && changed.PreviousStatus == domain.DonationStatusPending &&
				changed.Donation.Status == domain.DonationStatusAccepted
		})).Return(nil)

		status := domain.DonationStatusAccepted
		p := security.Principal{UID: "org-1", Role: domain.RoleOrganization}
		err := svc.UpdateDonation(ctx, p, "don-1", domain.DonationUpdate{Status: &status})
		assert.NoError(t, err)
		dispatcher.AssertExpectations(t)
	})

	t.Run("NonOwnerDenied", func(t *testing.T) {
		repo := new(MockDonationRepo)
		svc := newTestDonationService(repo, new(MockDispatcher))

		repo.On("GetByID", ctx, "don-1").
			Return(&domain.Donation{ID: "don-1", UserID: "donor-1"}, nil)

		qty := 3
		p := security.Principal{UID: "donor-2", Role: domain.RoleDonor}
		err := svc.UpdateDonation(ctx, p, "don-1", domain.DonationUpdate{Quantity: &qty})
		assert.True(t, domain.IsKind(err, domain.PermissionDenied))
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := newTestDonationService(new(MockDonationRepo), new(MockDispatcher))
		status := "teleported"
		p := security.Principal{UID: "org-1", Role: domain.RoleOrganization}
		err := svc.UpdateDonation(ctx, p, "don-1", domain.DonationUpdate{Status: &status})
		assert.True(t, domain.IsKind(err, domain.InvalidArgument))
	})
}

func TestDonationService_ReassignDropoff(t *testing.T) {
	ctx := context.Background()

	t.Run("FlagsAndNotifiesDonor", func(t *testing.T) {
		repo := new(MockDonationRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestDonationService(repo, dispatcher)

		repo.On("GetByID", ctx, "don-1").
			Return(&domain.Donation{ID: "don-1", Item: "Rice", UserID: "donor-1"}, nil)
		repo.On("Update", ctx, "don-1", mock.MatchedBy(func(u domain.DonationUpdate) bool {
			return u.RequiresAction != nil && *u.RequiresAction &&
				u.LocationName != nil && *u.LocationName == "North Depot"
		})).Return(nil)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(e domain.Event) bool {
			reassigned, ok := e.(domain.DropoffReassigned)
			return ok && reassigned.Donation.RequiresAction
		})).Return(nil)

		p := security.Principal{UID: "org-1", Role: domain.RoleOrganization}
		err := svc.ReassignDropoff(ctx, p, "don-1", "North Depot", &domain.GeoPoint{Latitude: 40, Longitude: -74})
		assert.NoError(t, err)
		dispatcher.AssertExpectations(t)
	})

	t.Run("DonorCannotReassign", func(t *testing.T) {
		svc := newTestDonationService(new(MockDonationRepo), new(MockDispatcher))
		p := security.Principal{UID: "donor-1", Role: domain.RoleDonor}
		err := svc.ReassignDropoff(ctx, p, "don-1", "North Depot", nil)
		assert.True(t, domain.IsKind(err, domain.PermissionDenied))
	})
}
