package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/security"
)

func TestNotificationService_ListIsRecipientScoped(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(MockNotificationRepo)
	svc := NewNotificationService(noteRepo, security.NewAuthorizer(), new(MockDispatcher))

	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	noteRepo.On("ListByRecipient", ctx, "u1", since).
		Return([]domain.Notification{{ID: "n1", RecipientID: "u1"}}, nil)

	p := security.Principal{UID: "u1", Role: domain.RoleDonor}
	notes, err := svc.ListNotifications(ctx, p, since)
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestNotificationService_FlagsUseCallerAsRecipient(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(MockNotificationRepo)
	svc := NewNotificationService(noteRepo, security.NewAuthorizer(), new(MockDispatcher))

	noteRepo.On("MarkRead", ctx, "n1", "u1").Return(nil)
	noteRepo.On("SetStarred", ctx, "n1", "u1", true).Return(nil)

	p := security.Principal{UID: "u1", Role: domain.RoleDonor}
	assert.NoError(t, svc.MarkRead(ctx, p, "n1"))
	assert.NoError(t, svc.SetStarred(ctx, p, "n1", true))
	noteRepo.AssertExpectations(t)
}

func TestNotificationService_SendDirect(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminOnly", func(t *testing.T) {
		svc := NewNotificationService(new(MockNotificationRepo), security.NewAuthorizer(), new(MockDispatcher))
		p := security.Principal{UID: "u1", Role: domain.RoleOrganization}
		err := svc.SendDirect(ctx, p, "u2", "Hi", "there")
		assert.True(t, domain.IsKind(err, domain.PermissionDenied))
	})

	t.Run("DispatchErrorPropagates", func(t *testing.T) {
		dispatcher := new(MockDispatcher)
		svc := NewNotificationService(new(MockNotificationRepo), security.NewAuthorizer(), dispatcher)

		dispatcher.On("Dispatch", ctx, domain.DirectMessage{RecipientID: "u2", Title: "Hi", Body: "there"}).
			Return(domain.E(domain.Upstream, "fcm unavailable"))

		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		err := svc.SendDirect(ctx, p, "u2", "Hi", "there")
		assert.True(t, domain.IsKind(err, domain.Upstream))
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewNotificationService(new(MockNotificationRepo), security.NewAuthorizer(), new(MockDispatcher))
		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		err := svc.SendDirect(ctx, p, "", "Hi", "there")
		assert.True(t, domain.IsKind(err, domain.InvalidArgument))
	})
}

func TestReportService_DonationReport(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminOnly", func(t *testing.T) {
		svc := NewReportService(new(MockUserRepo), new(MockDonationRepo), security.NewAuthorizer())
		p := security.Principal{UID: "u1", Role: domain.RoleDonor}
		_, err := svc.DonationReport(ctx, p, ReportFilter{})
		assert.True(t, domain.IsKind(err, domain.PermissionDenied))
	})

	t.Run("AggregatesByCategoryAndDay", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		donationRepo := new(MockDonationRepo)
		svc := NewReportService(userRepo, donationRepo, security.NewAuthorizer())

		userRepo.On("ListByRole", ctx, domain.RoleDonor).Return([]domain.User{{ID: "d1"}, {ID: "d2"}}, nil)
		userRepo.On("ListByRole", ctx, domain.RoleOrganization).Return([]domain.User{{ID: "o1"}}, nil)

		day1 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
		day2 := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
		donationRepo.On("List", ctx, mock.Anything).Return([]domain.Donation{
			{ID: "a", Category: "Food", Timestamp: day1},
			{ID: "b", Category: "Food", Timestamp: day1},
			{ID: "c", Category: "Clothing", Timestamp: day2},
		}, nil)

		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		report, err := svc.DonationReport(ctx, p, ReportFilter{})
		assert.NoError(t, err)
		assert.Equal(t, 2, report.TotalDonors)
		assert.Equal(t, 1, report.TotalOrganizations)
		assert.Equal(t, 3, report.TotalDonations)
		assert.Equal(t, 2, report.CategoryCounts["Food"])
		assert.Equal(t, []domain.DailyCount{
			{Date: "2025-05-01", Count: 2},
			{Date: "2025-05-02", Count: 1},
		}, report.DonationData)
	})

	t.Run("CategoryFilter", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		donationRepo := new(MockDonationRepo)
		svc := NewReportService(userRepo, donationRepo, security.NewAuthorizer())

		userRepo.On("ListByRole", ctx, domain.RoleDonor).Return([]domain.User{}, nil)
		userRepo.On("ListByRole", ctx, domain.RoleOrganization).Return([]domain.User{}, nil)
		donationRepo.On("List", ctx, mock.Anything).Return([]domain.Donation{
			{ID: "a", Category: "Food", Timestamp: time.Now()},
			{ID: "b", Category: "Clothing", Timestamp: time.Now()},
		}, nil)

		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		report, err := svc.DonationReport(ctx, p, ReportFilter{Category: "Food"})
		assert.NoError(t, err)
		assert.Equal(t, 1, report.TotalDonations)
		assert.Equal(t, 0, report.CategoryCounts["Clothing"])
	})
}
