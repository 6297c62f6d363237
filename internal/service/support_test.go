package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/security"
)

func newTestSupportService(supportRepo *MockSupportRepo, issueRepo *MockIssueRepo, dispatcher *MockDispatcher) SupportService {
	return NewSupportService(supportRepo, issueRepo, security.NewAuthorizer(), dispatcher)
}

func TestSupportService_SubmitRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("OpensWithCallerEmailFallback", func(t *testing.T) {
		supportRepo := new(MockSupportRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestSupportService(supportRepo, new(MockIssueRepo), dispatcher)

		supportRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.SupportRequest) bool {
			return r.Status == domain.SupportStatusOpen && r.Email == "caller@example.com" && r.UserID == "u1"
		})).Return("sr-1", nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("domain.SupportRequestCreated")).Return(nil)

		p := security.Principal{UID: "u1", Email: "caller@example.com", Role: domain.RoleDonor}
		req, err := svc.SubmitRequest(ctx, p, CreateSupportRequestInput{Message: "cannot log in"})
		assert.NoError(t, err)
		assert.Equal(t, "sr-1", req.ID)
		dispatcher.AssertExpectations(t)
	})

	t.Run("EmptyMessageRejected", func(t *testing.T) {
		svc := newTestSupportService(new(MockSupportRepo), new(MockIssueRepo), new(MockDispatcher))
		p := security.Principal{UID: "u1", Role: domain.RoleDonor}
		_, err := svc.SubmitRequest(ctx, p, CreateSupportRequestInput{})
		assert.True(t, domain.IsKind(err, domain.InvalidArgument))
	})
}

func TestSupportService_RespondToRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminOnly", func(t *testing.T) {
		svc := newTestSupportService(new(MockSupportRepo), new(MockIssueRepo), new(MockDispatcher))
		p := security.Principal{UID: "u1", Role: domain.RoleDonor}
		err := svc.RespondToRequest(ctx, p, "sr-1", "on it", "")
		assert.True(t, domain.IsKind(err, domain.PermissionDenied))
	})

	t.Run("StatusChangeOutranksResponse", func(t *testing.T) {
		supportRepo := new(MockSupportRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestSupportService(supportRepo, new(MockIssueRepo), dispatcher)

		supportRepo.On("GetByID", ctx, "sr-1").
			Return(&domain.SupportRequest{ID: "sr-1", UserID: "u1", Status: domain.SupportStatusOpen}, nil)
		supportRepo.On("Update", ctx, "sr-1", mock.Anything).Return(nil)
		dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(e domain.Event) bool {
			changed, ok := e.(domain.SupportStatusChanged)
			return ok && changed.Request.Status == domain.SupportStatusResolved
		})).Return(nil)

		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		err := svc.RespondToRequest(ctx, p, "sr-1", "fixed it", domain.SupportStatusResolved)
		assert.NoError(t, err)
		dispatcher.AssertExpectations(t)
	})

	t.Run("ResponseOnlyDispatchesResponseEvent", func(t *testing.T) {
		supportRepo := new(MockSupportRepo)
		dispatcher := new(MockDispatcher)
		svc := newTestSupportService(supportRepo, new(MockIssueRepo), dispatcher)

		supportRepo.On("GetByID", ctx, "sr-1").
			Return(&domain.SupportRequest{ID: "sr-1", UserID: "u1", Status: domain.SupportStatusOpen}, nil)
		supportRepo.On("Update", ctx, "sr-1", mock.Anything).Return(nil)
		dispatcher.On("Dispatch", ctx, mock.AnythingOfType("domain.SupportResponded")).Return(nil)

		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		err := svc.RespondToRequest(ctx, p, "sr-1", "looking into it", "")
		assert.NoError(t, err)
		dispatcher.AssertExpectations(t)
	})

	t.Run("NoFieldsRejected", func(t *testing.T) {
		supportRepo := new(MockSupportRepo)
		svc := newTestSupportService(supportRepo, new(MockIssueRepo), new(MockDispatcher))
		supportRepo.On("GetByID", ctx, "sr-1").
			Return(&domain.SupportRequest{ID: "sr-1", Status: domain.SupportStatusOpen}, nil)

		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		err := svc.RespondToRequest(ctx, p, "sr-1", "", "")
		assert.True(t, domain.IsKind(err, domain.InvalidArgument))
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := newTestSupportService(new(MockSupportRepo), new(MockIssueRepo), new(MockDispatcher))
		p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
		err := svc.RespondToRequest(ctx, p, "sr-1", "", "escalated")
		assert.True(t, domain.IsKind(err, domain.InvalidArgument))
	})
}

func TestSupportService_SubmitIssue(t *testing.T) {
	ctx := context.Background()

	issueRepo := new(MockIssueRepo)
	dispatcher := new(MockDispatcher)
	svc := newTestSupportService(new(MockSupportRepo), issueRepo, dispatcher)

	issueRepo.On("Create", ctx, mock.MatchedBy(func(i *domain.Issue) bool {
		return i.Status == domain.IssueStatusUnresolved && i.UserID == "u1"
	})).Return("is-1", nil)
	dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(e domain.Event) bool {
		created, ok := e.(domain.IssueCreated)
		return ok && created.ReporterEmail == "u@example.com"
	})).Return(nil)

	p := security.Principal{UID: "u1", Email: "u@example.com", Role: domain.RoleDonor}
	issue, err := svc.SubmitIssue(ctx, p, CreateIssueInput{Description: "crash on upload", ImageURL: "http://x/img.png"})
	assert.NoError(t, err)
	assert.Equal(t, "is-1", issue.ID)
	dispatcher.AssertExpectations(t)
}

func TestSupportService_RespondToIssue(t *testing.T) {
	ctx := context.Background()

	issueRepo := new(MockIssueRepo)
	dispatcher := new(MockDispatcher)
	svc := newTestSupportService(new(MockSupportRepo), issueRepo, dispatcher)

	issueRepo.On("GetByID", ctx, "is-1").
		Return(&domain.Issue{ID: "is-1", UserID: "u1", Status: domain.IssueStatusUnresolved}, nil)
	issueRepo.On("Update", ctx, "is-1", mock.Anything).Return(nil)
	dispatcher.On("Dispatch", ctx, mock.MatchedBy(func(e domain.Event) bool {
		changed, ok := e.(domain.IssueStatusChanged)
		return ok && changed.PreviousStatus == domain.IssueStatusUnresolved
	})).Return(nil)

	p := security.Principal{UID: "admin-1", Role: domain.RoleAdministrator}
	err := svc.RespondToIssue(ctx, p, "is-1", "", domain.IssueStatusResolved)
	assert.NoError(t, err)
	dispatcher.AssertExpectations(t)
}
