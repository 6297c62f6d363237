package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/push"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, id string, upd domain.UserUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRoleAndStatus(ctx context.Context, role domain.Role, status domain.UserStatus) ([]domain.User, error) {
	args := m.Called(ctx, role, status)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockDonationRepo
type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) Create(ctx context.Context, d *domain.Donation) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}
func (m *MockDonationRepo) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}
func (m *MockDonationRepo) Update(ctx context.Context, id string, upd domain.DonationUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}
func (m *MockDonationRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDonationRepo) List(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Donation), args.Error(1)
}

// MockSupportRepo
type MockSupportRepo struct {
	mock.Mock
}

func (m *MockSupportRepo) Create(ctx context.Context, req *domain.SupportRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *MockSupportRepo) GetByID(ctx context.Context, id string) (*domain.SupportRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportRequest), args.Error(1)
}
func (m *MockSupportRepo) Update(ctx context.Context, id string, upd domain.RespondUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

// MockIssueRepo
type MockIssueRepo struct {
	mock.Mock
}

func (m *MockIssueRepo) Create(ctx context.Context, issue *domain.Issue) (string, error) {
	args := m.Called(ctx, issue)
	return args.String(0), args.Error(1)
}
func (m *MockIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}
func (m *MockIssueRepo) Update(ctx context.Context, id string, upd domain.RespondUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) (string, error) {
	args := m.Called(ctx, n)
	return args.String(0), args.Error(1)
}
func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, since time.Time) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID, since)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}
func (m *MockNotificationRepo) SetStarred(ctx context.Context, id, recipientID string, starred bool) error {
	args := m.Called(ctx, id, recipientID, starred)
	return args.Error(0)
}
func (m *MockNotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

// MockSender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, token string, msg push.Message) error {
	args := m.Called(ctx, token, msg)
	return args.Error(0)
}
func (m *MockSender) SendMulticast(ctx context.Context, tokens []string, msg push.Message) ([]error, error) {
	args := m.Called(ctx, tokens, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]error), args.Error(1)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockDispatcher) HandleChange(ctx context.Context, change domain.Change) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendNotificationEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingOrganizationsDigest(ctx context.Context, to string, orgs []domain.User) error {
	args := m.Called(ctx, to, orgs)
	return args.Error(0)
}
