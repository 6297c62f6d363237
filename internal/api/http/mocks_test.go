package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/security"
	"givehub-backend/internal/service"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (security.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(security.Identity), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, id string, upd domain.UserUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) ListByRoleAndStatus(ctx context.Context, role domain.Role, status domain.UserStatus) ([]domain.User, error) {
	args := m.Called(ctx, role, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, p security.Principal, id string) (*domain.User, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, p security.Principal, in service.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, p security.Principal, id string, upd domain.UserUpdate) error {
	return m.Called(ctx, p, id, upd).Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, p security.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, p security.Principal, since time.Time) ([]domain.Notification, error) {
	args := m.Called(ctx, p, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, p security.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockNotificationService) SetStarred(ctx context.Context, p security.Principal, id string, starred bool) error {
	return m.Called(ctx, p, id, starred).Error(0)
}

func (m *MockNotificationService) SendDirect(ctx context.Context, p security.Principal, recipientID, title, body string) error {
	return m.Called(ctx, p, recipientID, title, body).Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockDispatcher) HandleChange(ctx context.Context, change domain.Change) error {
	return m.Called(ctx, change).Error(0)
}
