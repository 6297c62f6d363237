package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/security"
	"givehub-backend/internal/service"
)

// testRouter wires the full route table with mocked auth and services, the
// way the server wires real ones.
type testRouter struct {
	router        http.Handler
	verifier      *MockVerifier
	userRepo      *MockUserRepo
	users         *MockUserService
	notifications *MockNotificationService
	dispatcher    *MockDispatcher
}

func newTestRouter() *testRouter {
	tr := &testRouter{
		verifier:      new(MockVerifier),
		userRepo:      new(MockUserRepo),
		users:         new(MockUserService),
		notifications: new(MockNotificationService),
		dispatcher:    new(MockDispatcher),
	}
	tr.router = NewRouter(RouterDeps{
		Verifier:      tr.verifier,
		UserRepo:      tr.userRepo,
		Users:         tr.users,
		Notifications: tr.notifications,
		Dispatcher:    tr.dispatcher,
		TriggerSecret: "trigger-secret",
		MaxImageBytes: 1 << 20,
	})
	return tr
}

// loginAs primes the verifier and profile lookup for a caller.
func (tr *testRouter) loginAs(uid, email string, role domain.Role) {
	tr.verifier.On("Verify", mock.Anything, "test-token").
		Return(security.Identity{UID: uid, Email: email}, nil)
	if role == domain.RoleNone {
		tr.userRepo.On("GetByID", mock.Anything, uid).
			Return(nil, domain.E(domain.NotFound, "user not found"))
		return
	}
	tr.userRepo.On("GetByID", mock.Anything, uid).
		Return(&domain.User{ID: uid, Email: email, Role: role}, nil)
}

func (tr *testRouter) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()
	tr.router.ServeHTTP(rec, req)
	return rec
}

func TestUserRoutes(t *testing.T) {
	t.Run("GetUser", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("admin-1", "admin@example.com", domain.RoleAdministrator)
		tr.users.On("GetUser", mock.Anything,
			security.Principal{UID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdministrator},
			"uid-2").
			Return(&domain.User{ID: "uid-2", Email: "donor@example.com", Role: domain.RoleDonor}, nil)

		rec := tr.do(http.MethodGet, "/api/v1/users/uid-2", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var got domain.User
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "uid-2", got.ID)
		tr.users.AssertExpectations(t)
	})

	t.Run("CreateUserWithoutProfile", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("new-uid", "new@example.com", domain.RoleNone)
		tr.users.On("CreateUser", mock.Anything, mock.Anything,
			service.CreateUserInput{UID: "new-uid", Email: "new@example.com", Role: domain.RoleDonor}).
			Return(&domain.User{ID: "new-uid", Email: "new@example.com", Role: domain.RoleDonor}, nil)

		rec := tr.do(http.MethodPost, "/api/v1/users", `{"role":"Donor"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		tr.users.AssertExpectations(t)
	})

	t.Run("UpdateMapsFCMToken", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("uid-1", "donor@example.com", domain.RoleDonor)
		tr.users.On("UpdateUser", mock.Anything, mock.Anything, "uid-1",
			mock.MatchedBy(func(upd domain.UserUpdate) bool {
				return upd.PushToken != nil && *upd.PushToken == "new-token" && upd.Role == nil
			})).
			Return(nil)

		rec := tr.do(http.MethodPut, "/api/v1/users/uid-1", `{"fcmToken":"new-token"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		tr.users.AssertExpectations(t)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("uid-1", "donor@example.com", domain.RoleDonor)

		rec := tr.do(http.MethodPut, "/api/v1/users/uid-1", `{"fcm_token":"typo"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		tr.users.AssertNotCalled(t, "UpdateUser")
	})

	t.Run("PermissionDeniedMapsTo403", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("uid-1", "donor@example.com", domain.RoleDonor)
		tr.users.On("DeleteUser", mock.Anything, mock.Anything, "uid-2").
			Return(domain.E(domain.PermissionDenied, "administrator role required"))

		rec := tr.do(http.MethodDelete, "/api/v1/users/uid-2", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("NoTokenRejected", func(t *testing.T) {
		tr := newTestRouter()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/uid-1", nil)
		rec := httptest.NewRecorder()
		tr.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestNotificationRoutes(t *testing.T) {
	t.Run("ListWithSince", func(t *testing.T) {
		since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

		tr := newTestRouter()
		tr.loginAs("uid-1", "donor@example.com", domain.RoleDonor)
		tr.notifications.On("ListNotifications", mock.Anything, mock.Anything, since).
			Return([]domain.Notification{{ID: "n1", RecipientID: "uid-1"}}, nil)

		rec := tr.do(http.MethodGet, "/api/v1/notifications?since=2025-05-01T00:00:00Z", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var notes []domain.Notification
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&notes))
		assert.Len(t, notes, 1)
	})

	t.Run("BadSinceRejected", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("uid-1", "donor@example.com", domain.RoleDonor)

		rec := tr.do(http.MethodGet, "/api/v1/notifications?since=yesterday", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		tr.notifications.AssertNotCalled(t, "ListNotifications")
	})

	t.Run("EmptyListReturnsArray", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("uid-1", "donor@example.com", domain.RoleDonor)
		tr.notifications.On("ListNotifications", mock.Anything, mock.Anything, time.Time{}).
			Return(nil, nil)

		rec := tr.do(http.MethodGet, "/api/v1/notifications", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("MarkRead", func(t *testing.T) {
		tr := newTestRouter()
		tr.loginAs("uid-1", "donor@example.com", domain.RoleDonor)
		tr.notifications.On("MarkRead", mock.Anything, mock.Anything, "n1").Return(nil)

		rec := tr.do(http.MethodPut, "/api/v1/notifications/n1/read", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		tr.notifications.AssertExpectations(t)
	})
}
