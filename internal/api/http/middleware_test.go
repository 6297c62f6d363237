package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/security"
)

func TestAuthMiddleware(t *testing.T) {
	newRequest := func(authHeader string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/uid-1", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		return req
	}

	t.Run("MissingHeader", func(t *testing.T) {
		mw := NewAuthMiddleware(new(MockVerifier), new(MockUserRepo))
		rec := httptest.NewRecorder()

		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, newRequest(""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		mw := NewAuthMiddleware(new(MockVerifier), new(MockUserRepo))
		rec := httptest.NewRecorder()

		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, newRequest("Basic abc123"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		verifier := new(MockVerifier)
		verifier.On("Verify", mock.Anything, "bad-token").
			Return(security.Identity{}, domain.E(domain.Unauthenticated, "invalid token"))

		mw := NewAuthMiddleware(verifier, new(MockUserRepo))
		rec := httptest.NewRecorder()

		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, newRequest("Bearer bad-token"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		verifier.AssertExpectations(t)
	})

	t.Run("ResolvesRoleFromProfile", func(t *testing.T) {
		verifier := new(MockVerifier)
		verifier.On("Verify", mock.Anything, "good-token").
			Return(security.Identity{UID: "uid-1", Email: "token@example.com"}, nil)

		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, "uid-1").
			Return(&domain.User{ID: "uid-1", Email: "profile@example.com", Role: domain.RoleAdministrator}, nil)

		mw := NewAuthMiddleware(verifier, userRepo)
		rec := httptest.NewRecorder()

		var got security.Principal
		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = principalFrom(r.Context())
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, newRequest("Bearer good-token"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "uid-1", got.UID)
		assert.Equal(t, domain.RoleAdministrator, got.Role)
		assert.Equal(t, "profile@example.com", got.Email)
	})

	t.Run("NoProfileYetPassesThrough", func(t *testing.T) {
		verifier := new(MockVerifier)
		verifier.On("Verify", mock.Anything, "fresh-token").
			Return(security.Identity{UID: "new-uid", Email: "new@example.com"}, nil)

		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, "new-uid").
			Return(nil, domain.E(domain.NotFound, "user not found"))

		mw := NewAuthMiddleware(verifier, userRepo)
		rec := httptest.NewRecorder()

		var got security.Principal
		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = principalFrom(r.Context())
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, newRequest("Bearer fresh-token"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.RoleNone, got.Role)
		assert.Equal(t, "new@example.com", got.Email)
	})

	t.Run("ProfileLookupFailureRejects", func(t *testing.T) {
		verifier := new(MockVerifier)
		verifier.On("Verify", mock.Anything, "good-token").
			Return(security.Identity{UID: "uid-1"}, nil)

		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, "uid-1").
			Return(nil, domain.WrapUpstream("db down", assert.AnError))

		mw := NewAuthMiddleware(verifier, userRepo)
		rec := httptest.NewRecorder()

		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, newRequest("Bearer good-token"))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
