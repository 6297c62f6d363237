package http

import (
	"context"
	"net/http"
	"strings"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
)

type contextKey int

const principalKey contextKey = iota

// AuthMiddleware verifies the bearer credential and resolves the caller's
// role from their profile, once per request. A verified identity without a
// profile yet still passes through, with an empty role; the profile-creation
// endpoint depends on that.
type AuthMiddleware struct {
	verifier security.TokenVerifier
	userRepo repository.UserRepository
}

func NewAuthMiddleware(verifier security.TokenVerifier, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, userRepo: userRepo}
}

func (m *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeError(w, err)
			return
		}

		identity, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		p := security.Principal{UID: identity.UID, Email: identity.Email}
		user, err := m.userRepo.GetByID(r.Context(), identity.UID)
		switch {
		case err == nil:
			p.Role = user.Role
			if user.Email != "" {
				p.Email = user.Email
			}
		case domain.IsKind(err, domain.NotFound):
			// First request after signup: no profile yet.
		default:
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.E(domain.Unauthenticated, "missing authorization header")
	}
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return "", domain.E(domain.Unauthenticated, "malformed authorization header")
	}
	return header[7:], nil
}

// principalFrom returns the authenticated caller stored by AuthMiddleware.
func principalFrom(ctx context.Context) security.Principal {
	p, ok := ctx.Value(principalKey).(security.Principal)
	if !ok {
		logger.Error("handler reached without principal in context")
	}
	return p
}
