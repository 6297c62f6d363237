package security

import (
	"context"

	"givehub-backend/internal/domain"
)

// Identity is the verified output of a bearer credential, before any role
// resolution.
type Identity struct {
	UID   string
	Email string
}

// Principal is the authenticated caller of an operation. Role comes from the
// caller's User record, fetched once per request; a missing record leaves
// RoleNone.
type Principal struct {
	UID   string
	Email string
	Role  domain.Role
}

// TokenVerifier turns a bearer credential into an Identity. Verification
// failure must be reported as Unauthenticated.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// CredentialRevoker removes the auth credential behind a uid; used when an
// administrator deletes a user.
type CredentialRevoker interface {
	Revoke(ctx context.Context, uid string) error
}

// NoopRevoker is used in local auth mode, where there is no identity
// provider to revoke against.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(ctx context.Context, uid string) error { return nil }
