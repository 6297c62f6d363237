package security

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/logger"
)

// FirebaseVerifier verifies Firebase ID tokens issued to the mobile clients.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return Identity{}, domain.E(domain.Unauthenticated, "invalid token")
	}
	email, _ := decoded.Claims["email"].(string)
	return Identity{UID: decoded.UID, Email: email}, nil
}

// Revoke deletes the Firebase auth user so the credential can no longer be
// exchanged for tokens.
func (v *FirebaseVerifier) Revoke(ctx context.Context, uid string) error {
	logger.ExternalServiceCall("firebase-auth", "DeleteUser", "uid", uid)
	err := v.client.DeleteUser(ctx, uid)
	logger.ExternalServiceResult("firebase-auth", "DeleteUser", err)
	if err != nil {
		return domain.WrapUpstream("failed to delete auth user", err)
	}
	return nil
}
