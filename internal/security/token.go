package security

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"givehub-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UserClaims defines the claims carried by locally-issued tokens.
type UserClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// LocalTokenManager issues and verifies HS256 tokens for deployments running
// without Firebase (development and integration testing). The uid rides in
// the Subject claim.
type LocalTokenManager struct {
	secret []byte
}

func NewLocalTokenManager(secret string) *LocalTokenManager {
	return &LocalTokenManager{secret: []byte(secret)}
}

func (m *LocalTokenManager) Generate(uid, email string, ttl time.Duration) (string, error) {
	claims := UserClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "givehub-local",
			Audience:  jwt.ClaimStrings{"api-access"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify implements TokenVerifier.
func (m *LocalTokenManager) Verify(ctx context.Context, tokenString string) (Identity, error) {
	claims, err := m.validate(tokenString)
	if err != nil {
		return Identity{}, domain.E(domain.Unauthenticated, "invalid token")
	}
	return Identity{UID: claims.Subject, Email: claims.Email}, nil
}

func (m *LocalTokenManager) validate(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid && claims.Subject != "" {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
