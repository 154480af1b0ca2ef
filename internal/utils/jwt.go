package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
)

// SessionTokenManager issues and verifies the signed session token
// carried in the auth-token cookie. Tokens are self-contained user
// snapshots; there is no server-side revocation.
type SessionTokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewSessionTokenManager creates a new session token manager
func NewSessionTokenManager(secret string, expiry time.Duration) *SessionTokenManager {
	return &SessionTokenManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue signs a fresh token for the given user snapshot with a new
// expiry. Called at login, registration, and profile completion.
func (m *SessionTokenManager) Issue(user *domain.User) (string, error) {
	now := time.Now()

	claims := domain.SnapshotOf(user)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded
// snapshot. Any failure (malformed token, bad signature, expired)
// comes back as an error the caller treats as unauthenticated.
func (m *SessionTokenManager) Verify(tokenString string) (*domain.SessionClaims, error) {
	claims := &domain.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("missing user_id in session token")
	}

	if claims.IsExpired() {
		return nil, fmt.Errorf("session token is expired")
	}

	return claims, nil
}

// ExpirySeconds returns the token lifetime in seconds
func (m *SessionTokenManager) ExpirySeconds() int {
	return int(m.expiry.Seconds())
}
