// Package auth resolves the current user from a signed access token.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// Authenticator answers "who is the current user". Session implements it;
// the upload pipeline depends on it.
type Authenticator interface {
	CurrentUser(ctx context.Context) (models.User, error)
}

var _ Authenticator = (*Session)(nil)

// GenerateToken mints an HS256 access token for userID.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// GetUserIDFromToken validates tokenString and returns its user id.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// Session holds the access token of the signed-in user and resolves it on
// every CurrentUser call, so an expired token is noticed at submit time.
type Session struct {
	mu        sync.RWMutex
	token     string
	secretKey []byte
}

func NewSession(secretKey string) *Session {
	return &Session{secretKey: []byte(secretKey)}
}

// SignIn validates token and stores it for later lookups.
func (s *Session) SignIn(token string) (models.User, error) {
	id, err := GetUserIDFromToken(token, s.secretKey)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return models.User{ID: id}, nil
}

// SignOut forgets the stored token.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// CurrentUser returns common.ErrUnauthenticated when nobody is signed in or
// the stored token no longer validates.
func (s *Session) CurrentUser(_ context.Context) (models.User, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return models.User{}, common.ErrUnauthenticated
	}

	id, err := GetUserIDFromToken(token, s.secretKey)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}
	return models.User{ID: id}, nil
}
