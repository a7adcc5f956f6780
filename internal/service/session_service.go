package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dronedata/internal/models"
	"dronedata/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL matches the one-day cookie lifetime.
const DefaultSessionTTL = 24 * time.Hour

// SessionClaims is the payload of the session cookie. The server-side
// session row stays authoritative; the signature only stops forged ids.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserID    int    `json:"uid"`
}

// SessionService persists sessions and signs the cookie values that reference them.
type SessionService struct {
	sessions repository.Sessions
	key      []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(repo repository.Sessions, key []byte, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{sessions: repo, key: key, ttl: ttl, now: time.Now}
}

// Issue creates a session for userID and returns the signed cookie value.
func (s *SessionService) Issue(ctx context.Context, userID int) (string, models.Session, error) {
	now := s.now().UTC().Truncate(time.Second)
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", models.Session{}, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sess.ID,
		UserID:    userID,
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", models.Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, sess, nil
}

// Resolve verifies the cookie value and loads the live session behind it.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	claims, err := s.parse(token, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	if sess.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}
	return sess, nil
}

// Revoke deletes the session referenced by token. Expired tokens can still be revoked.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

func (s *SessionService) parse(token string, opts ...jwt.ParserOption) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
