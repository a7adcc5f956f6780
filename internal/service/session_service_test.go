package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-session-secret")

func newTestSessionService(t *testing.T, now time.Time) (*SessionService, *fakeSessions) {
	t.Helper()
	repo := newFakeSessions()
	s := NewSessionService(repo, testKey, time.Hour)
	s.now = func() time.Time { return now }
	return s, repo
}

func TestSessionService_IssueAndResolve(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, repo := newTestSessionService(t, now)
	ctx := context.Background()

	token, sess, err := s.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 42, sess.UserID)
	assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)
	assert.Equal(t, 1, repo.count())

	got, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, 42, got.UserID)
}

func TestSessionService_DefaultTTL(t *testing.T) {
	s := NewSessionService(newFakeSessions(), testKey, 0)
	assert.Equal(t, DefaultSessionTTL, s.ttl)
}

func TestSessionService_IssueStoreError(t *testing.T) {
	s, repo := newTestSessionService(t, time.Now())
	repo.createErr = errors.New("disk full")

	token, _, err := s.Issue(context.Background(), 1)
	require.Error(t, err)
	assert.Empty(t, token)
}

func TestSessionService_ResolveRejects(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestSessionService(t, now)
	ctx := context.Background()

	token, sess, err := s.Issue(ctx, 7)
	require.NoError(t, err)

	otherKey, _ := newTestSessionService(t, now)
	otherKey.key = []byte("another-secret")
	foreign, _, err := otherKey.Issue(ctx, 7)
	require.NoError(t, err)

	wrongUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		SessionID:        sess.ID,
		UserID:           8,
	}).SignedString(testKey)
	require.NoError(t, err)

	unknownSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		SessionID:        "does-not-exist",
		UserID:           7,
	}).SignedString(testKey)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{
		SessionID: sess.ID,
		UserID:    7,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not-a-token", ErrInvalidToken},
		{"empty", "", ErrInvalidToken},
		{"signed with another key", foreign, ErrInvalidToken},
		{"alg none", unsigned, ErrInvalidToken},
		{"uid does not match session", wrongUser, ErrInvalidToken},
		{"session row missing", unknownSession, ErrSessionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Resolve(ctx, tc.token)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, got)
		})
	}

	// the genuine token still resolves
	_, err = s.Resolve(ctx, token)
	assert.NoError(t, err)
}

func TestSessionService_ResolveExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestSessionService(t, now)
	ctx := context.Background()

	token, _, err := s.Issue(ctx, 1)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Revoke(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, repo := newTestSessionService(t, now)
	ctx := context.Background()

	token, _, err := s.Issue(ctx, 1)
	require.NoError(t, err)

	// an expired cookie can still log out
	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	require.NoError(t, s.Revoke(ctx, token))
	assert.Equal(t, 0, repo.count())

	s.now = func() time.Time { return now }
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, s.Revoke(ctx, "junk"), ErrInvalidToken)
}
