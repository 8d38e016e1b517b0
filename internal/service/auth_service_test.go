package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/community-hub/internal/config"
	"github.com/d60-Lab/community-hub/internal/repository"
)

func newAuthService(t *testing.T) AuthService {
	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "s3cret!", u.Password) // 明文不落库

	token, got, err := svc.Login(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	uid, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, uid)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "alice", "other@example.com", "pw")
	require.ErrorIs(t, err, ErrAlreadyExists)
	_, err = svc.Register(ctx, "alice2", "alice@example.com", "pw")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLoginBadCredential(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrBadCredential)
	_, _, err = svc.Login(ctx, "nobody", "pw")
	require.ErrorIs(t, err, ErrBadCredential)
}

func TestParseTokenRejectsForgedAndExpired(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ParseToken("not-a-token")
	require.ErrorIs(t, err, ErrForbidden)

	// 错误密钥签发的令牌
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(forged)
	require.ErrorIs(t, err, ErrForbidden)

	// 过期令牌
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(expired)
	require.ErrorIs(t, err, ErrForbidden)
}
