// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziver-app/ziver-backend/internal/config"
	"github.com/ziver-app/ziver-backend/internal/core"
)

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privateKeyPath := filepath.Join(dir, "jwt_private.pem")
	publicKeyPath := filepath.Join(dir, "jwt_public.pem")
	require.NoError(t, GenerateKeyPair(privateKeyPath, publicKeyPath))

	mgr, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privateKeyPath,
		PublicKeyPath:     publicKeyPath,
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "ziver-api",
		Audience:          "ziver-app",
	})
	require.NoError(t, err)

	return mgr
}

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := newTestJWTManager(t)

	token, err := mgr.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-1",
		Role:         "user",
		TokenVersion: 2,
	})
	require.NoError(t, err)

	claims, err := mgr.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, 2, claims.TokenVersion)

	// The verified claims carry what revocation needs: the token ID to
	// key the blacklist entry and the expiry to bound its TTL.
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(
		t,
		time.Now().Add(15*time.Minute),
		claims.ExpiresAt,
		time.Minute,
	)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	mgr := newTestJWTManager(t)

	_, err := mgr.VerifyAccessToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	signer := newTestJWTManager(t)
	verifier := newTestJWTManager(t)

	token, err := signer.CreateAccessToken(AccessTokenClaims{
		UserID:       "user-1",
		Role:         "user",
		TokenVersion: 1,
	})
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestRevokeAccessToken_SkipsExpiredToken(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	// An already-expired token needs no blacklist entry; no redis call
	// is made.
	err := svc.RevokeAccessToken(
		context.Background(),
		"jti-1",
		time.Now().Add(-time.Minute),
	)
	assert.NoError(t, err)
}

func TestRevokeAccessToken_SkipsEmptyTokenID(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	err := svc.RevokeAccessToken(
		context.Background(),
		"",
		time.Now().Add(time.Hour),
	)
	assert.NoError(t, err)
}
