package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/infrastructure/memory"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

func newTokenService(refreshTTL time.Duration) (*TokenService, *CredentialStore) {
	jwt := helpers.NewJWTManager("test-secret", 15*time.Minute)
	creds := NewCredentialStore(memory.NewUserRepository())
	return NewTokenService(memory.NewRefreshTokenRepository(), jwt, refreshTTL, nil), creds
}

func TestIssuePairAndVerify(t *testing.T) {
	svc, creds := newTokenService(0)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "alice@example.com", "secretpass1")

	pair, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	claims, err := svc.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)

	_, err = svc.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRotateIssuesNewPair(t *testing.T) {
	svc, creds := newTokenService(0)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "bob@example.com", "secretpass1")

	pair, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)

	next, err := svc.Rotate(ctx, pair.RefreshToken, creds.FindByID)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The successor keeps working.
	_, err = svc.Rotate(ctx, next.RefreshToken, creds.FindByID)
	require.NoError(t, err)
}

func TestRotateUnknownToken(t *testing.T) {
	svc, creds := newTokenService(0)
	_, err := svc.Rotate(context.Background(), "deadbeef", creds.FindByID)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestReuseRevokesFamily(t *testing.T) {
	svc, creds := newTokenService(0)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "carol@example.com", "secretpass1")

	pair, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)
	next, err := svc.Rotate(ctx, pair.RefreshToken, creds.FindByID)
	require.NoError(t, err)

	// Replaying the rotated token is reuse.
	_, err = svc.Rotate(ctx, pair.RefreshToken, creds.FindByID)
	assert.ErrorIs(t, err, ErrTokenReused)

	// The whole family dies with it; the successor was revoked without being
	// rotated, so presenting it is merely invalid.
	_, err = svc.Rotate(ctx, next.RefreshToken, creds.FindByID)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRotateExpiredToken(t *testing.T) {
	svc, creds := newTokenService(time.Nanosecond)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "dave@example.com", "secretpass1")

	pair, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	_, err = svc.Rotate(ctx, pair.RefreshToken, creds.FindByID)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRotateInactiveUser(t *testing.T) {
	svc, creds := newTokenService(0)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "erin@example.com", "secretpass1")

	pair, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)
	require.NoError(t, creds.SetActive(ctx, u.ID, false))

	_, err = svc.Rotate(ctx, pair.RefreshToken, creds.FindByID)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestConcurrentRotationSingleWinner(t *testing.T) {
	svc, creds := newTokenService(0)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "frank@example.com", "secretpass1")

	pair, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Rotate(ctx, pair.RefreshToken, creds.FindByID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrTokenReused)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent rotation must win")
}

func TestRevokeIsIdempotent(t *testing.T) {
	svc, creds := newTokenService(0)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "grace@example.com", "secretpass1")

	pair, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken))
	require.NoError(t, svc.Revoke(ctx, pair.RefreshToken))
	require.NoError(t, svc.Revoke(ctx, "never-issued"))

	// A token revoked by logout was never rotated; presenting it is not reuse.
	_, err = svc.Rotate(ctx, pair.RefreshToken, creds.FindByID)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRevokeAll(t *testing.T) {
	svc, creds := newTokenService(0)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "heidi@example.com", "secretpass1")

	a, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)
	b, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, u.ID))

	for _, token := range []string{a.RefreshToken, b.RefreshToken} {
		_, err = svc.Rotate(ctx, token, creds.FindByID)
		assert.ErrorIs(t, err, ErrTokenInvalid, "logged-out token must rotate as invalid, not reuse")
	}
}

func TestLogoutEverywhereDoesNotTripReuseDetection(t *testing.T) {
	rt := memory.NewRefreshTokenRepository()
	jwt := helpers.NewJWTManager("test-secret", 15*time.Minute)
	creds := NewCredentialStore(memory.NewUserRepository())
	svc := NewTokenService(rt, jwt, 0, nil)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "ivan@example.com", "secretpass1")

	victim, err := svc.IssuePair(ctx, u)
	require.NoError(t, err)
	survivorOwner := mustCreateUser(t, creds, "judy@example.com", "secretpass1")
	survivor, err := svc.IssuePair(ctx, survivorOwner)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, u.ID))

	_, err = svc.Rotate(ctx, victim.RefreshToken, creds.FindByID)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenReused)

	// Nothing outside the logged-out user is touched.
	_, err = svc.Rotate(ctx, survivor.RefreshToken, creds.FindByID)
	require.NoError(t, err)
}
