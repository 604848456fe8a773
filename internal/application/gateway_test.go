package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/infrastructure/memory"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

func newGateway(t *testing.T, verificationRequired bool) (*AuthGateway, *CredentialStore) {
	t.Helper()
	creds := NewCredentialStore(memory.NewUserRepository())
	codes := NewVerificationCodeManager(memory.NewVerificationCodeRepository(), nil, CodePolicy{}, nil)
	jwt := helpers.NewJWTManager("test-secret", 15*time.Minute)
	tokens := NewTokenService(memory.NewRefreshTokenRepository(), jwt, 0, nil)
	return NewAuthGateway(creds, codes, tokens, verificationRequired, nil), creds
}

func TestLoginSuccess(t *testing.T) {
	g, creds := newGateway(t, false)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "alice@example.com", "secretpass1")

	res, err := g.Login(ctx, "alice@example.com", "secretpass1")
	require.NoError(t, err)
	assert.False(t, res.Pending)
	require.NotNil(t, res.Pair)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := g.VerifyAccessToken(res.Pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	g, creds := newGateway(t, false)
	ctx := context.Background()
	mustCreateUser(t, creds, "bob@example.com", "secretpass1")

	_, wrongPass := g.Login(ctx, "bob@example.com", "wrongpass")
	_, unknown := g.Login(ctx, "nobody@example.com", "whatever1")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
}

func TestLoginInactive(t *testing.T) {
	g, creds := newGateway(t, false)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "carol@example.com", "secretpass1")
	require.NoError(t, creds.SetActive(ctx, u.ID, false))

	_, err := g.Login(ctx, "carol@example.com", "secretpass1")
	assert.ErrorIs(t, err, ErrInactive)
}

func TestLoginPendingVerificationFlow(t *testing.T) {
	g, creds := newGateway(t, true)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "dave@example.com", "secretpass1")

	res, err := g.Login(ctx, "dave@example.com", "secretpass1")
	require.NoError(t, err)
	assert.True(t, res.Pending)
	assert.Nil(t, res.Pair)
	require.NotNil(t, res.Handle)
	assert.Equal(t, entity.ChannelEmail, res.Handle.Channel)
	assert.NotEmpty(t, res.Handle.Code)

	pair, err := g.SubmitVerification(ctx, u.ID, entity.ChannelEmail, res.Handle.Code)
	require.NoError(t, err)
	require.NotNil(t, pair)

	got, err := creds.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)

	// Once verified, login issues tokens directly.
	res, err = g.Login(ctx, "dave@example.com", "secretpass1")
	require.NoError(t, err)
	assert.False(t, res.Pending)
	require.NotNil(t, res.Pair)
}

func TestSubmitVerificationBadCode(t *testing.T) {
	g, creds := newGateway(t, true)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "erin@example.com", "secretpass1")

	_, err := g.Login(ctx, "erin@example.com", "secretpass1")
	require.NoError(t, err)

	_, err = g.SubmitVerification(ctx, u.ID, entity.ChannelEmail, "000000")
	assert.ErrorIs(t, err, ErrCodeInvalid)

	got, err := creds.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.EmailVerified, "failed verification must not flip the flag")
}

func TestSubmitVerificationInactiveKeepsCode(t *testing.T) {
	g, creds := newGateway(t, true)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "heidi@example.com", "secretpass1")

	res, err := g.Login(ctx, "heidi@example.com", "secretpass1")
	require.NoError(t, err)
	require.NotNil(t, res.Handle)

	require.NoError(t, creds.SetActive(ctx, u.ID, false))

	_, err = g.SubmitVerification(ctx, u.ID, entity.ChannelEmail, res.Handle.Code)
	assert.ErrorIs(t, err, ErrInactive)

	got, err := creds.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.EmailVerified, "refused verification must not flip the flag")

	// The code was not consumed; once reactivated it still verifies.
	require.NoError(t, creds.SetActive(ctx, u.ID, true))
	pair, err := g.SubmitVerification(ctx, u.ID, entity.ChannelEmail, res.Handle.Code)
	require.NoError(t, err)
	require.NotNil(t, pair)
}

func TestRequestCodeUnknownUser(t *testing.T) {
	g, _ := newGateway(t, false)
	_, err := g.RequestCode(context.Background(), "missing-id", entity.ChannelEmail)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshAndLogout(t *testing.T) {
	g, creds := newGateway(t, false)
	ctx := context.Background()
	mustCreateUser(t, creds, "frank@example.com", "secretpass1")

	res, err := g.Login(ctx, "frank@example.com", "secretpass1")
	require.NoError(t, err)

	next, err := g.Refresh(ctx, res.Pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.Pair.RefreshToken, next.RefreshToken)

	require.NoError(t, g.Logout(ctx, next.RefreshToken))
	_, err = g.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogoutAllKillsEverySession(t *testing.T) {
	g, creds := newGateway(t, false)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "grace@example.com", "secretpass1")

	a, err := g.Login(ctx, "grace@example.com", "secretpass1")
	require.NoError(t, err)
	b, err := g.Login(ctx, "grace@example.com", "secretpass1")
	require.NoError(t, err)

	require.NoError(t, g.LogoutAll(ctx, u.ID))

	_, err = g.Refresh(ctx, a.Pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = g.Refresh(ctx, b.Pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
