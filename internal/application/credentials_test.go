package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/infrastructure/memory"
)

func newCreds(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(memory.NewUserRepository())
}

func mustCreateUser(t *testing.T, creds *CredentialStore, email, password string) *entity.User {
	t.Helper()
	u, err := creds.Create(context.Background(), RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Test",
	})
	require.NoError(t, err)
	return u
}

func TestCredentialStoreCreate(t *testing.T) {
	creds := newCreds(t)
	ctx := context.Background()

	u := mustCreateUser(t, creds, "Alice@Example.COM", "secretpass1")

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.True(t, u.Active)
	assert.False(t, u.EmailVerified)
	assert.NotEqual(t, "secretpass1", u.Password, "password must be stored hashed")

	_, err := creds.Create(ctx, RegisterInput{Email: "alice@example.com", Password: "otherpass99"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCredentialStoreLookup(t *testing.T) {
	creds := newCreds(t)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "bob@example.com", "secretpass1")

	got, err := creds.FindByEmail(ctx, "  BOB@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = creds.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = creds.FindByID(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCredentialStoreVerifyPassword(t *testing.T) {
	creds := newCreds(t)
	u := mustCreateUser(t, creds, "carol@example.com", "secretpass1")

	assert.True(t, creds.VerifyPassword(u, "secretpass1"))
	assert.False(t, creds.VerifyPassword(u, "wrongpass"))
	assert.False(t, creds.VerifyPassword(u, ""))
}

func TestCredentialStoreMarkVerified(t *testing.T) {
	creds := newCreds(t)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "dave@example.com", "secretpass1")

	require.NoError(t, creds.MarkVerified(ctx, u.ID, entity.ChannelEmail))
	got, err := creds.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
	assert.False(t, got.PhoneVerified)

	require.NoError(t, creds.MarkVerified(ctx, u.ID, entity.ChannelSMS))
	got, err = creds.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.PhoneVerified)

	assert.ErrorIs(t, creds.MarkVerified(ctx, "missing-id", entity.ChannelEmail), ErrUserNotFound)
}

func TestCredentialStoreSetActive(t *testing.T) {
	creds := newCreds(t)
	ctx := context.Background()
	u := mustCreateUser(t, creds, "erin@example.com", "secretpass1")

	require.NoError(t, creds.SetActive(ctx, u.ID, false))
	got, err := creds.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}
