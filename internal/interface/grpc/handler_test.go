package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mo7amed4522/user-services/internal/application"
	"github.com/mo7amed4522/user-services/internal/infrastructure/memory"
	pb "github.com/mo7amed4522/user-services/internal/proto"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	creds := application.NewCredentialStore(memory.NewUserRepository())
	codes := application.NewVerificationCodeManager(memory.NewVerificationCodeRepository(), nil, application.CodePolicy{}, nil)
	jwt := helpers.NewJWTManager("test-secret", 15*time.Minute)
	tokens := application.NewTokenService(memory.NewRefreshTokenRepository(), jwt, 0, nil)
	gateway := application.NewAuthGateway(creds, codes, tokens, false, nil)
	users := application.NewUserService(creds, nil, "", nil, nil, "")
	return NewServer(":0", gateway, users, nil, helpers.NewLogger("test", "test"))
}

func register(t *testing.T, s *Server, email string) *pb.User {
	t.Helper()
	resp, err := s.Register(context.Background(), &pb.RegisterRequest{
		Email:     email,
		Password:  "secretpass1",
		FirstName: "Test",
	})
	require.NoError(t, err)
	return resp.GetUser()
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	u := register(t, s, "alice@example.com")
	assert.Equal(t, "alice@example.com", u.Email)

	resp, err := s.Login(ctx, &pb.LoginRequest{Email: "alice@example.com", Password: "secretpass1"})
	require.NoError(t, err)
	assert.False(t, resp.GetVerificationRequired())
	require.NotNil(t, resp.GetPair())
	assert.NotEmpty(t, resp.GetPair().GetAccessToken())
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestServer(t)
	register(t, s, "bob@example.com")

	_, err := s.Register(context.Background(), &pb.RegisterRequest{
		Email:    "bob@example.com",
		Password: "secretpass1",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	register(t, s, "carol@example.com")

	_, err := s.Login(context.Background(), &pb.LoginRequest{Email: "carol@example.com", Password: "wrongpass"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRefreshAndReuse(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	register(t, s, "dave@example.com")

	login, err := s.Login(ctx, &pb.LoginRequest{Email: "dave@example.com", Password: "secretpass1"})
	require.NoError(t, err)

	next, err := s.Refresh(ctx, &pb.RefreshRequest{RefreshToken: login.GetPair().GetRefreshToken()})
	require.NoError(t, err)
	assert.NotEqual(t, login.GetPair().GetRefreshToken(), next.GetRefreshToken())

	// Replaying the rotated token must be rejected.
	_, err = s.Refresh(ctx, &pb.RefreshRequest{RefreshToken: login.GetPair().GetRefreshToken()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestValidateToken(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	u := register(t, s, "erin@example.com")

	login, err := s.Login(ctx, &pb.LoginRequest{Email: "erin@example.com", Password: "secretpass1"})
	require.NoError(t, err)

	resp, err := s.ValidateToken(ctx, &pb.ValidateTokenRequest{Token: login.GetPair().GetAccessToken()})
	require.NoError(t, err)
	assert.Equal(t, u.Id, resp.UserId)

	_, err = s.ValidateToken(ctx, &pb.ValidateTokenRequest{Token: "garbage"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestProfileRequiresContextIdentity(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.GetProfile(ctx, &pb.GetProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	u := register(t, s, "frank@example.com")
	authed := context.WithValue(ctx, userIDKey, u.Id)

	got, err := s.GetProfile(authed, &pb.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	updated, err := s.UpdateProfile(authed, &pb.UpdateProfileRequest{FirstName: "Franklin"})
	require.NoError(t, err)
	assert.Equal(t, "Franklin", updated.FirstName)
}
