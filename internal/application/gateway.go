package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

// AuthGateway orchestrates CredentialStore, VerificationCodeManager, and
// TokenService into the login, verify, refresh, and logout flows. It is the
// single entry point both protocol front ends call into, holds no mutable
// state of its own, and is safe for concurrent use.
type AuthGateway struct {
	creds  *CredentialStore
	codes  *VerificationCodeManager
	tokens *TokenService

	// verificationRequired gates token issuance on a verified email.
	verificationRequired bool

	logger *logrus.Logger
}

func NewAuthGateway(creds *CredentialStore, codes *VerificationCodeManager, tokens *TokenService, verificationRequired bool, logger *logrus.Logger) *AuthGateway {
	return &AuthGateway{
		creds:                creds,
		codes:                codes,
		tokens:               tokens,
		verificationRequired: verificationRequired,
		logger:               logger,
	}
}

// LoginResult is either a token pair (authenticated) or a pending
// verification handle the caller must deliver out-of-band.
type LoginResult struct {
	User    *entity.User
	Pair    *TokenPair
	Pending bool
	Handle  *CodeHandle
}

// Login verifies the password and either issues a token pair or, when the
// account still needs email verification, issues a verification code and
// reports the pending state. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := g.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !g.creds.VerifyPassword(u, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, ErrInactive
	}

	if g.verificationRequired && !u.EmailVerified {
		handle, err := g.codes.Issue(ctx, u.ID, entity.ChannelEmail)
		if err != nil {
			return nil, err
		}
		if g.logger != nil {
			g.logger.WithField("user_id", u.ID).Info("login pending verification")
		}
		return &LoginResult{User: u, Pending: true, Handle: handle}, nil
	}

	pair, err := g.tokens.IssuePair(ctx, u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Pair: pair}, nil
}

// RequestCode issues a fresh verification code for the pair, superseding any
// prior unused code. The caller delivers the returned handle out-of-band.
func (g *AuthGateway) RequestCode(ctx context.Context, userID string, channel entity.Channel) (*CodeHandle, error) {
	if _, err := g.creds.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return g.codes.Issue(ctx, userID, channel)
}

// SubmitVerification consumes the code and, on success, marks the channel
// verified and issues a token pair. Inactive accounts are refused before the
// code is consumed, so the code stays live for when the account comes back.
func (g *AuthGateway) SubmitVerification(ctx context.Context, userID string, channel entity.Channel, code string) (*TokenPair, error) {
	u, err := g.creds.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, ErrInactive
	}
	if err := g.codes.Consume(ctx, userID, channel, code); err != nil {
		return nil, err
	}
	if err := g.creds.MarkVerified(ctx, userID, channel); err != nil {
		return nil, err
	}
	return g.tokens.IssuePair(ctx, u)
}

// Refresh rotates the presented refresh token into a fresh pair.
func (g *AuthGateway) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return g.tokens.Rotate(ctx, refreshToken, g.creds.FindByID)
}

// Logout revokes the presented refresh token. Idempotent.
func (g *AuthGateway) Logout(ctx context.Context, refreshToken string) error {
	return g.tokens.Revoke(ctx, refreshToken)
}

// LogoutAll revokes every refresh token of the user.
func (g *AuthGateway) LogoutAll(ctx context.Context, userID string) error {
	return g.tokens.RevokeAll(ctx, userID)
}

// VerifyAccessToken exposes stateless access-token verification to the front
// ends' middleware/interceptors.
func (g *AuthGateway) VerifyAccessToken(token string) (*helpers.Claims, error) {
	return g.tokens.VerifyAccessToken(token)
}
