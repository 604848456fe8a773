package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	repo "github.com/mo7amed4522/user-services/internal/domain/repository"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

// Byte length of the random opaque refresh token value (hex doubles it).
const refreshTokenBytes = 32

// TokenPair is the result of a successful login, verification, or rotation.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// TokenService issues short-lived signed access tokens and longer-lived
// opaque refresh tokens, and owns rotation and revocation. Refresh tokens
// are stored hashed; a chain of rotations from one login shares a family ID,
// and presenting an already-rotated member revokes the whole family.
type TokenService struct {
	tokens     repo.RefreshTokenRepository
	jwt        *helpers.JWTManager
	refreshTTL time.Duration
	logger     *logrus.Logger
}

func NewTokenService(tokens repo.RefreshTokenRepository, jwt *helpers.JWTManager, refreshTTL time.Duration, logger *logrus.Logger) *TokenService {
	if refreshTTL <= 0 {
		refreshTTL = 720 * time.Hour
	}
	return &TokenService{
		tokens:     tokens,
		jwt:        jwt,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// IssueAccessToken signs a claim set for the user. Pure and stateless.
func (s *TokenService) IssueAccessToken(u *entity.User) (string, time.Time, error) {
	return s.jwt.GenerateAccessToken(u.ID, u.Role)
}

// VerifyAccessToken checks signature and expiry only; it never touches
// storage.
func (s *TokenService) VerifyAccessToken(token string) (*helpers.Claims, error) {
	claims, err := s.jwt.ParseAccessToken(token)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) newRefreshToken(userID, familyID string) (string, *entity.RefreshToken, error) {
	plain, err := helpers.GenOpaqueToken(refreshTokenBytes)
	if err != nil {
		return "", nil, err
	}
	now := time.Now().UTC()
	t := &entity.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		FamilyID:  familyID,
		TokenHash: helpers.HashSecret(plain),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	return plain, t, nil
}

// IssueRefreshToken generates a fresh opaque value, persists its hash, and
// starts a new token family.
func (s *TokenService) IssueRefreshToken(ctx context.Context, u *entity.User) (string, time.Time, error) {
	plain, t, err := s.newRefreshToken(u.ID, uuid.NewString())
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.tokens.Create(ctx, t); err != nil {
		return "", time.Time{}, storageErr(err)
	}
	return plain, t.ExpiresAt, nil
}

// IssuePair mints an access token and a family-starting refresh token.
func (s *TokenService) IssuePair(ctx context.Context, u *entity.User) (*TokenPair, error) {
	access, aexp, err := s.IssueAccessToken(u)
	if err != nil {
		return nil, err
	}
	refresh, rexp, err := s.IssueRefreshToken(ctx, u)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// Rotate exchanges a presented refresh token for a fresh pair.
//
// A revoked token that has a successor was already rotated, so presenting it
// again is a reuse signal: the entire family is revoked before the call fails
// with ErrTokenReused. A revoked token with no successor was taken out by
// Revoke or RevokeAll; that is an ordinary ErrTokenInvalid, not a security
// event. The revoke-old/create-new step is a storage-level conditional update
// keyed on revoked=false, so of two concurrent rotations of the same token
// exactly one wins; the loser observes the winner's successor and is handled
// as reuse, since two parties holding the same token means the successor can
// no longer be trusted.
func (s *TokenService) Rotate(ctx context.Context, presented string, loadUser func(ctx context.Context, userID string) (*entity.User, error)) (*TokenPair, error) {
	stored, err := s.tokens.FindByHash(ctx, helpers.HashSecret(presented))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, storageErr(err)
	}

	if stored.Revoked {
		if stored.ReplacedByID == "" {
			return nil, ErrTokenInvalid
		}
		return nil, s.reuseDetected(ctx, stored)
	}
	if stored.Expired(time.Now().UTC()) {
		return nil, ErrTokenExpired
	}

	u, err := loadUser(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, ErrInactive
	}

	plain, next, err := s.newRefreshToken(stored.UserID, stored.FamilyID)
	if err != nil {
		return nil, err
	}
	won, err := s.tokens.Rotate(ctx, stored.ID, next)
	if err != nil {
		return nil, storageErr(err)
	}
	if !won {
		// Lost the update race. Reload to tell a concurrent rotation from a
		// concurrent revocation.
		cur, err := s.tokens.FindByHash(ctx, helpers.HashSecret(presented))
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrTokenInvalid
			}
			return nil, storageErr(err)
		}
		if cur.ReplacedByID == "" {
			return nil, ErrTokenInvalid
		}
		return nil, s.reuseDetected(ctx, cur)
	}

	access, aexp, err := s.IssueAccessToken(u)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       plain,
		RefreshTokenExpiry: next.ExpiresAt,
	}, nil
}

// reuseDetected revokes the whole family and returns ErrTokenReused. This is
// a security event, distinguishable from an ordinary expiry.
func (s *TokenService) reuseDetected(ctx context.Context, t *entity.RefreshToken) error {
	if err := s.tokens.RevokeFamily(ctx, t.FamilyID); err != nil {
		return storageErr(err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":   t.UserID,
			"family_id": t.FamilyID,
		}).Warn("refresh token reuse detected, family revoked")
	}
	return ErrTokenReused
}

// Revoke marks the token matching the presented value as revoked. Unknown
// values are ignored so logout is idempotent.
func (s *TokenService) Revoke(ctx context.Context, presented string) error {
	stored, err := s.tokens.FindByHash(ctx, helpers.HashSecret(presented))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return storageErr(err)
	}
	if _, err := s.tokens.Revoke(ctx, stored.ID); err != nil {
		return storageErr(err)
	}
	return nil
}

// RevokeAll marks every unrevoked refresh token of the user as revoked.
// Used on logout-everywhere or detected compromise.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		return storageErr(err)
	}
	return nil
}
