package repository

import (
	"context"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
)

// RefreshTokenRepository persists refresh tokens. Rotation and revocation
// serialize through storage-level conditional updates (revoked=false guards),
// never through in-process locks, so the guarantees hold across multiple
// processes sharing the same database.
type RefreshTokenRepository interface {
	Create(ctx context.Context, t *entity.RefreshToken) error

	// FindByHash looks a token up by the SHA-256 hash of its opaque value.
	// Returns ErrNotFound when absent.
	FindByHash(ctx context.Context, hash string) (*entity.RefreshToken, error)

	// Rotate revokes the token identified by oldID (only if still unrevoked),
	// records next.ID as its successor, and inserts next — all in one
	// transaction. The boolean is false when another rotation already won.
	Rotate(ctx context.Context, oldID string, next *entity.RefreshToken) (bool, error)

	// Revoke flips revoked to true only if it is still false.
	Revoke(ctx context.Context, id string) (bool, error)

	// RevokeFamily marks every unrevoked token in the family as revoked.
	RevokeFamily(ctx context.Context, familyID string) error

	// RevokeAllForUser marks every unrevoked token of the user as revoked.
	RevokeAllForUser(ctx context.Context, userID string) error
}
