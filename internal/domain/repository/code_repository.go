package repository

import (
	"context"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
)

// VerificationCodeRepository persists one-time verification codes.
//
// Replace and MarkUsed carry the atomicity the code lifecycle depends on:
// Replace invalidates every unused code for the (user, channel) pair and
// inserts the new one in a single transaction, and MarkUsed is a conditional
// update on used=false so that exactly one of N concurrent consumers wins.
type VerificationCodeRepository interface {
	// Replace marks all unused codes for (code.UserID, code.Channel) as used
	// and stores code, atomically.
	Replace(ctx context.Context, code *entity.VerificationCode) error

	// FindActive returns the single unused code for the pair, expired or not.
	// Returns ErrNotFound when no unused code exists.
	FindActive(ctx context.Context, userID string, channel entity.Channel) (*entity.VerificationCode, error)

	// MarkUsed flips used to true only if it is still false. The boolean
	// reports whether this caller performed the transition.
	MarkUsed(ctx context.Context, id string) (bool, error)
}
