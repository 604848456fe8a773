package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/domain/repository"
)

type VerificationCodeRepository struct {
	pool *pgxpool.Pool
}

func NewVerificationCodeRepository(pool *pgxpool.Pool) *VerificationCodeRepository {
	return &VerificationCodeRepository{pool: pool}
}

// Replace supersedes prior unused codes and inserts the new one in a single
// transaction, keeping the one-active-code-per-pair invariant.
func (r *VerificationCodeRepository) Replace(ctx context.Context, code *entity.VerificationCode) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE verification_codes SET used = true
		WHERE user_id = $1 AND channel = $2 AND used = false
	`, code.UserID, code.Channel); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO verification_codes (id, user_id, channel, code_hash, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, code.ID, code.UserID, code.Channel, code.CodeHash, code.ExpiresAt, code.Used, code.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *VerificationCodeRepository) FindActive(ctx context.Context, userID string, channel entity.Channel) (*entity.VerificationCode, error) {
	v := &entity.VerificationCode{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, channel, code_hash, expires_at, used, created_at
		FROM verification_codes
		WHERE user_id = $1 AND channel = $2 AND used = false
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, channel).Scan(&v.ID, &v.UserID, &v.Channel, &v.CodeHash, &v.ExpiresAt, &v.Used, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// MarkUsed is the conditional update that makes consumption exactly-once:
// the WHERE used = false guard decides the winner among concurrent callers.
func (r *VerificationCodeRepository) MarkUsed(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE verification_codes SET used = true
		WHERE id = $1 AND used = false
	`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

var _ repository.VerificationCodeRepository = (*VerificationCodeRepository)(nil)
