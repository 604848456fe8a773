package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/domain/repository"
)

type RefreshTokenRepository struct {
	pool *pgxpool.Pool
}

func NewRefreshTokenRepository(pool *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *entity.RefreshToken) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, family_id, token_hash, expires_at, revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.UserID, t.FamilyID, t.TokenHash, t.ExpiresAt, t.Revoked, t.CreatedAt)
	return err
}

func (r *RefreshTokenRepository) FindByHash(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	t := &entity.RefreshToken{}
	var replacedBy *string
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, family_id, token_hash, expires_at, revoked, replaced_by, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`, hash).Scan(&t.ID, &t.UserID, &t.FamilyID, &t.TokenHash, &t.ExpiresAt, &t.Revoked, &replacedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if replacedBy != nil {
		t.ReplacedByID = *replacedBy
	}
	return t, nil
}

// Rotate revokes the old token with a revoked=false guard and inserts the
// successor in the same transaction. Of two concurrent rotations exactly one
// sees RowsAffected()==1; the loser's transaction inserts nothing.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldID string, next *entity.RefreshToken) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = true, replaced_by = $1
		WHERE id = $2 AND revoked = false
	`, next.ID, oldID)
	if err != nil {
		return false, err
	}
	if res.RowsAffected() == 0 {
		return false, tx.Rollback(ctx)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, family_id, token_hash, expires_at, revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, next.ID, next.UserID, next.FamilyID, next.TokenHash, next.ExpiresAt, next.Revoked, next.CreatedAt); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = true
		WHERE id = $1 AND revoked = false
	`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *RefreshTokenRepository) RevokeFamily(ctx context.Context, familyID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = true
		WHERE family_id = $1 AND revoked = false
	`, familyID)
	return err
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = true
		WHERE user_id = $1 AND revoked = false
	`, userID)
	return err
}

var _ repository.RefreshTokenRepository = (*RefreshTokenRepository)(nil)
