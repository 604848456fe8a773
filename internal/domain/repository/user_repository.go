package repository

import (
	"context"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
)

// UserRepository defines persistence for user records. Email uniqueness is
// enforced at this boundary: Create returns ErrDuplicate for a taken email.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	SetVerified(ctx context.Context, id string, channel entity.Channel) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}
