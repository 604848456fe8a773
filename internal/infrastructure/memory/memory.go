// Package memory provides in-memory repository implementations honoring the
// same conditional-update contracts as the Postgres ones. They back the unit
// tests and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	"github.com/mo7amed4522/user-services/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	r.byID[u.ID] = cloneUser(u)
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) SetVerified(_ context.Context, id string, channel entity.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if channel == entity.ChannelSMS {
		u.PhoneVerified = true
	} else {
		u.EmailVerified = true
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Active = active
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

type VerificationCodeRepository struct {
	mu    sync.Mutex
	codes map[string]*entity.VerificationCode
}

func NewVerificationCodeRepository() *VerificationCodeRepository {
	return &VerificationCodeRepository{codes: make(map[string]*entity.VerificationCode)}
}

func (r *VerificationCodeRepository) Replace(_ context.Context, code *entity.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.UserID == code.UserID && c.Channel == code.Channel && !c.Used {
			c.Used = true
		}
	}
	cp := *code
	r.codes[code.ID] = &cp
	return nil
}

func (r *VerificationCodeRepository) FindActive(_ context.Context, userID string, channel entity.Channel) (*entity.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.VerificationCode
	for _, c := range r.codes {
		if c.UserID == userID && c.Channel == channel && !c.Used {
			if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
				latest = c
			}
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *VerificationCodeRepository) MarkUsed(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[id]
	if !ok || c.Used {
		return false, nil
	}
	c.Used = true
	return true, nil
}

var _ repository.VerificationCodeRepository = (*VerificationCodeRepository)(nil)

type RefreshTokenRepository struct {
	mu     sync.Mutex
	byID   map[string]*entity.RefreshToken
	byHash map[string]string
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{
		byID:   make(map[string]*entity.RefreshToken),
		byHash: make(map[string]string),
	}
}

func (r *RefreshTokenRepository) Create(_ context.Context, t *entity.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.byID[t.ID] = &cp
	r.byHash[t.TokenHash] = t.ID
	return nil
}

func (r *RefreshTokenRepository) FindByHash(_ context.Context, hash string) (*entity.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byHash[hash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *RefreshTokenRepository) Rotate(_ context.Context, oldID string, next *entity.RefreshToken) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.byID[oldID]
	if !ok || old.Revoked {
		return false, nil
	}
	old.Revoked = true
	old.ReplacedByID = next.ID
	cp := *next
	r.byID[next.ID] = &cp
	r.byHash[next.TokenHash] = next.ID
	return true, nil
}

func (r *RefreshTokenRepository) Revoke(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.Revoked {
		return false, nil
	}
	t.Revoked = true
	return true, nil
}

func (r *RefreshTokenRepository) RevokeFamily(_ context.Context, familyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.FamilyID == familyID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

var _ repository.RefreshTokenRepository = (*RefreshTokenRepository)(nil)
