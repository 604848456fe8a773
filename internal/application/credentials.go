package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mo7amed4522/user-services/internal/domain/entity"
	repo "github.com/mo7amed4522/user-services/internal/domain/repository"
	"github.com/mo7amed4522/user-services/pkg/helpers"
)

// CredentialStore owns persisted user records: lookup, creation, password
// verification and the verified/active flags. No token or code logic lives
// here.
type CredentialStore struct {
	users repo.UserRepository
}

func NewCredentialStore(users repo.UserRepository) *CredentialStore {
	return &CredentialStore{users: users}
}

// NormalizeEmail lower-cases and trims an email so uniqueness and lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput carries the fields needed to create a user record.
type RegisterInput struct {
	Email       string
	Password    string
	Phone       string
	CountryCode string
	FirstName   string
	LastName    string
	Role        string
}

// Create hashes the password and stores a new active user. A taken email
// surfaces as ErrDuplicateEmail.
func (s *CredentialStore) Create(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role != entity.RoleAdmin {
		role = entity.RoleUser
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:          uuid.NewString(),
		Email:       NormalizeEmail(in.Email),
		Password:    hash,
		Phone:       in.Phone,
		CountryCode: in.CountryCode,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Role:        role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, storageErr(err)
	}
	return u, nil
}

// FindByEmail returns the user for a normalized email or ErrUserNotFound.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr(err)
	}
	return u, nil
}

// FindByID returns the user for an id or ErrUserNotFound.
func (s *CredentialStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr(err)
	}
	return u, nil
}

// VerifyPassword compares the plaintext against the stored bcrypt hash.
// Neither the plaintext nor the hash is ever logged.
func (s *CredentialStore) VerifyPassword(u *entity.User, plaintext string) bool {
	return helpers.CompareHashAndPassword(u.Password, plaintext)
}

// MarkVerified flips the verified flag for the channel on the user record.
func (s *CredentialStore) MarkVerified(ctx context.Context, userID string, channel entity.Channel) error {
	if err := s.users.SetVerified(ctx, userID, channel); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return storageErr(err)
	}
	return nil
}

// SetActive soft-activates or soft-deactivates the account. Records are never
// hard-deleted while tokens reference them.
func (s *CredentialStore) SetActive(ctx context.Context, userID string, active bool) error {
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return storageErr(err)
	}
	return nil
}
