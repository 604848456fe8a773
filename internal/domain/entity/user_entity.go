package entity

import (
	"time"
)

// Role values assignable to a user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash; the plaintext never leaves the login path.
type User struct {
	ID            string
	Email         string
	Password      string
	Phone         string
	CountryCode   string
	FirstName     string
	LastName      string
	Role          string
	EmailVerified bool
	PhoneVerified bool
	Active        bool
	AvatarURL     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
