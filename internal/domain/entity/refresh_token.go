package entity

import "time"

// RefreshToken is the persisted record of an opaque refresh token.
// Only the SHA-256 hash of the token value is stored. FamilyID links the
// chain of rotations descending from one original login; ReplacedByID points
// at the successor after rotation (lookup only, not ownership). Revoked is
// terminal: it is never reset to false.
type RefreshToken struct {
	ID           string
	UserID       string
	FamilyID     string
	TokenHash    string
	ExpiresAt    time.Time
	Revoked      bool
	ReplacedByID string
	CreatedAt    time.Time
}

// Expired reports whether the token's expiry has passed at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
