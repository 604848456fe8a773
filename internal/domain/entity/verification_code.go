package entity

import "time"

// Channel identifies the out-of-band delivery channel a verification code is
// scoped to.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelChat  Channel = "chat"
)

// Valid reports whether c is one of the known channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelChat:
		return true
	}
	return false
}

// VerificationCode is a single-use code scoped to one (user, channel) pair.
// Only the SHA-256 hash of the code is persisted. At most one unused,
// unexpired code per pair is active; issuing a new one supersedes the rest.
// Used transitions false->true exactly once and never back.
type VerificationCode struct {
	ID        string
	UserID    string
	Channel   Channel
	CodeHash  string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Expired reports whether the code's expiry has passed at now.
func (v *VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
