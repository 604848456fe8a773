package application

import (
	"errors"
	"fmt"
)

// Domain error kinds returned by the auth core. Front ends match these with
// errors.Is and map them to their own transport representations; the core
// contract is only the kind, never a status code or message text.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("account inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")

	ErrCodeInvalid     = errors.New("verification code invalid")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeAlreadyUsed = errors.New("verification code already used")
	ErrRateLimited     = errors.New("too many verification codes requested")

	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenReused signals presentation of an already-rotated refresh
	// token. By the time a caller sees it, the whole token family has been
	// revoked.
	ErrTokenReused = errors.New("refresh token reuse detected")

	// ErrStorageUnavailable wraps storage faults; retryable by the caller.
	// All the domain errors above are terminal for the call.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
