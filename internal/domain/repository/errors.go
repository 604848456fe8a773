package repository

import "errors"

// Sentinel errors every storage implementation maps its driver errors to.
// Anything else returned by a repository is treated as a storage fault by
// the application layer.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
