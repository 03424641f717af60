package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller is authenticated but is not the author.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicate indicates a unique field (username or email) is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered author of articles and comments.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
