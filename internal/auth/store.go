package auth

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors surfaced by Store implementations.
var (
	ErrUserNotFound  = errors.New("auth: user not found")
	ErrUsernameTaken = errors.New("auth: username already exists")
)

// User is a staff account. Password holds the argon2id hash, or a legacy
// plaintext value that gets rehashed on first successful login.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists staff accounts.
type Store interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, id, password string) error
}
