package domain

import (
	"context"
	"time"
)

// User represents a registered user. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// UserSummary is the public identity of a user.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Summary returns the public identity fields of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}

// PasswordHasher produces salted one-way digests and checks plaintexts against them.
// Compare reports a mismatch as (false, nil); an error means the digest itself is unusable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// TokenIssuer issues signed, time-limited tokens for a user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
// Rejected tokens yield an error wrapping ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// AuthResult is returned by successful sign-up and login.
type AuthResult struct {
	Token string
	User  *User
}

// AuthService defines the business logic for sign-up and login.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
