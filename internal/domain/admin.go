package domain

import (
	"context"
	"strings"
	"time"
)

// Admin is an operator allowed to manage events and registrants.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewAdmin returns a new Admin with normalized username and email. ID is typically set by the repository on create.
func NewAdmin(name, username, email string, createdAt time.Time) *Admin {
	return &Admin{
		Name:      strings.TrimSpace(name),
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(strings.ToLower(email)),
		CreatedAt: createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// AdminClaims is the identity carried by an admin token.
type AdminClaims struct {
	AdminID  string
	Name     string
	Username string
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(claims AdminClaims, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the admin it was issued to.
type TokenVerifier interface {
	Verify(token string) (*AdminClaims, error)
}

// AdminRepository defines the interface for admin storage.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	// ExistsByUsernameOrEmail reports whether either identifier is taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// AdminSignUp is the admin registration payload.
type AdminSignUp struct {
	Name     string
	Username string
	Email    string
	Password string
}

// AuthService defines admin registration and login.
type AuthService interface {
	Register(ctx context.Context, in *AdminSignUp) (*Admin, error)
	// Login returns a bearer token and the admin; ErrInvalidCredentials on mismatch.
	Login(ctx context.Context, username, password string) (string, *Admin, error)
	// HasAdmins reports whether at least one admin exists.
	HasAdmins(ctx context.Context) (bool, error)
}
