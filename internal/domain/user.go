package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email or username already in use")
)

// User is a registered host who owns schedules, event types and bookings.
// swagger:model User
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	Name              string    `json:"name"`
	TimeZone          string    `json:"time_zone"`
	DefaultScheduleID *string   `json:"default_schedule_id"`
	PasswordHash      string    `json:"-"`
	Salt              string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(email, username, name, timeZone string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		Username:  username,
		Name:      name,
		TimeZone:  timeZone,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*User, error)
	SetDefaultSchedule(ctx context.Context, userID, scheduleID string) error
}

// SignUpInput holds the fields accepted on registration.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Username string
	TimeZone string
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
}
