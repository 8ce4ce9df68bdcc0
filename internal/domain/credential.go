package domain

import (
	"context"
	"encoding/json"
	"time"

	"calbooking/internal/availability"
)

// CredentialTypeHTTPFreeBusy is a calendar reached through a JSON free/busy endpoint.
const CredentialTypeHTTPFreeBusy = "http_freebusy"

// Credential links a user to an external calendar. Key is provider specific and never returned to clients.
// swagger:model Credential
type Credential struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Type      string          `json:"type"`
	Key       json.RawMessage `json:"-"`
	Invalid   bool            `json:"invalid"`
	CreatedAt time.Time       `json:"created_at"`
}

// CredentialRepository defines the interface for credential storage.
type CredentialRepository interface {
	Create(ctx context.Context, c *Credential) error
	GetByID(ctx context.Context, id string) (*Credential, error)
	ListByUser(ctx context.Context, userID string) ([]*Credential, error)
	ListValidByUsers(ctx context.Context, userIDs []string) ([]*Credential, error)
	MarkInvalid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// BusyTimeProvider returns the busy ranges of one credential's calendar.
type BusyTimeProvider interface {
	BusyTimes(ctx context.Context, cred *Credential, from, to time.Time) ([]availability.TimeRange, error)
}

// CalendarRegistry resolves the provider for a credential type.
type CalendarRegistry interface {
	Provider(credentialType string) (BusyTimeProvider, bool)
	// ValidateKey checks a key before it is stored.
	ValidateKey(credentialType string, key json.RawMessage) error
}

// CredentialService manages the current user's calendar credentials.
type CredentialService interface {
	Create(ctx context.Context, userID, credentialType string, key json.RawMessage) (*Credential, error)
	List(ctx context.Context, userID string) ([]*Credential, error)
	Delete(ctx context.Context, id, userID string) error
}
