package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"calbooking/internal/domain"
)

type credentialService struct {
	credentialRepo domain.CredentialRepository
	calendars      domain.CalendarRegistry
	contextTimeout time.Duration
}

// NewCredentialService creates a CredentialService. Keys are validated by the
// registry's provider for the credential type before they are stored.
func NewCredentialService(credentialRepo domain.CredentialRepository, calendars domain.CalendarRegistry, timeout time.Duration) domain.CredentialService {
	return &credentialService{credentialRepo: credentialRepo, calendars: calendars, contextTimeout: timeout}
}

func (s *credentialService) Create(ctx context.Context, userID, credentialType string, key json.RawMessage) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	credentialType = strings.TrimSpace(credentialType)
	if _, ok := s.calendars.Provider(credentialType); !ok {
		return nil, fmt.Errorf("%w: unsupported credential type %q", domain.ErrInvalidInput, credentialType)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key is required", domain.ErrInvalidInput)
	}
	if err := s.calendars.ValidateKey(credentialType, key); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	cred := &domain.Credential{
		UserID:    userID,
		Type:      credentialType,
		Key:       key,
		CreatedAt: time.Now(),
	}
	if err := s.credentialRepo.Create(ctx, cred); err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}
	return cred, nil
}

func (s *credentialService) List(ctx context.Context, userID string) ([]*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.credentialRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	if list == nil {
		list = []*domain.Credential{}
	}
	return list, nil
}

func (s *credentialService) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	cred, err := s.credentialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("get credential: %w", err)
	}
	if cred.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.credentialRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
