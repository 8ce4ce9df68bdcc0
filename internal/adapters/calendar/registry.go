package calendar

import (
	"encoding/json"
	"fmt"
	"net/http"

	"calbooking/internal/domain"
)

type keyValidator func(json.RawMessage) error

type registration struct {
	provider domain.BusyTimeProvider
	validate keyValidator
}

// Registry maps credential types to busy-time providers.
type Registry struct {
	providers map[string]registration
}

// NewRegistry returns a registry with the built-in providers registered. client is shared by
// the HTTP based providers.
func NewRegistry(client *http.Client) *Registry {
	r := &Registry{providers: make(map[string]registration)}
	r.Register(domain.CredentialTypeHTTPFreeBusy, NewFreeBusyProvider(client), func(raw json.RawMessage) error {
		_, err := parseFreeBusyKey(raw)
		return err
	})
	return r
}

// Register adds or replaces the provider for credentialType. A nil validate accepts any JSON object.
func (r *Registry) Register(credentialType string, provider domain.BusyTimeProvider, validate keyValidator) {
	if validate == nil {
		validate = validateObject
	}
	r.providers[credentialType] = registration{provider: provider, validate: validate}
}

func (r *Registry) Provider(credentialType string) (domain.BusyTimeProvider, bool) {
	reg, ok := r.providers[credentialType]
	if !ok {
		return nil, false
	}
	return reg.provider, true
}

func (r *Registry) ValidateKey(credentialType string, key json.RawMessage) error {
	reg, ok := r.providers[credentialType]
	if !ok {
		return fmt.Errorf("unsupported credential type %q", credentialType)
	}
	return reg.validate(key)
}

func validateObject(raw json.RawMessage) error {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("key must be a JSON object: %w", err)
	}
	return nil
}
