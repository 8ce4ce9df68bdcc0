package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"calbooking/internal/domain"
)

const maxDeliveriesListed = 100

type webhookService struct {
	webhookRepo    domain.WebhookRepository
	eventTypeRepo  domain.EventTypeRepository
	deliverer      domain.WebhookDeliverer
	contextTimeout time.Duration
}

// NewWebhookService creates a WebhookService. Ping deliveries go through deliverer synchronously.
func NewWebhookService(webhookRepo domain.WebhookRepository, eventTypeRepo domain.EventTypeRepository, deliverer domain.WebhookDeliverer, timeout time.Duration) domain.WebhookService {
	return &webhookService{
		webhookRepo:    webhookRepo,
		eventTypeRepo:  eventTypeRepo,
		deliverer:      deliverer,
		contextTimeout: timeout,
	}
}

func (s *webhookService) Create(ctx context.Context, userID string, in domain.WebhookInput) (*domain.Webhook, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.SubscriberURL == nil {
		return nil, fmt.Errorf("%w: subscriber_url is required", domain.ErrInvalidInput)
	}
	w := &domain.Webhook{
		UserID:        userID,
		Active:        true,
		EventTriggers: append([]domain.WebhookTrigger(nil), domain.AllWebhookTriggers...),
		CreatedAt:     time.Now(),
	}
	if err := s.apply(ctx, w, in); err != nil {
		return nil, err
	}
	if err := s.webhookRepo.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create webhook: %w", err)
	}
	return w, nil
}

func (s *webhookService) List(ctx context.Context, userID string) ([]*domain.Webhook, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.webhookRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	if list == nil {
		list = []*domain.Webhook{}
	}
	return list, nil
}

func (s *webhookService) Get(ctx context.Context, id, userID string) (*domain.Webhook, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.owned(ctx, id, userID)
}

func (s *webhookService) Update(ctx context.Context, id, userID string, in domain.WebhookInput) (*domain.Webhook, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	w, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, w, in); err != nil {
		return nil, err
	}
	if err := s.webhookRepo.Update(ctx, w); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update webhook: %w", err)
	}
	return w, nil
}

func (s *webhookService) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.webhookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

// Ping delivers a PING payload right away, whether or not the webhook is
// active or subscribed to PING.
func (s *webhookService) Ping(ctx context.Context, id, userID string) (*domain.WebhookDelivery, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	w, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"webhookId": w.ID,
		"message":   "ping",
	}
	return s.deliverer.Deliver(ctx, w, domain.TriggerPing, payload), nil
}

func (s *webhookService) ListDeliveries(ctx context.Context, id, userID string, limit int) ([]*domain.WebhookDelivery, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.owned(ctx, id, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxDeliveriesListed {
		limit = maxDeliveriesListed
	}
	list, err := s.webhookRepo.ListDeliveries(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	if list == nil {
		list = []*domain.WebhookDelivery{}
	}
	return list, nil
}

func (s *webhookService) owned(ctx context.Context, id, userID string) (*domain.Webhook, error) {
	w, err := s.webhookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get webhook: %w", err)
	}
	if w.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return w, nil
}

// apply validates the set fields of in and copies them onto w.
func (s *webhookService) apply(ctx context.Context, w *domain.Webhook, in domain.WebhookInput) error {
	if in.SubscriberURL != nil {
		u, err := validateSubscriberURL(*in.SubscriberURL)
		if err != nil {
			return err
		}
		w.SubscriberURL = u
	}
	if in.EventTriggers != nil {
		triggers, err := validateTriggers(in.EventTriggers)
		if err != nil {
			return err
		}
		w.EventTriggers = triggers
	}
	if in.EventTypeID != nil {
		id := strings.TrimSpace(*in.EventTypeID)
		if id == "" {
			w.EventTypeID = nil
		} else {
			et, err := s.eventTypeRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%w: event type not found", domain.ErrInvalidInput)
				}
				return fmt.Errorf("get event type: %w", err)
			}
			if et.UserID != w.UserID {
				return domain.ErrForbidden
			}
			w.EventTypeID = &id
		}
	}
	if in.Active != nil {
		w.Active = *in.Active
	}
	if in.Secret != nil {
		w.Secret = *in.Secret
	}
	w.HasSecret = w.Secret != ""
	if in.PayloadTemplate != nil {
		if tmpl := strings.TrimSpace(*in.PayloadTemplate); tmpl != "" {
			w.PayloadTemplate = &tmpl
		} else {
			w.PayloadTemplate = nil
		}
	}
	return nil
}

func validateSubscriberURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: subscriber_url must be an absolute http(s) URL", domain.ErrInvalidInput)
	}
	return raw, nil
}

func validateTriggers(in []domain.WebhookTrigger) ([]domain.WebhookTrigger, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: at least one event trigger is required", domain.ErrInvalidInput)
	}
	seen := make(map[domain.WebhookTrigger]bool, len(in))
	out := make([]domain.WebhookTrigger, 0, len(in))
	for _, t := range in {
		t = domain.WebhookTrigger(strings.ToUpper(strings.TrimSpace(string(t))))
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown event trigger %q", domain.ErrInvalidInput, t)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
