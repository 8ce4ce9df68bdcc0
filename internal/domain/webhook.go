package domain

import (
	"context"
	"time"
)

// WebhookTrigger names a booking lifecycle event a webhook can subscribe to.
type WebhookTrigger string

const (
	TriggerBookingCreated     WebhookTrigger = "BOOKING_CREATED"
	TriggerBookingRequested   WebhookTrigger = "BOOKING_REQUESTED"
	TriggerBookingRescheduled WebhookTrigger = "BOOKING_RESCHEDULED"
	TriggerBookingCancelled   WebhookTrigger = "BOOKING_CANCELLED"
	TriggerBookingRejected    WebhookTrigger = "BOOKING_REJECTED"
	TriggerBookingConfirmed   WebhookTrigger = "BOOKING_CONFIRMED"
	TriggerPing               WebhookTrigger = "PING"
)

// AllWebhookTriggers lists every trigger a subscription may name.
var AllWebhookTriggers = []WebhookTrigger{
	TriggerBookingCreated,
	TriggerBookingRequested,
	TriggerBookingRescheduled,
	TriggerBookingCancelled,
	TriggerBookingRejected,
	TriggerBookingConfirmed,
	TriggerPing,
}

// Valid reports whether t is a known trigger.
func (t WebhookTrigger) Valid() bool {
	for _, known := range AllWebhookTriggers {
		if t == known {
			return true
		}
	}
	return false
}

// Webhook is a user-configured HTTP callback fired on booking lifecycle events.
// An EventTypeID narrows the subscription to one event type.
// swagger:model Webhook
type Webhook struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	EventTypeID     *string          `json:"event_type_id,omitempty"`
	SubscriberURL   string           `json:"subscriber_url"`
	EventTriggers   []WebhookTrigger `json:"event_triggers"`
	Active          bool             `json:"active"`
	Secret          string           `json:"-"`
	HasSecret       bool             `json:"has_secret"`
	PayloadTemplate *string          `json:"payload_template,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Subscribes reports whether the webhook listens for t.
func (w *Webhook) Subscribes(t WebhookTrigger) bool {
	for _, trigger := range w.EventTriggers {
		if trigger == t {
			return true
		}
	}
	return false
}

// WebhookDelivery records the final outcome of one delivery.
// swagger:model WebhookDelivery
type WebhookDelivery struct {
	ID         string         `json:"id"`
	WebhookID  string         `json:"webhook_id"`
	Trigger    WebhookTrigger `json:"trigger"`
	Attempts   int            `json:"attempts"`
	StatusCode int            `json:"status_code"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// WebhookInput carries the writable fields of a webhook. Nil pointers leave a field unchanged on update.
type WebhookInput struct {
	SubscriberURL   *string
	EventTypeID     *string
	EventTriggers   []WebhookTrigger
	Active          *bool
	Secret          *string
	PayloadTemplate *string
}

// WebhookRepository defines the interface for webhook storage.
type WebhookRepository interface {
	Create(ctx context.Context, w *Webhook) error
	GetByID(ctx context.Context, id string) (*Webhook, error)
	ListByUser(ctx context.Context, userID string) ([]*Webhook, error)
	Update(ctx context.Context, w *Webhook) error
	Delete(ctx context.Context, id string) error
	// ListActiveForTrigger returns active webhooks of any of userIDs, either
	// unscoped or scoped to eventTypeID, that subscribe to trigger.
	ListActiveForTrigger(ctx context.Context, userIDs []string, eventTypeID string, trigger WebhookTrigger) ([]*Webhook, error)
	RecordDelivery(ctx context.Context, d *WebhookDelivery) error
	ListDeliveries(ctx context.Context, webhookID string, limit int) ([]*WebhookDelivery, error)
}

// WebhookService manages subscriptions.
type WebhookService interface {
	Create(ctx context.Context, userID string, in WebhookInput) (*Webhook, error)
	List(ctx context.Context, userID string) ([]*Webhook, error)
	Get(ctx context.Context, id, userID string) (*Webhook, error)
	Update(ctx context.Context, id, userID string, in WebhookInput) (*Webhook, error)
	Delete(ctx context.Context, id, userID string) error
	Ping(ctx context.Context, id, userID string) (*WebhookDelivery, error)
	ListDeliveries(ctx context.Context, id, userID string, limit int) ([]*WebhookDelivery, error)
}

// WebhookEmitter fans a booking event out to subscribers without blocking the caller.
type WebhookEmitter interface {
	Emit(ctx context.Context, trigger WebhookTrigger, b *Booking, et *EventType)
}

// WebhookDeliverer performs one synchronous delivery, retries included.
type WebhookDeliverer interface {
	Deliver(ctx context.Context, w *Webhook, trigger WebhookTrigger, payload map[string]any) *WebhookDelivery
}
