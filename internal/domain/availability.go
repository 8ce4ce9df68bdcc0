package domain

import (
	"context"
	"time"

	"calbooking/internal/availability"
)

// SlotsQuery selects an event type by ID, or by owner username and slug, and a window.
type SlotsQuery struct {
	EventTypeID   string
	Username      string
	Slug          string
	From          time.Time
	To            time.Time
	TimeZone      string
	RescheduleUID string
}

// SlotsResult holds slots keyed by local date in TimeZone.
// swagger:model SlotsResult
type SlotsResult struct {
	EventTypeID string                         `json:"event_type_id"`
	TimeZone    string                         `json:"time_zone"`
	Slots       map[string][]availability.Slot `json:"slots"`
}

// AvailabilityService computes bookable slots.
type AvailabilityService interface {
	GetSlots(ctx context.Context, q SlotsQuery) (*SlotsResult, error)
	// CheckSlot returns the slot starting at start, with its free hosts, or
	// ErrSlotUnavailable. Bookings with excludeUID are ignored.
	CheckSlot(ctx context.Context, et *EventType, start time.Time, excludeUID string) (*availability.Slot, error)
}
