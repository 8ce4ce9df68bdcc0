package domain

import (
	"context"
	"time"

	"calbooking/internal/availability"
)

// SchedulingType decides how the hosts of a team event type are combined.
type SchedulingType string

const (
	SchedulingNone       SchedulingType = ""
	SchedulingCollective SchedulingType = "collective"
	SchedulingRoundRobin SchedulingType = "round_robin"
)

// Valid reports whether t is a known scheduling type.
func (t SchedulingType) Valid() bool {
	switch t {
	case SchedulingNone, SchedulingCollective, SchedulingRoundRobin:
		return true
	}
	return false
}

// EventType is a bookable meeting template owned by a user, optionally on behalf of a team.
// swagger:model EventType
type EventType struct {
	ID                          string                  `json:"id"`
	UserID                      string                  `json:"user_id"`
	TeamID                      *string                 `json:"team_id,omitempty"`
	Title                       string                  `json:"title"`
	Slug                        string                  `json:"slug"`
	Description                 string                  `json:"description,omitempty"`
	Location                    string                  `json:"location,omitempty"`
	LengthMinutes               int                     `json:"length_minutes"`
	SlotIntervalMinutes         int                     `json:"slot_interval_minutes"`
	MinimumBookingNoticeMinutes int                     `json:"minimum_booking_notice_minutes"`
	BeforeBufferMinutes         int                     `json:"before_buffer_minutes"`
	AfterBufferMinutes          int                     `json:"after_buffer_minutes"`
	PeriodType                  availability.PeriodType `json:"period_type"`
	PeriodDays                  int                     `json:"period_days,omitempty"`
	PeriodCountCalendarDays     bool                    `json:"period_count_calendar_days"`
	PeriodStartDate             string                  `json:"period_start_date,omitempty"`
	PeriodEndDate               string                  `json:"period_end_date,omitempty"`
	SeatsPerTimeSlot            int                     `json:"seats_per_time_slot"`
	SeatsShowAttendees          bool                    `json:"seats_show_attendees"`
	RequiresConfirmation        bool                    `json:"requires_confirmation"`
	SchedulingType              SchedulingType          `json:"scheduling_type,omitempty"`
	Hosts                       []string                `json:"hosts,omitempty"`
	ScheduleID                  *string                 `json:"schedule_id,omitempty"`
	BookingLimits               availability.Limits     `json:"booking_limits"`
	Hidden                      bool                    `json:"hidden"`
	CreatedAt                   time.Time               `json:"created_at"`
	UpdatedAt                   time.Time               `json:"updated_at"`
}

// Length returns the meeting duration.
func (e *EventType) Length() time.Duration {
	return time.Duration(e.LengthMinutes) * time.Minute
}

// IsSeated reports whether several attendees can share one slot.
func (e *EventType) IsSeated() bool {
	return e.SeatsPerTimeSlot > 0
}

// HostIDs returns the users whose calendars decide availability.
// Without explicit hosts the owner is the only host.
func (e *EventType) HostIDs() []string {
	if len(e.Hosts) == 0 {
		return []string{e.UserID}
	}
	return e.Hosts
}

// Rules converts the event type settings into slot engine rules anchored in timeZone.
func (e *EventType) Rules(timeZone string) availability.Rules {
	return availability.Rules{
		Length:        e.Length(),
		Interval:      time.Duration(e.SlotIntervalMinutes) * time.Minute,
		BeforeBuffer:  time.Duration(e.BeforeBufferMinutes) * time.Minute,
		AfterBuffer:   time.Duration(e.AfterBufferMinutes) * time.Minute,
		MinimumNotice: time.Duration(e.MinimumBookingNoticeMinutes) * time.Minute,
		Period: availability.Period{
			Type:         e.PeriodType,
			Days:         e.PeriodDays,
			CalendarDays: e.PeriodCountCalendarDays,
			StartDate:    e.PeriodStartDate,
			EndDate:      e.PeriodEndDate,
		},
		Seats:    e.SeatsPerTimeSlot,
		Limits:   e.BookingLimits,
		TimeZone: timeZone,
	}
}

// Mode maps the scheduling type onto the engine's host combination.
func (e *EventType) Mode() availability.Mode {
	if e.SchedulingType == SchedulingCollective {
		return availability.ModeAllHosts
	}
	return availability.ModeAnyHost
}

// EventTypeRepository defines the interface for event type storage.
type EventTypeRepository interface {
	Create(ctx context.Context, et *EventType) error
	GetByID(ctx context.Context, id string) (*EventType, error)
	GetBySlug(ctx context.Context, userID, slug string) (*EventType, error)
	ListByUser(ctx context.Context, userID string) ([]*EventType, error)
	Update(ctx context.Context, et *EventType) error
	Delete(ctx context.Context, id string) error
}

// EventTypeService manages event types for their owner.
type EventTypeService interface {
	Create(ctx context.Context, userID string, et *EventType) error
	Get(ctx context.Context, id, userID string) (*EventType, error)
	List(ctx context.Context, userID string) ([]*EventType, error)
	Update(ctx context.Context, id, userID string, et *EventType) (*EventType, error)
	Delete(ctx context.Context, id, userID string) error
}
