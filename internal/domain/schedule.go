package domain

import (
	"context"
	"time"

	"calbooking/internal/availability"
)

// Availability is one row of a schedule: a weekly rule when Date is nil,
// otherwise an override for that local date. Minutes count from local midnight.
// swagger:model Availability
type Availability struct {
	ID          string  `json:"id,omitempty"`
	Days        []int   `json:"days,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartMinute int     `json:"start_minute"`
	EndMinute   int     `json:"end_minute"`
}

// IsOverride reports whether the row replaces a single date.
func (a Availability) IsOverride() bool {
	return a.Date != nil
}

// Schedule is a named set of working hours in one time zone.
// swagger:model Schedule
type Schedule struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	TimeZone     string         `json:"time_zone"`
	Availability []Availability `json:"availability"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Engine converts the schedule into the form the slot engine consumes.
func (s *Schedule) Engine() availability.Schedule {
	out := availability.Schedule{TimeZone: s.TimeZone}
	for _, a := range s.Availability {
		if a.IsOverride() {
			out.Overrides = append(out.Overrides, availability.DateOverride{
				Date:        *a.Date,
				StartMinute: a.StartMinute,
				EndMinute:   a.EndMinute,
			})
			continue
		}
		days := make([]time.Weekday, 0, len(a.Days))
		for _, d := range a.Days {
			days = append(days, time.Weekday(d))
		}
		out.Rules = append(out.Rules, availability.WeeklyRule{
			Days:        days,
			StartMinute: a.StartMinute,
			EndMinute:   a.EndMinute,
		})
	}
	return out
}

// ScheduleInput is the writable part of a schedule.
type ScheduleInput struct {
	Name         string
	TimeZone     string
	Availability []Availability
}

// ScheduleRepository defines the interface for schedule storage.
type ScheduleRepository interface {
	// Create inserts the schedule and its availability rows in one transaction.
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	ListByUser(ctx context.Context, userID string) ([]*Schedule, error)
	// Update replaces name, time zone and every availability row.
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id string) error
}

// ScheduleService manages a user's schedules.
type ScheduleService interface {
	Create(ctx context.Context, userID string, in ScheduleInput) (*Schedule, error)
	Get(ctx context.Context, id, userID string) (*Schedule, error)
	List(ctx context.Context, userID string) ([]*Schedule, error)
	Update(ctx context.Context, id, userID string, in ScheduleInput) (*Schedule, error)
	Delete(ctx context.Context, id, userID string) error
}
