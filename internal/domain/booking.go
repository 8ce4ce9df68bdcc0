package domain

import (
	"context"
	"time"

	"calbooking/internal/availability"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingAccepted  BookingStatus = "accepted"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted: {BookingCancelled},
}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingAccepted, BookingPending, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// Active reports whether the booking still occupies its time.
func (s BookingStatus) Active() bool {
	return s == BookingAccepted || s == BookingPending
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Cancelled and rejected are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Attendee is a guest of a booking. Seated bookings give every attendee a seat reference.
// swagger:model Attendee
type Attendee struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"booking_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	TimeZone         string    `json:"time_zone"`
	SeatReferenceUID *string   `json:"seat_reference_uid,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Booking is a reservation of a time slot against an event type.
// swagger:model Booking
type Booking struct {
	ID                 string        `json:"id"`
	UID                string        `json:"uid"`
	EventTypeID        string        `json:"event_type_id"`
	UserID             string        `json:"user_id"`
	HostIDs            []string      `json:"host_ids"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	Location           string        `json:"location,omitempty"`
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	Status             BookingStatus `json:"status"`
	Attendees          []*Attendee   `json:"attendees"`
	AttendeeCount      int           `json:"attendee_count"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	RejectionReason    string        `json:"rejection_reason,omitempty"`
	FromReschedule     *string       `json:"from_reschedule,omitempty"`
	Rescheduled        bool          `json:"rescheduled"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// Range returns the booked interval.
func (b *Booking) Range() availability.TimeRange {
	return availability.TimeRange{Start: b.StartTime, End: b.EndTime}
}

// FindSeat returns the attendee holding seatUID, or nil.
func (b *Booking) FindSeat(seatUID string) *Attendee {
	for _, a := range b.Attendees {
		if a.SeatReferenceUID != nil && *a.SeatReferenceUID == seatUID {
			return a
		}
	}
	return nil
}

// HasHost reports whether userID is one of the booked hosts.
func (b *Booking) HasHost(userID string) bool {
	if b.UserID == userID {
		return true
	}
	for _, id := range b.HostIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AttendeeInput identifies the person booking a slot.
type AttendeeInput struct {
	Name     string
	Email    string
	TimeZone string
}

// CreateBookingInput holds the fields accepted when booking a slot.
// A non-empty RescheduleUID turns the request into a reschedule of that booking.
type CreateBookingInput struct {
	EventTypeID   string
	Start         time.Time
	Attendee      AttendeeInput
	Description   string
	Location      string
	RescheduleUID string
}

// RescheduleInput moves a booking, or one seat of it, to a new start.
type RescheduleInput struct {
	Start            time.Time
	Reason           string
	SeatReferenceUID string
}

// CancelInput cancels a booking, or only one seat when SeatReferenceUID is set.
type CancelInput struct {
	Reason           string
	SeatReferenceUID string
	CancelledBy      string
}

// BookingResult is the outcome of a create or reschedule. Attendee is the
// attendee created or moved by the call.
type BookingResult struct {
	Booking  *Booking  `json:"booking"`
	Attendee *Attendee `json:"attendee,omitempty"`
}

// BookingRepository defines the interface for booking storage.
type BookingRepository interface {
	// Create inserts the booking and its attendees in one transaction.
	Create(ctx context.Context, b *Booking) error
	GetByUID(ctx context.Context, uid string) (*Booking, error)
	// ListActiveAt returns the active bookings of the event type that start at
	// start, oldest first, with attendees loaded.
	ListActiveAt(ctx context.Context, eventTypeID string, start time.Time) ([]*Booking, error)
	AddAttendee(ctx context.Context, a *Attendee) error
	DeleteAttendee(ctx context.Context, attendeeID string) error
	// TransitionStatus moves the booking from one status to another and
	// returns ErrConflict when the stored status is no longer from.
	TransitionStatus(ctx context.Context, id string, from, to BookingStatus, reason string) error
	// Reschedule inserts next and cancels prev with rescheduled=true atomically.
	Reschedule(ctx context.Context, prev, next *Booking) error
	// MoveAttendee moves an attendee to target, inserting target first when its ID is empty.
	MoveAttendee(ctx context.Context, attendeeID string, target *Booking) error
	ListActiveByHostsInRange(ctx context.Context, hostIDs []string, from, to time.Time) ([]*Booking, error)
	ListActiveByEventTypeInRange(ctx context.Context, eventTypeID string, from, to time.Time) ([]*Booking, error)
	ListByUser(ctx context.Context, userID string, status BookingStatus, params PaginationParams) ([]*Booking, int, error)
}

// BookingService runs the booking lifecycle.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*BookingResult, error)
	Reschedule(ctx context.Context, uid string, in RescheduleInput) (*BookingResult, error)
	Cancel(ctx context.Context, uid string, in CancelInput) (*Booking, error)
	Confirm(ctx context.Context, uid, actorID string) (*Booking, error)
	Reject(ctx context.Context, uid, actorID, reason string) (*Booking, error)
	Get(ctx context.Context, uid string) (*Booking, error)
	ListForUser(ctx context.Context, userID string, status BookingStatus, params PaginationParams) ([]*Booking, int, error)
}

// SlotLocker serializes availability checks and writes for one key.
type SlotLocker interface {
	Lock(key string) (unlock func())
}
