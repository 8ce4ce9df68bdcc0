package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"calbooking/internal/availability"
	"calbooking/internal/domain"
)

var tracer = otel.Tracer("calbooking/internal/services")

// maxSlotsWindow caps how far apart from and to may be in one slots query.
const maxSlotsWindow = 62 * 24 * time.Hour

// CalendarOptions bounds busy-time lookups against external calendars.
type CalendarOptions struct {
	Timeout     time.Duration
	Concurrency int
}

type availabilityService struct {
	eventTypeRepo  domain.EventTypeRepository
	userRepo       domain.UserRepository
	scheduleRepo   domain.ScheduleRepository
	bookingRepo    domain.BookingRepository
	credentialRepo domain.CredentialRepository
	calendars      domain.CalendarRegistry
	calendarOpts   CalendarOptions
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAvailabilityService creates an AvailabilityService.
func NewAvailabilityService(
	eventTypeRepo domain.EventTypeRepository,
	userRepo domain.UserRepository,
	scheduleRepo domain.ScheduleRepository,
	bookingRepo domain.BookingRepository,
	credentialRepo domain.CredentialRepository,
	calendars domain.CalendarRegistry,
	calendarOpts CalendarOptions,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AvailabilityService {
	if calendarOpts.Concurrency < 1 {
		calendarOpts.Concurrency = 1
	}
	return &availabilityService{
		eventTypeRepo:  eventTypeRepo,
		userRepo:       userRepo,
		scheduleRepo:   scheduleRepo,
		bookingRepo:    bookingRepo,
		credentialRepo: credentialRepo,
		calendars:      calendars,
		calendarOpts:   calendarOpts,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *availabilityService) GetSlots(ctx context.Context, q domain.SlotsQuery) (*domain.SlotsResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	ctx, span := tracer.Start(ctx, "availability.GetSlots")
	defer span.End()

	if q.From.IsZero() || q.To.IsZero() || !q.To.After(q.From) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, availability.ErrInvalidTimeRange)
	}
	if q.To.Sub(q.From) > maxSlotsWindow {
		return nil, fmt.Errorf("%w: window must not exceed %d days", domain.ErrInvalidInput, int(maxSlotsWindow/(24*time.Hour)))
	}
	viewer, err := availability.LoadLocation(q.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	et, err := s.resolveEventType(ctx, q)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("event_type.id", et.ID))

	slots, err := s.compute(ctx, et, q.From, q.To, q.RescheduleUID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("slots.count", len(slots)))
	return &domain.SlotsResult{
		EventTypeID: et.ID,
		TimeZone:    viewer.String(),
		Slots:       availability.GroupByDate(slots, viewer),
	}, nil
}

func (s *availabilityService) CheckSlot(ctx context.Context, et *domain.EventType, start time.Time, excludeUID string) (*availability.Slot, error) {
	ctx, span := tracer.Start(ctx, "availability.CheckSlot")
	defer span.End()

	// The grid is anchored to working days, so any window around start sees it.
	from := start.Add(-24 * time.Hour)
	to := start.Add(et.Length() + 24*time.Hour)
	slots, err := s.compute(ctx, et, from, to, excludeUID)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].Start.Equal(start) {
			return &slots[i], nil
		}
	}
	return nil, domain.ErrSlotUnavailable
}

func (s *availabilityService) resolveEventType(ctx context.Context, q domain.SlotsQuery) (*domain.EventType, error) {
	if q.EventTypeID != "" {
		et, err := s.eventTypeRepo.GetByID(ctx, q.EventTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("get event type: %w", err)
		}
		return et, nil
	}
	if q.Username == "" || q.Slug == "" {
		return nil, fmt.Errorf("%w: event_type_id or username and slug are required", domain.ErrInvalidInput)
	}
	owner, err := s.userRepo.GetByUsername(ctx, q.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	et, err := s.eventTypeRepo.GetBySlug(ctx, owner.ID, q.Slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event type: %w", err)
	}
	return et, nil
}

// compute loads every input of the slot engine for et and runs it over [from, to).
func (s *availabilityService) compute(ctx context.Context, et *domain.EventType, from, to time.Time, excludeUID string) ([]availability.Slot, error) {
	hostIDs := et.HostIDs()
	users, err := s.userRepo.ListByIDs(ctx, hostIDs)
	if err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	ownerZone := "UTC"
	if owner, ok := byID[et.UserID]; ok && owner.TimeZone != "" {
		ownerZone = owner.TimeZone
	}
	ownerLoc, err := availability.LoadLocation(ownerZone)
	if err != nil {
		return nil, err
	}

	margin := et.Length() + time.Duration(et.BeforeBufferMinutes+et.AfterBufferMinutes)*time.Minute
	lookFrom, lookTo := from.Add(-margin), to.Add(margin)

	bookings, err := s.bookingRepo.ListActiveByHostsInRange(ctx, hostIDs, lookFrom, lookTo)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	busy := s.busyTimes(ctx, hostIDs, lookFrom, lookTo)

	var eventBookings []availability.TimeRange
	if !et.BookingLimits.Empty() {
		// Whole local years, plus the week that may straddle New Year.
		yearStart := time.Date(from.In(ownerLoc).Year(), 1, 1, 0, 0, 0, 0, ownerLoc).AddDate(0, 0, -7)
		yearEnd := time.Date(to.In(ownerLoc).Year()+1, 1, 1, 0, 0, 0, 0, ownerLoc).AddDate(0, 0, 7)
		list, err := s.bookingRepo.ListActiveByEventTypeInRange(ctx, et.ID, yearStart, yearEnd)
		if err != nil {
			return nil, fmt.Errorf("list event type bookings: %w", err)
		}
		for _, b := range list {
			if b.UID != excludeUID {
				eventBookings = append(eventBookings, b.Range())
			}
		}
	}

	hosts := make([]availability.HostInput, 0, len(hostIDs))
	for _, hostID := range hostIDs {
		user, ok := byID[hostID]
		if !ok {
			s.logger.WarnContext(ctx, "event type host not found", "event_type_id", et.ID, "host_id", hostID)
			continue
		}
		sched, err := s.hostSchedule(ctx, et, user)
		if err != nil {
			return nil, err
		}
		input := availability.HostInput{HostID: hostID, Schedule: sched, Busy: busy[hostID]}
		for _, b := range bookings {
			if b.UID == excludeUID || !b.HasHost(hostID) {
				continue
			}
			input.Bookings = append(input.Bookings, availability.Booking{
				Range:         b.Range(),
				SameEventType: b.EventTypeID == et.ID,
				Attendees:     b.AttendeeCount,
			})
		}
		hosts = append(hosts, input)
	}

	slots, err := availability.Compute(availability.Input{
		Rules:         et.Rules(ownerZone),
		Mode:          et.Mode(),
		Hosts:         hosts,
		EventBookings: eventBookings,
		From:          from,
		To:            to,
		Now:           s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return slots, nil
}

// hostSchedule picks the event type's schedule for its owner and each host's
// default schedule otherwise. A host without a schedule has no working hours.
func (s *availabilityService) hostSchedule(ctx context.Context, et *domain.EventType, user *domain.User) (availability.Schedule, error) {
	var id *string
	if et.ScheduleID != nil && user.ID == et.UserID {
		id = et.ScheduleID
	} else {
		id = user.DefaultScheduleID
	}
	if id == nil {
		return availability.Schedule{TimeZone: user.TimeZone}, nil
	}
	sched, err := s.scheduleRepo.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return availability.Schedule{TimeZone: user.TimeZone}, nil
		}
		return availability.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}
	return sched.Engine(), nil
}

// busyTimes asks every valid calendar credential of the hosts for busy ranges.
// A failing provider is logged and ignored; a rejected credential is marked invalid.
func (s *availabilityService) busyTimes(ctx context.Context, hostIDs []string, from, to time.Time) map[string][]availability.TimeRange {
	out := make(map[string][]availability.TimeRange)
	if s.credentialRepo == nil || s.calendars == nil {
		return out
	}
	creds, err := s.credentialRepo.ListValidByUsers(ctx, hostIDs)
	if err != nil {
		s.logger.WarnContext(ctx, "list calendar credentials failed", "err", err)
		return out
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.calendarOpts.Concurrency)
	for _, cred := range creds {
		provider, ok := s.calendars.Provider(cred.Type)
		if !ok {
			s.logger.WarnContext(ctx, "no calendar provider for credential", "credential_id", cred.ID, "type", cred.Type)
			continue
		}
		g.Go(func() error {
			cctx := gctx
			if s.calendarOpts.Timeout > 0 {
				var cancel context.CancelFunc
				cctx, cancel = context.WithTimeout(gctx, s.calendarOpts.Timeout)
				defer cancel()
			}
			ranges, err := provider.BusyTimes(cctx, cred, from, to)
			if err != nil {
				s.logger.WarnContext(ctx, "calendar busy times failed", "credential_id", cred.ID, "user_id", cred.UserID, "err", err)
				if errors.Is(err, domain.ErrCredentialRejected) {
					if err := s.credentialRepo.MarkInvalid(ctx, cred.ID); err != nil {
						s.logger.ErrorContext(ctx, "mark credential invalid failed", "credential_id", cred.ID, "err", err)
					}
				}
				return nil
			}
			mu.Lock()
			out[cred.UserID] = append(out[cred.UserID], ranges...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
