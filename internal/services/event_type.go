package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calbooking/internal/availability"
	"calbooking/internal/domain"
)

const (
	maxEventLengthMinutes = 720
	maxSeatsPerTimeSlot   = 1000
)

type eventTypeService struct {
	eventTypeRepo  domain.EventTypeRepository
	scheduleRepo   domain.ScheduleRepository
	teamRepo       domain.TeamRepository
	contextTimeout time.Duration
}

// NewEventTypeService creates an EventTypeService.
func NewEventTypeService(eventTypeRepo domain.EventTypeRepository, scheduleRepo domain.ScheduleRepository, teamRepo domain.TeamRepository, timeout time.Duration) domain.EventTypeService {
	return &eventTypeService{
		eventTypeRepo:  eventTypeRepo,
		scheduleRepo:   scheduleRepo,
		teamRepo:       teamRepo,
		contextTimeout: timeout,
	}
}

func (s *eventTypeService) Create(ctx context.Context, userID string, et *domain.EventType) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	et.UserID = userID
	if err := validateEventType(et); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, et); err != nil {
		return err
	}
	now := time.Now()
	et.CreatedAt = now
	et.UpdatedAt = now
	if err := s.eventTypeRepo.Create(ctx, et); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: slug %q already used", domain.ErrConflict, et.Slug)
		}
		return fmt.Errorf("create event type: %w", err)
	}
	return nil
}

func (s *eventTypeService) Get(ctx context.Context, id, userID string) (*domain.EventType, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.owned(ctx, id, userID)
}

func (s *eventTypeService) List(ctx context.Context, userID string) ([]*domain.EventType, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.eventTypeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list event types: %w", err)
	}
	if list == nil {
		list = []*domain.EventType{}
	}
	return list, nil
}

func (s *eventTypeService) Update(ctx context.Context, id, userID string, et *domain.EventType) (*domain.EventType, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	et.ID = existing.ID
	et.UserID = existing.UserID
	et.CreatedAt = existing.CreatedAt
	if err := validateEventType(et); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, et); err != nil {
		return nil, err
	}
	et.UpdatedAt = time.Now()
	if err := s.eventTypeRepo.Update(ctx, et); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update event type: %w", err)
	}
	return et, nil
}

func (s *eventTypeService) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.eventTypeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete event type: %w", err)
	}
	return nil
}

func (s *eventTypeService) owned(ctx context.Context, id, userID string) (*domain.EventType, error) {
	et, err := s.eventTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event type: %w", err)
	}
	if et.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return et, nil
}

// checkReferences verifies the schedule belongs to the owner and, for team
// event types, that the owner manages the team and every host is a member.
func (s *eventTypeService) checkReferences(ctx context.Context, et *domain.EventType) error {
	if et.ScheduleID != nil {
		sched, err := s.scheduleRepo.GetByID(ctx, *et.ScheduleID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: schedule not found", domain.ErrInvalidInput)
			}
			return fmt.Errorf("get schedule: %w", err)
		}
		if sched.UserID != et.UserID {
			return domain.ErrForbidden
		}
	}
	if et.TeamID == nil {
		return nil
	}
	owner, err := s.teamRepo.GetMembership(ctx, *et.TeamID, et.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get membership: %w", err)
	}
	if !owner.Role.CanManage() {
		return domain.ErrForbidden
	}
	for _, host := range et.Hosts {
		m, err := s.teamRepo.GetMembership(ctx, *et.TeamID, host)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: host %s is not a team member", domain.ErrInvalidInput, host)
			}
			return fmt.Errorf("get membership: %w", err)
		}
		if !m.Accepted {
			return fmt.Errorf("%w: host %s has not accepted the team invitation", domain.ErrInvalidInput, host)
		}
	}
	return nil
}

func validateEventType(et *domain.EventType) error {
	var errs []string
	et.Title = strings.TrimSpace(et.Title)
	if et.Title == "" {
		errs = append(errs, "title is required")
	}
	et.Slug = slugify(et.Slug)
	if et.Slug == "" {
		et.Slug = slugify(et.Title)
	}
	if et.Slug == "" {
		errs = append(errs, "slug is required")
	}
	if et.LengthMinutes < 1 || et.LengthMinutes > maxEventLengthMinutes {
		errs = append(errs, fmt.Sprintf("length_minutes must be between 1 and %d", maxEventLengthMinutes))
	}
	if et.SlotIntervalMinutes < 0 || et.SlotIntervalMinutes > maxEventLengthMinutes {
		errs = append(errs, fmt.Sprintf("slot_interval_minutes must be between 0 and %d", maxEventLengthMinutes))
	}
	if et.MinimumBookingNoticeMinutes < 0 {
		errs = append(errs, "minimum_booking_notice_minutes must not be negative")
	}
	if et.BeforeBufferMinutes < 0 || et.AfterBufferMinutes < 0 {
		errs = append(errs, "buffers must not be negative")
	}
	if et.SeatsPerTimeSlot < 0 || et.SeatsPerTimeSlot > maxSeatsPerTimeSlot {
		errs = append(errs, fmt.Sprintf("seats_per_time_slot must be between 0 and %d", maxSeatsPerTimeSlot))
	}
	l := et.BookingLimits
	if l.PerDay < 0 || l.PerWeek < 0 || l.PerMonth < 0 || l.PerYear < 0 {
		errs = append(errs, "booking_limits must not be negative")
	}
	errs = append(errs, validatePeriod(et)...)

	if !et.SchedulingType.Valid() {
		errs = append(errs, "scheduling_type must be collective or round_robin")
	}
	if et.TeamID == nil {
		if et.SchedulingType != domain.SchedulingNone {
			errs = append(errs, "scheduling_type requires team_id")
		}
		if len(et.Hosts) > 1 || (len(et.Hosts) == 1 && et.Hosts[0] != et.UserID) {
			errs = append(errs, "hosts require team_id")
		}
	} else {
		if et.SchedulingType == domain.SchedulingNone {
			errs = append(errs, "team event types need a scheduling_type")
		}
		if len(et.Hosts) == 0 {
			errs = append(errs, "team event types need at least one host")
		}
	}
	et.Hosts = dedupe(et.Hosts)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

func validatePeriod(et *domain.EventType) []string {
	switch et.PeriodType {
	case "":
		et.PeriodType = availability.PeriodUnlimited
	case availability.PeriodUnlimited:
	case availability.PeriodRolling:
		if et.PeriodDays < 0 {
			return []string{"period_days must not be negative"}
		}
	case availability.PeriodRange:
		start, err1 := time.Parse(availability.DateLayout, et.PeriodStartDate)
		end, err2 := time.Parse(availability.DateLayout, et.PeriodEndDate)
		if err1 != nil || err2 != nil {
			return []string{"period_start_date and period_end_date must be YYYY-MM-DD"}
		}
		if end.Before(start) {
			return []string{"period_end_date must not be before period_start_date"}
		}
	default:
		return []string{"period_type must be unlimited, rolling or range"}
	}
	return nil
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
