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

type scheduleService struct {
	scheduleRepo   domain.ScheduleRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewScheduleService creates a ScheduleService. The first schedule a user
// creates becomes their default.
func NewScheduleService(scheduleRepo domain.ScheduleRepository, userRepo domain.UserRepository, timeout time.Duration) domain.ScheduleService {
	return &scheduleService{scheduleRepo: scheduleRepo, userRepo: userRepo, contextTimeout: timeout}
}

func (s *scheduleService) Create(ctx context.Context, userID string, in domain.ScheduleInput) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateScheduleInput(&in); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	now := time.Now()
	sched := &domain.Schedule{
		UserID:       userID,
		Name:         in.Name,
		TimeZone:     in.TimeZone,
		Availability: in.Availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.scheduleRepo.Create(ctx, sched); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	if user.DefaultScheduleID == nil {
		if err := s.userRepo.SetDefaultSchedule(ctx, userID, sched.ID); err != nil {
			return nil, fmt.Errorf("set default schedule: %w", err)
		}
	}
	return sched, nil
}

func (s *scheduleService) Get(ctx context.Context, id, userID string) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.owned(ctx, id, userID)
}

func (s *scheduleService) List(ctx context.Context, userID string) ([]*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.scheduleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	if list == nil {
		list = []*domain.Schedule{}
	}
	return list, nil
}

func (s *scheduleService) Update(ctx context.Context, id, userID string, in domain.ScheduleInput) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateScheduleInput(&in); err != nil {
		return nil, err
	}
	sched, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	sched.Name = in.Name
	sched.TimeZone = in.TimeZone
	sched.Availability = in.Availability
	sched.UpdatedAt = time.Now()
	if err := s.scheduleRepo.Update(ctx, sched); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return sched, nil
}

// Delete removes a schedule. Deleting the default schedule promotes the
// oldest remaining one; the last schedule of a user cannot be deleted while
// it is the default.
func (s *scheduleService) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sched, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user.DefaultScheduleID != nil && *user.DefaultScheduleID == sched.ID {
		all, err := s.scheduleRepo.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("list schedules: %w", err)
		}
		var next *domain.Schedule
		for _, other := range all {
			if other.ID != sched.ID {
				next = other
				break
			}
		}
		if next == nil {
			return fmt.Errorf("%w: cannot delete the only default schedule", domain.ErrConflict)
		}
		if err := s.userRepo.SetDefaultSchedule(ctx, userID, next.ID); err != nil {
			return fmt.Errorf("set default schedule: %w", err)
		}
	}
	if err := s.scheduleRepo.Delete(ctx, sched.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (s *scheduleService) owned(ctx context.Context, id, userID string) (*domain.Schedule, error) {
	sched, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if sched.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return sched, nil
}

func validateScheduleInput(in *domain.ScheduleInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.TimeZone == "" {
		in.TimeZone = "UTC"
	}
	if _, err := availability.LoadLocation(in.TimeZone); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for i, a := range in.Availability {
		if a.IsOverride() {
			if _, err := time.Parse(availability.DateLayout, *a.Date); err != nil {
				return fmt.Errorf("%w: availability[%d]: date must be YYYY-MM-DD", domain.ErrInvalidInput, i)
			}
			if a.StartMinute == 0 && a.EndMinute == 0 {
				continue
			}
			if !availability.ValidMinuteSpan(a.StartMinute, a.EndMinute) {
				return fmt.Errorf("%w: availability[%d]: start_minute must be before end_minute within the day", domain.ErrInvalidInput, i)
			}
			continue
		}
		if len(a.Days) == 0 {
			return fmt.Errorf("%w: availability[%d]: days or date is required", domain.ErrInvalidInput, i)
		}
		for _, d := range a.Days {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: availability[%d]: days must be 0 (Sunday) to 6", domain.ErrInvalidInput, i)
			}
		}
		if !availability.ValidMinuteSpan(a.StartMinute, a.EndMinute) {
			return fmt.Errorf("%w: availability[%d]: start_minute must be before end_minute within the day", domain.ErrInvalidInput, i)
		}
	}
	return nil
}
