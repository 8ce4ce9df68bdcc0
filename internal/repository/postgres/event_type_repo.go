package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"calbooking/internal/domain"
)

const eventTypeColumns = `id, user_id, team_id, title, slug, description, location, length_minutes,
	slot_interval_minutes, minimum_booking_notice_minutes, before_buffer_minutes, after_buffer_minutes,
	period_type, period_days, period_count_calendar_days, period_start_date, period_end_date,
	seats_per_time_slot, seats_show_attendees, requires_confirmation, scheduling_type, hosts,
	schedule_id, booking_limits, hidden, created_at, updated_at`

type eventTypeRepository struct {
	DB *sql.DB
}

func NewEventTypeRepository(db *sql.DB) domain.EventTypeRepository {
	return &eventTypeRepository{DB: db}
}

func scanEventType(row rowScanner) (*domain.EventType, error) {
	et := &domain.EventType{}
	var (
		teamID, scheduleID sql.NullString
		hosts              pq.StringArray
		limits             []byte
	)
	err := row.Scan(&et.ID, &et.UserID, &teamID, &et.Title, &et.Slug, &et.Description, &et.Location, &et.LengthMinutes,
		&et.SlotIntervalMinutes, &et.MinimumBookingNoticeMinutes, &et.BeforeBufferMinutes, &et.AfterBufferMinutes,
		&et.PeriodType, &et.PeriodDays, &et.PeriodCountCalendarDays, &et.PeriodStartDate, &et.PeriodEndDate,
		&et.SeatsPerTimeSlot, &et.SeatsShowAttendees, &et.RequiresConfirmation, &et.SchedulingType, &hosts,
		&scheduleID, &limits, &et.Hidden, &et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		return nil, err
	}
	et.TeamID = nullString(teamID)
	et.ScheduleID = nullString(scheduleID)
	if len(hosts) > 0 {
		et.Hosts = []string(hosts)
	}
	if len(limits) > 0 {
		if err := json.Unmarshal(limits, &et.BookingLimits); err != nil {
			return nil, fmt.Errorf("decode booking limits: %w", err)
		}
	}
	return et, nil
}

func eventTypeArgs(et *domain.EventType) ([]any, error) {
	limits, err := json.Marshal(et.BookingLimits)
	if err != nil {
		return nil, fmt.Errorf("encode booking limits: %w", err)
	}
	hosts := et.Hosts
	if hosts == nil {
		hosts = []string{}
	}
	return []any{
		et.UserID, et.TeamID, et.Title, et.Slug, et.Description, et.Location, et.LengthMinutes,
		et.SlotIntervalMinutes, et.MinimumBookingNoticeMinutes, et.BeforeBufferMinutes, et.AfterBufferMinutes,
		et.PeriodType, et.PeriodDays, et.PeriodCountCalendarDays, et.PeriodStartDate, et.PeriodEndDate,
		et.SeatsPerTimeSlot, et.SeatsShowAttendees, et.RequiresConfirmation, et.SchedulingType, pq.Array(hosts),
		et.ScheduleID, limits, et.Hidden,
	}, nil
}

func (r *eventTypeRepository) Create(ctx context.Context, et *domain.EventType) error {
	args, err := eventTypeArgs(et)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO event_types (user_id, team_id, title, slug, description, location, length_minutes,
			slot_interval_minutes, minimum_booking_notice_minutes, before_buffer_minutes, after_buffer_minutes,
			period_type, period_days, period_count_calendar_days, period_start_date, period_end_date,
			seats_per_time_slot, seats_show_attendees, requires_confirmation, scheduling_type, hosts,
			schedule_id, booking_limits, hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26)
		RETURNING id
	`
	args = append(args, et.CreatedAt, et.UpdatedAt)
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&et.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *eventTypeRepository) GetByID(ctx context.Context, id string) (*domain.EventType, error) {
	query := `SELECT ` + eventTypeColumns + ` FROM event_types WHERE id = $1`
	et, err := scanEventType(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return et, nil
}

func (r *eventTypeRepository) GetBySlug(ctx context.Context, userID, slug string) (*domain.EventType, error) {
	query := `SELECT ` + eventTypeColumns + ` FROM event_types WHERE user_id = $1 AND slug = $2`
	et, err := scanEventType(r.DB.QueryRowContext(ctx, query, userID, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return et, nil
}

func (r *eventTypeRepository) ListByUser(ctx context.Context, userID string) ([]*domain.EventType, error) {
	query := `SELECT ` + eventTypeColumns + ` FROM event_types WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*domain.EventType, 0)
	for rows.Next() {
		et, err := scanEventType(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, et)
	}
	return list, rows.Err()
}

func (r *eventTypeRepository) Update(ctx context.Context, et *domain.EventType) error {
	args, err := eventTypeArgs(et)
	if err != nil {
		return err
	}
	query := `
		UPDATE event_types SET
			user_id = $1, team_id = $2, title = $3, slug = $4, description = $5, location = $6, length_minutes = $7,
			slot_interval_minutes = $8, minimum_booking_notice_minutes = $9, before_buffer_minutes = $10,
			after_buffer_minutes = $11, period_type = $12, period_days = $13, period_count_calendar_days = $14,
			period_start_date = $15, period_end_date = $16, seats_per_time_slot = $17, seats_show_attendees = $18,
			requires_confirmation = $19, scheduling_type = $20, hosts = $21, schedule_id = $22,
			booking_limits = $23, hidden = $24, updated_at = $25
		WHERE id = $26
	`
	args = append(args, et.UpdatedAt, et.ID)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_types WHERE id = $1`, id)
	if err != nil {
		switch {
		case isInvalidID(err):
			return domain.ErrNotFound
		case isForeignKeyViolation(err):
			// bookings keep referencing the event type
			return domain.ErrConflict
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
