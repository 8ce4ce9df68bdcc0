package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"calbooking/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{DB: db}
}

func (r *scheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedules (user_id, name, time_zone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, s.UserID, s.Name, s.TimeZone, s.CreatedAt, s.UpdatedAt).Scan(&s.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if err := insertAvailability(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit()
}

func insertAvailability(ctx context.Context, tx *sql.Tx, s *domain.Schedule) error {
	query := `
		INSERT INTO availability (schedule_id, days, date, start_minute, end_minute)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range s.Availability {
		a := &s.Availability[i]
		days := make(pq.Int64Array, 0, len(a.Days))
		for _, d := range a.Days {
			days = append(days, int64(d))
		}
		if err := tx.QueryRowContext(ctx, query, s.ID, days, a.Date, a.StartMinute, a.EndMinute).Scan(&a.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	query := `
		SELECT id, user_id, name, time_zone, created_at, updated_at
		FROM schedules
		WHERE id = $1
	`
	s := &domain.Schedule{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.Name, &s.TimeZone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadAvailability(ctx, []*domain.Schedule{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *scheduleRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Schedule, error) {
	query := `
		SELECT id, user_id, name, time_zone, created_at, updated_at
		FROM schedules
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.TimeZone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAvailability(ctx, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// loadAvailability fills the availability rows of every schedule with one query.
func (r *scheduleRepository) loadAvailability(ctx context.Context, schedules []*domain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	ids := make([]string, 0, len(schedules))
	byID := make(map[string]*domain.Schedule, len(schedules))
	for _, s := range schedules {
		s.Availability = []domain.Availability{}
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}
	query := `
		SELECT id, schedule_id, days, to_char(date, 'YYYY-MM-DD'), start_minute, end_minute
		FROM availability
		WHERE schedule_id = ANY($1)
		ORDER BY date NULLS FIRST, start_minute, id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			a          domain.Availability
			scheduleID string
			days       pq.Int64Array
			date       sql.NullString
		)
		if err := rows.Scan(&a.ID, &scheduleID, &days, &date, &a.StartMinute, &a.EndMinute); err != nil {
			return err
		}
		for _, d := range days {
			a.Days = append(a.Days, int(d))
		}
		a.Date = nullString(date)
		if s, ok := byID[scheduleID]; ok {
			s.Availability = append(s.Availability, a)
		}
	}
	return rows.Err()
}

func (r *scheduleRepository) Update(ctx context.Context, s *domain.Schedule) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `
		UPDATE schedules
		SET name = $2, time_zone = $3, updated_at = $4
		WHERE id = $1
	`, s.ID, s.Name, s.TimeZone, s.UpdatedAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM availability WHERE schedule_id = $1`, s.ID); err != nil {
		return err
	}
	if err := insertAvailability(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
