package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"calbooking/internal/domain"
)

const bookingColumns = `b.id, b.uid, b.event_type_id, b.user_id, b.host_ids, b.title, b.description, b.location,
	b.start_time, b.end_time, b.status, b.cancellation_reason, b.rejection_reason, b.from_reschedule,
	b.rescheduled, b.created_at, b.updated_at,
	(SELECT COUNT(*) FROM attendees a WHERE a.booking_id = b.id) AS attendee_count`

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{DB: db}
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var (
		hosts          pq.StringArray
		fromReschedule sql.NullString
	)
	err := row.Scan(&b.ID, &b.UID, &b.EventTypeID, &b.UserID, &hosts, &b.Title, &b.Description, &b.Location,
		&b.StartTime, &b.EndTime, &b.Status, &b.CancellationReason, &b.RejectionReason, &fromReschedule,
		&b.Rescheduled, &b.CreatedAt, &b.UpdatedAt, &b.AttendeeCount)
	if err != nil {
		return nil, err
	}
	b.HostIDs = []string(hosts)
	if b.HostIDs == nil {
		b.HostIDs = []string{}
	}
	b.FromReschedule = nullString(fromReschedule)
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	b.Attendees = []*domain.Attendee{}
	return b, nil
}

func insertBooking(ctx context.Context, q execer, b *domain.Booking) error {
	hosts := b.HostIDs
	if hosts == nil {
		hosts = []string{}
	}
	query := `
		INSERT INTO bookings (uid, event_type_id, user_id, host_ids, title, description, location,
			start_time, end_time, status, cancellation_reason, rejection_reason, from_reschedule,
			rescheduled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query, b.UID, b.EventTypeID, b.UserID, pq.Array(hosts), b.Title, b.Description, b.Location,
		b.StartTime, b.EndTime, b.Status, b.CancellationReason, b.RejectionReason, b.FromReschedule,
		b.Rescheduled, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	for _, a := range b.Attendees {
		a.BookingID = b.ID
		if err := insertAttendee(ctx, q, a); err != nil {
			return err
		}
	}
	b.AttendeeCount = len(b.Attendees)
	return nil
}

func insertAttendee(ctx context.Context, q execer, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (booking_id, name, email, time_zone, seat_reference_uid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	err := q.QueryRowContext(ctx, query, a.BookingID, a.Name, a.Email, a.TimeZone, a.SeatReferenceUID, createdAt).Scan(&a.ID)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrConflict
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	}
	return err
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertBooking(ctx, tx, b); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookingRepository) GetByUID(ctx context.Context, uid string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.uid = $1`
	return r.getOne(ctx, query, uid)
}

func (r *bookingRepository) ListActiveAt(ctx context.Context, eventTypeID string, start time.Time) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.event_type_id = $1 AND b.start_time = $2 AND b.status IN ` + activeStatuses + `
		ORDER BY b.created_at
	`
	bookings, err := r.list(ctx, query, eventTypeID, start)
	if err != nil {
		return nil, err
	}
	if err := r.loadAttendees(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadAttendees(ctx, []*domain.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// loadAttendees fills the attendees of every booking with one query.
func (r *bookingRepository) loadAttendees(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]string, 0, len(bookings))
	byID := make(map[string]*domain.Booking, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		byID[b.ID] = b
	}
	query := `
		SELECT id, booking_id, name, email, time_zone, seat_reference_uid, created_at
		FROM attendees
		WHERE booking_id = ANY($1)
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		a := &domain.Attendee{}
		var seat sql.NullString
		if err := rows.Scan(&a.ID, &a.BookingID, &a.Name, &a.Email, &a.TimeZone, &seat, &a.CreatedAt); err != nil {
			return err
		}
		a.SeatReferenceUID = nullString(seat)
		if b, ok := byID[a.BookingID]; ok {
			b.Attendees = append(b.Attendees, a)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, b := range bookings {
		b.AttendeeCount = len(b.Attendees)
	}
	return nil
}

func (r *bookingRepository) AddAttendee(ctx context.Context, a *domain.Attendee) error {
	return insertAttendee(ctx, r.DB, a)
}

func (r *bookingRepository) DeleteAttendee(ctx context.Context, attendeeID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM attendees WHERE id = $1`, attendeeID)
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

func (r *bookingRepository) TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) error {
	query := `
		UPDATE bookings SET
			status = $3,
			cancellation_reason = CASE WHEN $3 = 'cancelled' THEN $4 ELSE cancellation_reason END,
			rejection_reason = CASE WHEN $3 = 'rejected' THEN $4 ELSE rejection_reason END,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	result, err := r.DB.ExecContext(ctx, query, id, from, to, reason)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func (r *bookingRepository) Reschedule(ctx context.Context, prev, next *domain.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET status = 'cancelled', rescheduled = TRUE, cancellation_reason = $2, updated_at = NOW()
		WHERE id = $1 AND status IN `+activeStatuses, prev.ID, prev.CancellationReason)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrConflict
	}
	if err := insertBooking(ctx, tx, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	prev.Status = domain.BookingCancelled
	prev.Rescheduled = true
	return nil
}

func (r *bookingRepository) MoveAttendee(ctx context.Context, attendeeID string, target *domain.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if target.ID == "" {
		if err := insertBooking(ctx, tx, target); err != nil {
			return err
		}
	}
	result, err := tx.ExecContext(ctx, `UPDATE attendees SET booking_id = $2 WHERE id = $1`, attendeeID, target.ID)
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
	return tx.Commit()
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListActiveByHostsInRange(ctx context.Context, hostIDs []string, from, to time.Time) ([]*domain.Booking, error) {
	if len(hostIDs) == 0 {
		return []*domain.Booking{}, nil
	}
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE (b.user_id = ANY($1) OR b.host_ids && $1)
			AND b.status IN ` + activeStatuses + `
			AND b.start_time < $3 AND b.end_time > $2
		ORDER BY b.start_time
	`
	return r.list(ctx, query, pq.Array(hostIDs), from, to)
}

func (r *bookingRepository) ListActiveByEventTypeInRange(ctx context.Context, eventTypeID string, from, to time.Time) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.event_type_id = $1
			AND b.status IN ` + activeStatuses + `
			AND b.start_time < $3 AND b.end_time > $2
		ORDER BY b.start_time
	`
	return r.list(ctx, query, eventTypeID, from, to)
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string, status domain.BookingStatus, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM bookings b
		WHERE (b.user_id = $1 OR $1 = ANY(b.host_ids)) AND ($2 = '' OR b.status = $2)
	`
	if err := r.DB.QueryRowContext(ctx, countQuery, userID, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE (b.user_id = $1 OR $1 = ANY(b.host_ids)) AND ($2 = '' OR b.status = $2)
		ORDER BY b.start_time, b.id
		LIMIT $3 OFFSET $4
	`
	bookings, err := r.list(ctx, query, userID, status, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadAttendees(ctx, bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}
