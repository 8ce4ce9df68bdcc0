package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calbooking/internal/domain"
)

var (
	bookingCols  = []string{"id", "uid", "event_type_id", "user_id", "host_ids", "title", "description", "location", "start_time", "end_time", "status", "cancellation_reason", "rejection_reason", "from_reschedule", "rescheduled", "created_at", "updated_at", "attendee_count"}
	attendeeCols = []string{"id", "booking_id", "name", "email", "time_zone", "seat_reference_uid", "created_at"}
	bookingStart = time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
)

func bookingRow(id, uid, status string, attendees int) []driver.Value {
	return []driver.Value{
		id, uid, "et-1", "user-1", "{user-1,user-2}", "Intro between Alice and Bob", "", "Zoom",
		bookingStart, bookingStart.Add(30 * time.Minute), status, "", "", nil,
		false, bookingStart, bookingStart, int64(attendees),
	}
}

func newBooking() *domain.Booking {
	seat := "seat-1"
	return &domain.Booking{
		UID:         "uid-1",
		EventTypeID: "et-1",
		UserID:      "user-1",
		HostIDs:     []string{"user-1"},
		Title:       "Intro",
		StartTime:   bookingStart,
		EndTime:     bookingStart.Add(30 * time.Minute),
		Status:      domain.BookingAccepted,
		Attendees: []*domain.Attendee{
			{Name: "Bob", Email: "bob@guest.test", TimeZone: "UTC", SeatReferenceUID: &seat, CreatedAt: bookingStart},
		},
		CreatedAt: bookingStart,
		UpdatedAt: bookingStart,
	}
}

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts booking and attendees in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		b := newBooking()
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs("uid-1", "et-1", "user-1", pq.Array([]string{"user-1"}), "Intro", "", "",
				bookingStart, bookingStart.Add(30*time.Minute), "accepted", "", "", nil, false, bookingStart, bookingStart).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bk-1"))
		mock.ExpectQuery(`INSERT INTO attendees`).
			WithArgs("bk-1", "Bob", "bob@guest.test", "UTC", "seat-1", bookingStart).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-1"))
		mock.ExpectCommit()

		require.NoError(t, NewBookingRepository(db).Create(ctx, b))
		assert.Equal(t, "bk-1", b.ID)
		assert.Equal(t, "att-1", b.Attendees[0].ID)
		assert.Equal(t, "bk-1", b.Attendees[0].BookingID)
		assert.Equal(t, 1, b.AttendeeCount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active slot taken returns ErrConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err = NewBookingRepository(db).Create(ctx, newBooking())
		require.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_GetByUID(t *testing.T) {
	ctx := context.Background()

	t.Run("loads attendees", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM bookings b WHERE b\.uid = \$1`).
			WithArgs("uid-1").
			WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(bookingRow("bk-1", "uid-1", "accepted", 2)...))
		mock.ExpectQuery(`FROM attendees`).
			WithArgs(pq.Array([]string{"bk-1"})).
			WillReturnRows(sqlmock.NewRows(attendeeCols).
				AddRow("att-1", "bk-1", "Bob", "bob@guest.test", "UTC", "seat-1", bookingStart).
				AddRow("att-2", "bk-1", "Carol", "carol@guest.test", "Asia/Tokyo", "seat-2", bookingStart))

		b, err := NewBookingRepository(db).GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingAccepted, b.Status)
		assert.Equal(t, []string{"user-1", "user-2"}, b.HostIDs)
		assert.Nil(t, b.FromReschedule)
		require.Len(t, b.Attendees, 2)
		assert.Equal(t, 2, b.AttendeeCount)
		assert.NotNil(t, b.FindSeat("seat-2"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown uid", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM bookings b WHERE b\.uid = \$1`).
			WillReturnRows(sqlmock.NewRows(bookingCols))

		_, err = NewBookingRepository(db).GetByUID(ctx, "uid-404")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_TransitionStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE bookings SET`).
					WithArgs("bk-1", "pending", "cancelled", "no longer needed").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "status changed concurrently",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE bookings SET`).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).WithArgs("bk-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "missing booking",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE bookings SET`).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).WithArgs("bk-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewBookingRepository(db).TransitionStatus(ctx, "bk-1", domain.BookingPending, domain.BookingCancelled, "no longer needed")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Reschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels previous and inserts next", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		prev := &domain.Booking{ID: "bk-1", Status: domain.BookingAccepted, CancellationReason: "moved"}
		next := newBooking()
		next.UID = "uid-2"
		next.FromReschedule = strPtr("uid-1")

		mock.ExpectBegin()
		mock.ExpectExec(`SET status = 'cancelled', rescheduled = TRUE`).
			WithArgs("bk-1", "moved").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bk-2"))
		mock.ExpectQuery(`INSERT INTO attendees`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-9"))
		mock.ExpectCommit()

		require.NoError(t, NewBookingRepository(db).Reschedule(ctx, prev, next))
		assert.Equal(t, "bk-2", next.ID)
		assert.Equal(t, domain.BookingCancelled, prev.Status)
		assert.True(t, prev.Rescheduled)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("previous no longer active", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`SET status = 'cancelled', rescheduled = TRUE`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = NewBookingRepository(db).Reschedule(ctx, &domain.Booking{ID: "bk-1"}, newBooking())
		require.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_MoveAttendee(t *testing.T) {
	ctx := context.Background()

	t.Run("into a new booking", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		target := newBooking()
		target.Attendees = nil

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bk-2"))
		mock.ExpectExec(`UPDATE attendees SET booking_id`).
			WithArgs("att-1", "bk-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, NewBookingRepository(db).MoveAttendee(ctx, "att-1", target))
		assert.Equal(t, "bk-2", target.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("into an existing booking with an unknown attendee", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE attendees SET booking_id`).
			WithArgs("att-404", "bk-3").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = NewBookingRepository(db).MoveAttendee(ctx, "att-404", &domain.Booking{ID: "bk-3"})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_ListActiveByHostsInRange(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewBookingRepository(db)

	empty, err := repo.ListActiveByHostsInRange(ctx, nil, bookingStart, bookingStart.Add(time.Hour))
	require.NoError(t, err)
	require.Empty(t, empty)

	from, to := bookingStart.Add(-time.Hour), bookingStart.Add(time.Hour)
	mock.ExpectQuery(`b\.host_ids && \$1`).
		WithArgs(pq.Array([]string{"user-1"}), from, to).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(bookingRow("bk-1", "uid-1", "pending", 3)...))

	list, err := repo.ListActiveByHostsInRange(ctx, []string{"user-1"}, from, to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].AttendeeCount)
	assert.Equal(t, bookingStart, list[0].StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListActiveAt(t *testing.T) {
	ctx := context.Background()

	t.Run("every booking at the start with attendees", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`b\.event_type_id = \$1 AND b\.start_time = \$2`).
			WithArgs("et-1", bookingStart).
			WillReturnRows(sqlmock.NewRows(bookingCols).
				AddRow(bookingRow("bk-1", "uid-1", "accepted", 1)...).
				AddRow(bookingRow("bk-2", "uid-2", "accepted", 0)...))
		mock.ExpectQuery(`FROM attendees`).
			WithArgs(pq.Array([]string{"bk-1", "bk-2"})).
			WillReturnRows(sqlmock.NewRows(attendeeCols).
				AddRow("att-1", "bk-1", "Bob", "bob@guest.test", "UTC", "seat-1", bookingStart))

		list, err := NewBookingRepository(db).ListActiveAt(ctx, "et-1", bookingStart)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "uid-1", list[0].UID)
		assert.Equal(t, 1, list[0].AttendeeCount)
		assert.Equal(t, 0, list[1].AttendeeCount)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("none", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`b\.event_type_id = \$1 AND b\.start_time = \$2`).
			WillReturnRows(sqlmock.NewRows(bookingCols))

		list, err := NewBookingRepository(db).ListActiveAt(ctx, "et-1", bookingStart)
		require.NoError(t, err)
		assert.Empty(t, list)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM bookings b`).
		WithArgs("user-1", "accepted").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`LIMIT \$3 OFFSET \$4`).
		WithArgs("user-1", "accepted", 10, 10).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(bookingRow("bk-11", "uid-11", "accepted", 1)...))
	mock.ExpectQuery(`FROM attendees`).
		WithArgs(pq.Array([]string{"bk-11"})).
		WillReturnRows(sqlmock.NewRows(attendeeCols).
			AddRow("att-1", "bk-11", "Bob", "bob@guest.test", "UTC", nil, bookingStart))

	list, total, err := NewBookingRepository(db).ListByUser(ctx, "user-1", domain.BookingAccepted, domain.PaginationParams{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, list, 1)
	require.Len(t, list[0].Attendees, 1)
	assert.Nil(t, list[0].Attendees[0].SeatReferenceUID)
	require.NoError(t, mock.ExpectationsWereMet())
}
