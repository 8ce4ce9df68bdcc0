package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"calbooking/internal/domain"
)

var userCols = []string{"id", "email", "username", "name", "time_zone", "default_schedule_id", "password_hash", "salt", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("alice@example.com", "alice", "Alice", "Europe/Berlin", "hash", "salt", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))
			},
			wantID: "user-uuid-1",
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			u := &domain.User{Email: "alice@example.com", Username: "alice", Name: "Alice", TimeZone: "Europe/Berlin", PasswordHash: "hash", Salt: "salt", CreatedAt: now, UpdatedAt: now}
			err = NewUserRepository(db).Create(ctx, u)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, u.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		call    func(repo domain.UserRepository) (*domain.User, error)
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.User
		wantErr error
	}{
		{
			name: "by email with default schedule",
			call: func(repo domain.UserRepository) (*domain.User, error) {
				return repo.GetByEmail(ctx, "alice@example.com")
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users WHERE email = \$1`).
					WithArgs("alice@example.com").
					WillReturnRows(sqlmock.NewRows(userCols).
						AddRow("user-1", "alice@example.com", "alice", "Alice", "UTC", "sched-1", "hash", "salt", now, now))
			},
			want: &domain.User{
				ID: "user-1", Email: "alice@example.com", Username: "alice", Name: "Alice", TimeZone: "UTC",
				DefaultScheduleID: strPtr("sched-1"), PasswordHash: "hash", Salt: "salt", CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name: "by username without default schedule",
			call: func(repo domain.UserRepository) (*domain.User, error) {
				return repo.GetByUsername(ctx, "alice")
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users WHERE username = \$1`).
					WithArgs("alice").
					WillReturnRows(sqlmock.NewRows(userCols).
						AddRow("user-1", "alice@example.com", "alice", "Alice", "UTC", nil, "hash", "salt", now, now))
			},
			want: &domain.User{
				ID: "user-1", Email: "alice@example.com", Username: "alice", Name: "Alice", TimeZone: "UTC",
				PasswordHash: "hash", Salt: "salt", CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name: "not found",
			call: func(repo domain.UserRepository) (*domain.User, error) {
				return repo.GetByID(ctx, "3f1c1a8e-0000-4000-8000-000000000000")
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users WHERE id = \$1`).WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "malformed id",
			call: func(repo domain.UserRepository) (*domain.User, error) {
				return repo.GetByID(ctx, "not-a-uuid")
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM users WHERE id = \$1`).WillReturnError(&pq.Error{Code: "22P02"})
			},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := tt.call(NewUserRepository(db))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ListByIDs(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	empty, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)

	mock.ExpectQuery(`FROM users WHERE id = ANY\(\$1\)`).
		WithArgs(pq.Array([]string{"user-1", "user-2"})).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("user-1", "a@example.com", "a", "A", "UTC", nil, "h", "s", now, now).
			AddRow("user-2", "b@example.com", "b", "B", "Asia/Tokyo", nil, "h", "s", now, now))
	users, err := repo.ListByIDs(ctx, []string{"user-1", "user-2"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Asia/Tokyo", users[1].TimeZone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetDefaultSchedule(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET default_schedule_id`).
		WithArgs("user-1", "sched-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetDefaultSchedule(ctx, "user-1", "sched-1"))

	mock.ExpectExec(`UPDATE users SET default_schedule_id`).
		WithArgs("user-404", "sched-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.SetDefaultSchedule(ctx, "user-404", "sched-1"), domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func strPtr(s string) *string { return &s }
