package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calbooking/internal/domain"
)

func TestTeamRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("team and owner membership", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO teams`).
			WithArgs("Sales", "sales").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("team-1", now))
		mock.ExpectExec(`INSERT INTO memberships`).
			WithArgs("team-1", "user-1", "owner").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		team := &domain.Team{Name: "Sales", Slug: "sales"}
		require.NoError(t, NewTeamRepository(db).Create(ctx, team, "user-1"))
		assert.Equal(t, "team-1", team.ID)
		assert.Equal(t, now, team.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slug taken", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO teams`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err = NewTeamRepository(db).Create(ctx, &domain.Team{Name: "Sales", Slug: "sales"}, "user-1")
		require.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTeamRepository_Members(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTeamRepository(db)

	mock.ExpectExec(`INSERT INTO memberships`).WillReturnError(&pq.Error{Code: "23505"})
	err = repo.AddMember(ctx, &domain.Membership{TeamID: "team-1", UserID: "user-2", Role: domain.RoleMember})
	require.ErrorIs(t, err, domain.ErrConflict)

	mock.ExpectQuery(`FROM memberships\s+WHERE team_id = \$1 AND user_id = \$2`).
		WithArgs("team-1", "user-3").
		WillReturnRows(sqlmock.NewRows([]string{"team_id", "user_id", "role", "accepted"}))
	_, err = repo.GetMembership(ctx, "team-1", "user-3")
	require.ErrorIs(t, err, domain.ErrNotFound)

	mock.ExpectQuery(`FROM memberships m\s+INNER JOIN users u`).
		WithArgs("team-1").
		WillReturnRows(sqlmock.NewRows([]string{"team_id", "user_id", "role", "accepted", "name", "email", "username"}).
			AddRow("team-1", "user-1", "owner", true, "Alice", "alice@example.com", "alice").
			AddRow("team-1", "user-2", "member", false, "Bob", "bob@example.com", "bob"))
	members, err := repo.ListMembers(ctx, "team-1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, domain.RoleOwner, members[0].Role)
	assert.True(t, members[0].Role.CanManage())
	assert.Equal(t, "bob", members[1].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}
