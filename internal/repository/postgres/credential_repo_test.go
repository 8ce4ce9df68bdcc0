package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calbooking/internal/domain"
)

func TestCredentialRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewCredentialRepository(db)

	key := json.RawMessage(`{"url":"https://cal.example.com/freebusy","token":"t"}`)
	mock.ExpectQuery(`INSERT INTO credentials`).
		WithArgs("user-1", domain.CredentialTypeHTTPFreeBusy, []byte(key), false, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cred-1"))
	cred := &domain.Credential{UserID: "user-1", Type: domain.CredentialTypeHTTPFreeBusy, Key: key, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, cred))
	assert.Equal(t, "cred-1", cred.ID)

	empty, err := repo.ListValidByUsers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	mock.ExpectQuery(`WHERE user_id = ANY\(\$1\) AND NOT invalid`).
		WithArgs(pq.Array([]string{"user-1", "user-2"})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "key", "invalid", "created_at"}).
			AddRow("cred-1", "user-1", domain.CredentialTypeHTTPFreeBusy, []byte(key), false, now))
	list, err := repo.ListValidByUsers(ctx, []string{"user-1", "user-2"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, string(key), string(list[0].Key))

	mock.ExpectExec(`UPDATE credentials SET invalid = TRUE`).WithArgs("cred-404").WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.MarkInvalid(ctx, "cred-404"), domain.ErrNotFound)

	mock.ExpectQuery(`FROM credentials WHERE id = \$1`).WithArgs("cred-404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "key", "invalid", "created_at"}))
	_, err = repo.GetByID(ctx, "cred-404")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
