package postgres

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nCREATE TABLE a ();\n", upSection("-- +migrate Up\nCREATE TABLE a ();\n-- +migrate Down\nDROP TABLE a;\n"))
	assert.Equal(t, "CREATE TABLE b ();", upSection("CREATE TABLE b ();"))
	assert.Equal(t, "\nCREATE TABLE c ();", upSection("-- +migrate Up\nCREATE TABLE c ();"))
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/0001_first.sql":  {Data: []byte("-- +migrate Up\nCREATE TABLE first (id INT);\n-- +migrate Down\nDROP TABLE first;\n")},
		"m/0002_second.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE second (id INT);\n")},
		"m/README.md":       {Data: []byte("not a migration")},
	}

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT 1 FROM schema_migrations`).
		WithArgs("0001_first.sql").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`SELECT 1 FROM schema_migrations`).
		WithArgs("0002_second.sql").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE second`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("0002_second.sql").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, applyMigrations(ctx, db, fsys, "m"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	content, err := fs.ReadFile(migrationFS, "migrations/"+entries[0].Name())
	require.NoError(t, err)
	up := upSection(string(content))
	for _, table := range []string{"users", "schedules", "event_types", "bookings", "attendees", "credentials", "webhooks", "webhook_deliveries"} {
		assert.True(t, strings.Contains(up, "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
	assert.NotContains(t, up, "DROP TABLE")
}
