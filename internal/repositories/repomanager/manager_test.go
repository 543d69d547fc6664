package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"github.com/dmitrijs2005/resourcehub/internal/repositories/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_Drivers(t *testing.T) {
	m, err := New(DriverPostgres)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	m, err = New(DriverSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	_, err = New("mysql")
	require.ErrorContains(t, err, `unsupported database driver "mysql"`)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)

	assert.IsType(t, &resources.PostgresRepository{}, (&PostgresRepositoryManager{}).Resources(db))
	assert.IsType(t, &resources.SQLiteRepository{}, (&SQLiteRepositoryManager{}).Resources(db))
}

func TestSQLDriverName(t *testing.T) {
	assert.Equal(t, "pgx", SQLDriverName(DriverPostgres))
	assert.Equal(t, "sqlite", SQLDriverName(DriverSQLite))
}

func TestRunMigrations_PassesDialectAndDir(t *testing.T) {
	db := newDB(t)

	type call struct{ dialect, dir string }
	var calls []call

	orig := gooseUp
	gooseUp = func(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, dir string) error {
		entries, err := fs.ReadDir(fsys, dir)
		require.NoError(t, err)
		require.NotEmpty(t, entries, "embedded migrations must exist for %s", dir)
		calls = append(calls, call{dialect, dir})
		return nil
	}
	t.Cleanup(func() { gooseUp = orig })

	require.NoError(t, (&PostgresRepositoryManager{}).RunMigrations(context.Background(), db))
	require.NoError(t, (&SQLiteRepositoryManager{}).RunMigrations(context.Background(), db))

	assert.Equal(t, []call{{"postgres", "postgres"}, {"sqlite3", "sqlite"}}, calls)
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)

	orig := gooseUp
	gooseUp = func(context.Context, *sql.DB, string, fs.FS, string) error { return errors.New("boom") }
	t.Cleanup(func() { gooseUp = orig })

	err := (&PostgresRepositoryManager{}).RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestOpen_SQLiteMigratesForReal(t *testing.T) {
	ctx := context.Background()

	db, m, err := Open(ctx, DriverSQLite, "file:repomanager_open?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := m.Resources(db)
	_, err = repo.Insert(ctx, models.NewResource{Name: "Notes", FileURL: "https://s3/n.pdf", OwnerID: "u1"})
	require.NoError(t, err)

	got, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Notes", got[0].Name)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "oracle", "")
	require.Error(t, err)
}
