package resources

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

var (
	selectQ = `(?s)^SELECT id::text, name, description, file_url, thumbnail_url, created_at, user_id\s+FROM resources ORDER BY created_at DESC$`
	insertQ = `(?s)^INSERT INTO resources \(name, description, file_url, thumbnail_url, user_id\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5\)\s+RETURNING id::text, created_at$`
	columns = []string{"id", "name", "description", "file_url", "thumbnail_url", "created_at", "user_id"}
)

func TestPostgres_ListNewestFirst_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	t2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(selectQ).WillReturnRows(sqlmock.NewRows(columns).
		AddRow("r2", "Algebra Notes", "basics", "https://s3/u1/a.pdf", nil, t2, "u1").
		AddRow("r1", "Calc", "algebra review", "https://s3/u1/c.pdf", "https://s3/u1/thumbnails/c.png", t1, "u2"))

	got, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "r2", got[0].ID)
	assert.Empty(t, got[0].ThumbnailURL)
	assert.Equal(t, t2, got[0].CreatedAt)
	assert.Equal(t, "https://s3/u1/thumbnails/c.png", got[1].ThumbnailURL)
	assert.Equal(t, "u2", got[1].OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListNewestFirst_EmptyIsNotNil(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(selectQ).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgres_ListNewestFirst_QueryErr(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(selectQ).WillReturnError(errors.New("db down"))

	_, err := repo.ListNewestFirst(context.Background())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`failed to select resources: .*db down`), err.Error())
}

func TestPostgres_ListNewestFirst_ScanErr(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(selectQ).WillReturnRows(sqlmock.NewRows(columns).
		AddRow("r1", "n", "d", "f", nil, "not-a-time", "u1"))

	_, err := repo.ListNewestFirst(context.Background())
	require.Error(t, err)
}

func TestPostgres_ListNewestFirst_RowsErr(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	now := time.Now()
	mock.ExpectQuery(selectQ).WillReturnRows(sqlmock.NewRows(columns).
		AddRow("r1", "n", "d", "f", nil, now, "u1").
		AddRow("r2", "n", "d", "f", nil, now, "u1").
		RowError(1, errors.New("row-err")))

	_, err := repo.ListNewestFirst(context.Background())
	require.EqualError(t, err, "row-err")
}

func TestPostgres_Insert_WithThumbnail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	created := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQ).
		WithArgs("Notes", "desc", "https://s3/f.pdf", "https://s3/t.png", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("new-id", created))

	got, err := repo.Insert(context.Background(), models.NewResource{
		Name: "Notes", Description: "desc", FileURL: "https://s3/f.pdf", ThumbnailURL: "https://s3/t.png", OwnerID: "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "https://s3/t.png", got.ThumbnailURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_WithoutThumbnailWritesNull(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WithArgs("Notes", "", "https://s3/f.pdf", nil, "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("id-1", time.Now()))

	_, err := repo.Insert(context.Background(), models.NewResource{Name: "Notes", FileURL: "https://s3/f.pdf", OwnerID: "u1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	mock.ExpectQuery(insertQ).WillReturnError(errors.New("constraint"))

	_, err := repo.Insert(context.Background(), models.NewResource{Name: "n", FileURL: "f", OwnerID: "u"})
	require.Error(t, err)
	assert.Regexp(t, `failed to insert resource: .*constraint`, err.Error())
}
