package resources

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/resourcehub/internal/dbx"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"github.com/google/uuid"
)

// Seams for tests.
var (
	nowFn = time.Now
	newID = uuid.NewString
)

// SQLiteRepository implements Repository for the local single-user backend.
// created_at is stored as Unix nanoseconds so ordering is exact.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListNewestFirst(ctx context.Context) ([]models.Resource, error) {
	query := `select id, name, description, file_url, thumbnail_url, created_at, user_id
		from resources order by created_at desc`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select resources: %w", err)
	}
	defer rows.Close()

	result := make([]models.Resource, 0)
	for rows.Next() {
		var (
			item    models.Resource
			thumb   sql.NullString
			created int64
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.FileURL, &thumb, &created, &item.OwnerID); err != nil {
			return nil, err
		}
		item.ThumbnailURL = thumb.String
		item.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, in models.NewResource) (*models.Resource, error) {
	out := &models.Resource{
		ID:           newID(),
		Name:         in.Name,
		Description:  in.Description,
		FileURL:      in.FileURL,
		ThumbnailURL: in.ThumbnailURL,
		CreatedAt:    nowFn().UTC(),
		OwnerID:      in.OwnerID,
	}

	query := `insert into resources (id, name, description, file_url, thumbnail_url, created_at, user_id)
		values (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		out.ID, out.Name, out.Description, out.FileURL, nullable(out.ThumbnailURL), out.CreatedAt.UnixNano(), out.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert resource: %w", err)
	}
	return out, nil
}
