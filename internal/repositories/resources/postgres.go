package resources

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/resourcehub/internal/dbx"
	"github.com/dmitrijs2005/resourcehub/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListNewestFirst selects the whole catalog, newest first.
func (r *PostgresRepository) ListNewestFirst(ctx context.Context) ([]models.Resource, error) {
	query := `SELECT id::text, name, description, file_url, thumbnail_url, created_at, user_id
		FROM resources ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select resources: %w", err)
	}
	defer rows.Close()

	result := make([]models.Resource, 0)
	for rows.Next() {
		var (
			item  models.Resource
			thumb sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.FileURL, &thumb, &item.CreatedAt, &item.OwnerID); err != nil {
			return nil, err
		}
		item.ThumbnailURL = thumb.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert writes one catalog row. The id and created_at come from column defaults.
func (r *PostgresRepository) Insert(ctx context.Context, in models.NewResource) (*models.Resource, error) {
	query := `INSERT INTO resources (name, description, file_url, thumbnail_url, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, created_at`

	out := &models.Resource{
		Name:         in.Name,
		Description:  in.Description,
		FileURL:      in.FileURL,
		ThumbnailURL: in.ThumbnailURL,
		OwnerID:      in.OwnerID,
	}

	err := r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.FileURL, nullable(in.ThumbnailURL), in.OwnerID).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert resource: %w", err)
	}
	return out, nil
}

// nullable maps an absent optional URL to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
