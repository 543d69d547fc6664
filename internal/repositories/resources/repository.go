// Package resources persists catalog rows. Two dialects are provided:
// PostgreSQL (the shared backing store) and SQLite (local single-user mode).
package resources

import (
	"context"

	"github.com/dmitrijs2005/resourcehub/internal/models"
)

// Repository is the data store surface the catalog needs.
type Repository interface {
	// ListNewestFirst returns every resource ordered by created_at descending.
	ListNewestFirst(ctx context.Context) ([]models.Resource, error)
	// Insert writes one row and returns it with the store-assigned id and
	// creation time.
	Insert(ctx context.Context, r models.NewResource) (*models.Resource, error)
}
