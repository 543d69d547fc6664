// Package services binds repositories to a live database handle.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/resourcehub/internal/dbx"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"github.com/dmitrijs2005/resourcehub/internal/repositories/repomanager"
)

// ResourceService is the catalog's view of the backing data store.
type ResourceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewResourceService(db *sql.DB, repomanager repomanager.RepositoryManager) *ResourceService {
	return &ResourceService{db: db, repomanager: repomanager}
}

// ListNewestFirst returns the full catalog ordered by creation time, newest first.
func (s *ResourceService) ListNewestFirst(ctx context.Context) ([]models.Resource, error) {
	return s.repomanager.Resources(s.db).ListNewestFirst(ctx)
}

// Insert writes one catalog row inside its own transaction.
func (s *ResourceService) Insert(ctx context.Context, r models.NewResource) (*models.Resource, error) {
	var created *models.Resource

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := s.repomanager.Resources(tx).Insert(ctx, r)
		if err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating resource: %w", err)
	}
	return created, nil
}
