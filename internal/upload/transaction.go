package upload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/resourcehub/internal/auth"
	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"github.com/go-playground/validator/v10"
)

type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

type Inserter interface {
	Insert(ctx context.Context, r models.NewResource) (*models.Resource, error)
}

var nowFn = time.Now

// Transaction stores the draft's files and then inserts one catalog row.
// The stages are not atomic: objects written before a failing stage stay in
// storage and are only reported in the log.
type Transaction struct {
	auth     auth.Authenticator
	store    ObjectStore
	inserter Inserter
	log      logging.Logger
	validate *validator.Validate
}

func NewTransaction(users auth.Authenticator, store ObjectStore, inserter Inserter, log logging.Logger) *Transaction {
	return &Transaction{
		auth:     users,
		store:    store,
		inserter: inserter,
		log:      log.With("module", "upload"),
		validate: newValidator(),
	}
}

// PrimaryPath is where the document of userID is stored.
func PrimaryPath(userID string, at time.Time, name string) string {
	return fmt.Sprintf("%s/%d-%s", userID, at.UnixMilli(), name)
}

// ThumbnailPath is where an uploaded preview of userID is stored. Two
// uploads with equal thumbnail names share the path.
func ThumbnailPath(userID, name string) string {
	return fmt.Sprintf("%s/thumbnails/%s", userID, name)
}

// Submit runs the stages in order and stops at the first failure.
func (t *Transaction) Submit(ctx context.Context, d Draft) error {
	if err := validateDraft(t.validate, d); err != nil {
		return err
	}

	user, err := t.auth.CurrentUser(ctx)
	if err != nil {
		t.log.Warn(ctx, "upload without signed-in user", "error", err)
		return fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}
	log := t.log.With("user", user.ID)

	var written []string

	primaryPath := PrimaryPath(user.ID, nowFn(), d.Primary.Name)
	if err := t.store.Upload(ctx, primaryPath, d.Primary.Data, d.Primary.ContentType); err != nil {
		log.Error(ctx, "failed to upload file", "path", primaryPath, "error", err)
		return fmt.Errorf("%w: upload file: %w", common.ErrStorage, err)
	}
	written = append(written, primaryPath)
	fileURL := t.store.PublicURL(primaryPath)

	thumbnailURL := ""
	if d.Thumbnail != nil {
		thumbPath := ThumbnailPath(user.ID, d.Thumbnail.Name)
		if err := t.store.Upload(ctx, thumbPath, d.Thumbnail.Data, d.Thumbnail.ContentType); err != nil {
			log.Error(ctx, "failed to upload thumbnail", "path", thumbPath, "error", err)
			log.Warn(ctx, "orphaned objects left in storage", "paths", strings.Join(written, ","))
			return fmt.Errorf("%w: upload thumbnail: %w", common.ErrStorage, err)
		}
		written = append(written, thumbPath)
		thumbnailURL = t.store.PublicURL(thumbPath)
	}

	created, err := t.inserter.Insert(ctx, models.NewResource{
		Name:         d.Name,
		Description:  d.Description,
		FileURL:      fileURL,
		ThumbnailURL: thumbnailURL,
		OwnerID:      user.ID,
	})
	if err != nil {
		log.Error(ctx, "failed to insert resource", "error", err)
		log.Warn(ctx, "orphaned objects left in storage", "paths", strings.Join(written, ","))
		return fmt.Errorf("%w: %w", common.ErrInsert, err)
	}

	log.Info(ctx, "resource uploaded", "id", created.ID, "objects", len(written))
	return nil
}
