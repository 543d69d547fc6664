package objectstore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/filex"
)

// LocalStore keeps objects under a directory and hands out file:// URLs.
// It backs the offline sqlite mode when no S3 endpoint is configured.
type LocalStore struct {
	root string
}

// NewLocalStore creates dirName under the working directory if needed.
func NewLocalStore(dirName string) (*LocalStore, error) {
	root, err := filex.EnsureSubdDir(dirName)
	if err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Upload(ctx context.Context, path string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o770); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", common.ErrStorage, path, err)
	}
	if err := os.WriteFile(full, data, 0o660); err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrStorage, path, err)
	}

	return nil
}

func (s *LocalStore) PublicURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(s.root, filepath.FromSlash(path)))}
	return u.String()
}
