// Package objectstore writes uploaded files to an object storage bucket and
// reports the URL under which each object can be read back.
package objectstore

import "context"

// Store persists objects by path. PublicURL never touches the network.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	PublicURL(path string) string
}

var (
	_ Store = (*S3Store)(nil)
	_ Store = (*LocalStore)(nil)
)
