// Package models defines the catalog data model shared by repositories,
// the upload pipeline and the catalog view.
package models

import "time"

// Resource is one uploaded document entry of the catalog.
type Resource struct {
	// ID is assigned by the data store on insert and never changes.
	ID string
	// Name is the non-empty display title.
	Name string
	// Description is free text and may be empty.
	Description string
	// FileURL is the durable URL of the primary document. Always set.
	FileURL string
	// ThumbnailURL is the durable URL of an uploaded thumbnail image.
	// Empty means a preview is derived lazily and never written back.
	ThumbnailURL string
	// CreatedAt defines the catalog order (newest first).
	CreatedAt time.Time
	// OwnerID is the uploading user's id.
	OwnerID string
}

// HasThumbnail reports whether the resource carries an uploaded thumbnail.
func (r Resource) HasThumbnail() bool {
	return r.ThumbnailURL != ""
}

// NewResource is the insert payload for a catalog row.
type NewResource struct {
	Name         string
	Description  string
	FileURL      string
	ThumbnailURL string
	OwnerID      string
}
