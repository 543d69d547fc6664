// Package upload turns an upload draft into stored objects plus one catalog
// row.
package upload

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/filex"
	"github.com/go-playground/validator/v10"
)

// File is a file picked for upload together with its detected MIME type.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Draft is the content of the upload dialog. It is never persisted partly.
type Draft struct {
	Name        string `validate:"notblank"`
	Description string
	Primary     *File `validate:"required"`
	Thumbnail   *File
}

// OpenFile reads path from disk and sniffs its MIME type.
func OpenFile(path string) (File, error) {
	sel, err := filex.ReadSelected(path)
	if err != nil {
		return File{}, err
	}
	return File{Name: sel.Name, ContentType: sel.ContentType, Data: sel.Data}, nil
}

// SelectPrimary accepts f as the document of a draft only when its MIME
// type mentions pdf.
func SelectPrimary(f File) (*File, error) {
	if !strings.Contains(f.ContentType, "pdf") {
		return nil, fmt.Errorf("%w: only PDF files are allowed, got %q", common.ErrValidation, f.ContentType)
	}
	return &f, nil
}

// SelectThumbnail accepts f as the preview of a draft only when its MIME
// type mentions image.
func SelectThumbnail(f File) (*File, error) {
	if !strings.Contains(f.ContentType, "image") {
		return nil, fmt.Errorf("%w: only image files are allowed for thumbnails, got %q", common.ErrValidation, f.ContentType)
	}
	return &f, nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks the draft the way Submit does before any network call.
func (d Draft) Validate() error {
	return validateDraft(newValidator(), d)
}

func validateDraft(v *validator.Validate, d Draft) error {
	if err := v.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if _, err := SelectPrimary(*d.Primary); err != nil {
		return err
	}
	if d.Thumbnail != nil {
		if _, err := SelectThumbnail(*d.Thumbnail); err != nil {
			return err
		}
	}
	return nil
}
