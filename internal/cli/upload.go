package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/upload"
)

// Upload walks the user through the upload dialog and submits the draft.
// A failed draft is kept and offered again on the next upload.
func (a *App) Upload(ctx context.Context) error {
	if a.view.Uploading() {
		a.println("An upload is already in progress.")
		return common.ErrBusy
	}

	d, err := a.draftForUpload()
	if err != nil || d == nil {
		return err
	}

	if err := a.view.BeginUpload(); err != nil {
		a.println("An upload is already in progress.")
		return err
	}
	a.println("Uploading...")
	err = a.uploader.Submit(ctx, *d)
	a.view.EndUpload()

	if err != nil {
		a.draft = d
		a.log.Error(ctx, "error uploading resource", "error", err)
		switch {
		case errors.Is(err, common.ErrUnauthenticated):
			a.println("Please log in before uploading.")
		default:
			a.println("Error uploading resource. Please try again.")
		}
		return err
	}

	a.draft = nil
	a.println("Resource uploaded.")
	return a.Reload(ctx)
}

func (a *App) draftForUpload() (*upload.Draft, error) {
	if a.draft != nil {
		retry, err := Confirm(a.reader, fmt.Sprintf("Retry the previous upload of %q?", a.draft.Name), true, a.out)
		if err != nil {
			return nil, err
		}
		if retry {
			return a.draft, nil
		}
		a.draft = nil
	}
	return a.fillDraft()
}

// fillDraft returns nil without error when the user cancels.
func (a *App) fillDraft() (*upload.Draft, error) {
	d := &upload.Draft{}

	for d.Name == "" {
		name, err := GetSimpleText(a.reader, "Name", a.out)
		if err != nil {
			return nil, err
		}
		d.Name = name
		if d.Name == "" {
			a.println("Name is required.")
		}
	}

	description, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return nil, err
	}
	d.Description = description

	for d.Primary == nil {
		path, err := GetSimpleText(a.reader, "PDF file path (empty to cancel)", a.out)
		if err != nil {
			return nil, err
		}
		if path == "" {
			a.println("Upload cancelled.")
			return nil, nil
		}
		f, err := upload.OpenFile(path)
		if err != nil {
			a.println("Could not read file:", err)
			continue
		}
		if d.Primary, err = upload.SelectPrimary(f); err != nil {
			a.println("Only PDF files are allowed.")
		}
	}

	for {
		path, err := GetSimpleText(a.reader, "Thumbnail image path (optional)", a.out)
		if err != nil {
			return nil, err
		}
		if path == "" {
			break
		}
		f, err := upload.OpenFile(path)
		if err != nil {
			a.println("Could not read file:", err)
			continue
		}
		if d.Thumbnail, err = upload.SelectThumbnail(f); err != nil {
			a.println("Only image files are allowed for thumbnails.")
			continue
		}
		break
	}

	return d, nil
}
