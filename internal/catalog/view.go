package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/models"
)

// Source fetches the whole catalog, newest first.
type Source interface {
	ListNewestFirst(ctx context.Context) ([]models.Resource, error)
}

// Bookmarks is the overlay the view filters against.
type Bookmarks interface {
	IsBookmarked(id string) bool
	Loading() bool
	Toggle(ctx context.Context, id string) error
	OnChange(fn func())
}

// Thumbnails derives previews for resources without an uploaded one.
type Thumbnails interface {
	Sync(resources []models.Resource)
	Get(id string) (string, bool)
}

// ThumbnailSource tells where a card's preview comes from.
type ThumbnailSource int

const (
	ThumbnailPlaceholder ThumbnailSource = iota
	ThumbnailStored
	ThumbnailDerived
)

func (s ThumbnailSource) String() string {
	switch s {
	case ThumbnailStored:
		return "stored"
	case ThumbnailDerived:
		return "derived"
	default:
		return "placeholder"
	}
}

// Card is one resource as displayed on a page.
type Card struct {
	models.Resource
	Bookmarked      bool
	Thumbnail       string
	ThumbnailSource ThumbnailSource
}

// Page is a snapshot of the visible page.
type Page struct {
	Cards      []Card
	Number     int
	TotalPages int
	// Matches is the filtered count across all pages.
	Matches int
	Total   int
}

// View owns the catalog state of one session. All mutations go through its
// methods; the filtered page is recomputed whenever an input changes.
type View struct {
	source    Source
	bookmarks Bookmarks
	thumbs    Thumbnails
	log       logging.Logger

	mu           sync.Mutex
	all          []models.Resource
	loaded       bool
	query        string
	bookmarkOnly bool
	pager        *Pager[models.Resource]
	uploading    bool
}

func NewView(source Source, bookmarks Bookmarks, thumbs Thumbnails, pageSize int, log logging.Logger) *View {
	v := &View{
		source:    source,
		bookmarks: bookmarks,
		thumbs:    thumbs,
		log:       log.With("module", "catalog"),
		all:       []models.Resource{},
		pager:     NewPager[models.Resource](pageSize),
	}
	bookmarks.OnChange(v.recompute)
	return v
}

// Reload fetches the catalog. On failure the previous catalog stays and the
// view still counts as loaded. Thumbnail derivation is started for the new
// catalog after the lock is released.
func (v *View) Reload(ctx context.Context) error {
	resources, err := v.source.ListNewestFirst(ctx)
	if err != nil {
		v.mu.Lock()
		v.loaded = true
		v.mu.Unlock()

		v.log.Error(ctx, "failed to fetch resources", "error", err)
		return fmt.Errorf("%w: %w", common.ErrFetch, err)
	}

	sorted := slices.Clone(resources)
	if sorted == nil {
		sorted = []models.Resource{}
	}
	slices.SortStableFunc(sorted, func(a, b models.Resource) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	v.mu.Lock()
	v.all = sorted
	v.loaded = true
	v.recomputeLocked()
	v.mu.Unlock()

	v.log.Debug(ctx, "catalog loaded", "count", len(sorted))
	v.thumbs.Sync(sorted)
	return nil
}

// Loaded is false until the first Reload finished, successful or not.
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Ready reports whether both the catalog and the bookmarks are available.
func (v *View) Ready() bool {
	return v.Loaded() && !v.bookmarks.Loading()
}

func (v *View) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *View) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = q
	v.recomputeLocked()
}

func (v *View) BookmarkOnly() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.bookmarkOnly
}

func (v *View) SetBookmarkOnly(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bookmarkOnly = on
	v.recomputeLocked()
}

// ToggleBookmark flips the bookmark of the resource with id. The filtered
// view follows through the overlay's change notification.
func (v *View) ToggleBookmark(ctx context.Context, id string) error {
	return v.bookmarks.Toggle(ctx, id)
}

func (v *View) Next() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.Next()
}

func (v *View) Previous() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.Previous()
}

func (v *View) GoTo(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pager.GoTo(page)
}

// Page snapshots the visible cards.
func (v *View) Page() Page {
	v.mu.Lock()
	items := v.pager.CurrentItems()
	p := Page{
		Cards:      make([]Card, 0, len(items)),
		Number:     v.pager.CurrentPage(),
		TotalPages: v.pager.TotalPages(),
		Matches:    v.pager.Len(),
		Total:      len(v.all),
	}
	v.mu.Unlock()

	for _, r := range items {
		p.Cards = append(p.Cards, v.card(r))
	}
	return p
}

// Find returns the resource with id from the fetched catalog.
func (v *View) Find(id string) (models.Resource, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.all {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resource{}, false
}

// BeginUpload marks a submit in progress; it fails with common.ErrBusy when
// one is already running.
func (v *View) BeginUpload() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.uploading {
		return common.ErrBusy
	}
	v.uploading = true
	return nil
}

func (v *View) EndUpload() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.uploading = false
}

func (v *View) Uploading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.uploading
}

func (v *View) card(r models.Resource) Card {
	c := Card{Resource: r, Bookmarked: v.bookmarks.IsBookmarked(r.ID)}
	switch {
	case r.HasThumbnail():
		c.Thumbnail, c.ThumbnailSource = r.ThumbnailURL, ThumbnailStored
	default:
		if data, ok := v.thumbs.Get(r.ID); ok {
			c.Thumbnail, c.ThumbnailSource = data, ThumbnailDerived
		}
	}
	return c
}

func (v *View) recompute() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recomputeLocked()
}

func (v *View) recomputeLocked() {
	v.pager.SetItems(Filter(v.all, v.query, v.bookmarkOnly, v.bookmarks.IsBookmarked))
}
