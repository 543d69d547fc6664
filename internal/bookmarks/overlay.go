package bookmarks

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/models"
)

// UserSource resolves the user whose bookmarks are shown.
type UserSource interface {
	CurrentUser(ctx context.Context) (models.User, error)
}

// Overlay mirrors one user's bookmark set of a single kind. Mutations go to
// the Store first; the local set only changes once the Store accepted them,
// after which every OnChange listener is called.
type Overlay struct {
	store Store
	users UserSource
	kind  string
	log   logging.Logger

	mu        sync.RWMutex
	ids       map[string]struct{}
	userID    string
	loading   bool
	listeners []func()
}

func NewOverlay(store Store, users UserSource, kind string, log logging.Logger) *Overlay {
	return &Overlay{
		store: store,
		users: users,
		kind:  kind,
		log:   log.With("module", "bookmarks", "kind", kind),
		ids:   make(map[string]struct{}),
	}
}

// OnChange registers fn to run after each change of the set. Listeners run
// on the goroutine that made the change, without the overlay lock held.
func (o *Overlay) OnChange(fn func()) {
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}

// Load replaces the local set with the store's contents. Without a signed-in
// user the set is empty.
func (o *Overlay) Load(ctx context.Context) error {
	o.mu.Lock()
	o.loading = true
	o.mu.Unlock()

	ids := make(map[string]struct{})
	userID := ""

	user, err := o.users.CurrentUser(ctx)
	if err == nil {
		userID = user.ID
		var list []string
		list, err = o.store.List(ctx, userID, o.kind)
		for _, id := range list {
			ids[id] = struct{}{}
		}
	}

	o.mu.Lock()
	o.loading = false
	o.ids = ids
	o.userID = userID
	o.mu.Unlock()

	o.notify()

	switch {
	case err == nil:
		o.log.Debug(ctx, "bookmarks loaded", "count", len(ids))
		return nil
	case userID == "":
		o.log.Debug(ctx, "no signed-in user, bookmarks empty")
		return nil
	default:
		o.log.Error(ctx, "failed to load bookmarks", "error", err)
		return err
	}
}

// Loading reports whether a Load is in progress.
func (o *Overlay) Loading() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.loading
}

func (o *Overlay) IsBookmarked(id string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.ids[id]
	return ok
}

// Count returns the size of the local set.
func (o *Overlay) Count() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.ids)
}

func (o *Overlay) Add(ctx context.Context, id string) error {
	userID, err := o.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := o.store.Add(ctx, userID, o.kind, id); err != nil {
		o.log.Error(ctx, "failed to add bookmark", "id", id, "error", err)
		return err
	}

	o.mu.Lock()
	o.ids[id] = struct{}{}
	o.mu.Unlock()

	o.notify()
	return nil
}

func (o *Overlay) Remove(ctx context.Context, id string) error {
	userID, err := o.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := o.store.Remove(ctx, userID, o.kind, id); err != nil {
		o.log.Error(ctx, "failed to remove bookmark", "id", id, "error", err)
		return err
	}

	o.mu.Lock()
	delete(o.ids, id)
	o.mu.Unlock()

	o.notify()
	return nil
}

// Toggle removes id when bookmarked and adds it otherwise.
func (o *Overlay) Toggle(ctx context.Context, id string) error {
	if o.IsBookmarked(id) {
		return o.Remove(ctx, id)
	}
	return o.Add(ctx, id)
}

// currentUser re-resolves the user and reloads when it changed since the
// last Load, so a toggle never lands in another user's set.
func (o *Overlay) currentUser(ctx context.Context) (string, error) {
	user, err := o.users.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}

	o.mu.RLock()
	loaded := o.userID
	o.mu.RUnlock()

	if loaded != user.ID {
		if err := o.Load(ctx); err != nil {
			return "", err
		}
	}
	return user.ID, nil
}

func (o *Overlay) notify() {
	o.mu.RLock()
	listeners := append([]func(){}, o.listeners...)
	o.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
