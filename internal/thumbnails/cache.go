// Package thumbnails derives preview images for resources that were
// uploaded without one and keeps them for the rest of the session.
package thumbnails

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/models"
)

// Renderer turns the document at fileURL into an image data URL.
type Renderer interface {
	Render(ctx context.Context, fileURL string) (string, error)
}

type task struct {
	cancel context.CancelFunc
}

// Cache is a registry of derivation tasks keyed by resource id. Each id is
// rendered at most once while an entry or a task for it exists; entries are
// never evicted.
type Cache struct {
	renderer Renderer
	log      logging.Logger

	mu      sync.Mutex
	entries map[string]string
	tasks   map[string]*task
	wg      sync.WaitGroup
}

func NewCache(renderer Renderer, log logging.Logger) *Cache {
	return &Cache{
		renderer: renderer,
		log:      log.With("module", "thumbnails"),
		entries:  make(map[string]string),
		tasks:    make(map[string]*task),
	}
}

// Ensure starts a derivation for res unless it has an uploaded thumbnail,
// a cached entry or a task already in flight. It never blocks on rendering.
func (c *Cache) Ensure(res models.Resource) {
	if res.HasThumbnail() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[res.ID]; ok {
		return
	}
	if _, ok := c.tasks[res.ID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel}
	c.tasks[res.ID] = t

	c.wg.Add(1)
	go c.run(ctx, t, res)
}

func (c *Cache) run(ctx context.Context, t *task, res models.Resource) {
	defer c.wg.Done()
	defer t.cancel()

	data, err := c.renderer.Render(ctx, res.FileURL)

	c.mu.Lock()
	if c.tasks[res.ID] == t {
		delete(c.tasks, res.ID)
	}
	if err == nil {
		c.entries[res.ID] = data
	}
	c.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		c.log.Debug(ctx, "thumbnail generation cancelled", "id", res.ID)
		return
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", common.ErrRender, res.ID, err)
		c.log.Warn(ctx, "thumbnail generation failed", "id", res.ID, "url", res.FileURL, "error", err)
		return
	}
	c.log.Debug(ctx, "thumbnail generated", "id", res.ID)
}

// Sync is called with every freshly loaded catalog. Tasks for ids that left
// the catalog are cancelled; every remaining resource is passed to Ensure.
// Cached entries are kept even when their id is gone.
func (c *Cache) Sync(resources []models.Resource) {
	present := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		present[r.ID] = struct{}{}
	}

	c.mu.Lock()
	for id, t := range c.tasks {
		if _, ok := present[id]; !ok {
			t.cancel()
			delete(c.tasks, id)
		}
	}
	c.mu.Unlock()

	for _, r := range resources {
		c.Ensure(r)
	}
}

// Get returns the cached data URL for id.
func (c *Cache) Get(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[id]
	return data, ok
}

// Pending is the number of derivations in flight.
func (c *Cache) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Wait blocks until every started derivation has returned.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Close cancels all in-flight derivations and waits for them.
func (c *Cache) Close() {
	c.mu.Lock()
	for id, t := range c.tasks {
		t.cancel()
		delete(c.tasks, id)
	}
	c.mu.Unlock()

	c.wg.Wait()
}
