// Package dispatch sends a catalog document to the chat or quiz page: it
// fetches the file, extracts its text, stores one session handoff and then
// navigates.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/dmitrijs2005/resourcehub/internal/models"
	"golang.org/x/sync/singleflight"
)

type Mode string

const (
	ModeChat Mode = "chat"
	ModeQuiz Mode = "quiz"
)

const (
	RouteChat = "/pdf-chat"
	RouteQuiz = "/quiz"
)

// Route maps a mode to the page that consumes the handoff.
func Route(m Mode) (string, error) {
	switch m {
	case ModeChat:
		return RouteChat, nil
	case ModeQuiz:
		return RouteQuiz, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", common.ErrValidation, m)
	}
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Navigator switches the front end to route.
type Navigator interface {
	Navigate(ctx context.Context, route string) error
}

type Dispatcher struct {
	fetcher   Fetcher
	extractor Extractor
	store     HandoffStore
	nav       Navigator
	log       logging.Logger

	group singleflight.Group
}

func NewDispatcher(fetcher Fetcher, extractor Extractor, store HandoffStore, nav Navigator, log logging.Logger) *Dispatcher {
	return &Dispatcher{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		nav:       nav,
		log:       log.With("module", "dispatch"),
	}
}

// Dispatch runs fetch, extract, save and navigate in order. Any failure
// leaves the session untouched and skips navigation. Concurrent dispatches
// of the same document share one fetch and extraction.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID string, res models.Resource, mode Mode) error {
	route, err := Route(mode)
	if err != nil {
		return err
	}
	log := d.log.With("id", res.ID, "mode", string(mode))

	// The shared work outlives any single caller: a caller that gives up
	// returns early while the others still get the result.
	ch := d.group.DoChan(res.FileURL, func() (any, error) {
		return d.extract(context.WithoutCancel(ctx), res.FileURL)
	})

	var r singleflight.Result
	select {
	case <-ctx.Done():
		log.Info(ctx, "dispatch abandoned", "error", ctx.Err())
		return fmt.Errorf("%w: %w", common.ErrFetch, ctx.Err())
	case r = <-ch:
	}
	if r.Err != nil {
		log.Error(ctx, "error processing pdf", "error", r.Err)
		return r.Err
	}
	if r.Shared {
		log.Debug(ctx, "reused in-flight extraction")
	}

	prev, prevErr := d.store.Load(ctx, sessionID)

	h := Handoff{Text: r.Val.(string), Name: res.Name, URL: res.FileURL}
	if err := d.store.Save(ctx, sessionID, h); err != nil {
		log.Error(ctx, "failed to store handoff", "error", err)
		return err
	}

	if err := d.nav.Navigate(ctx, route); err != nil {
		log.Error(ctx, "failed to navigate", "route", route, "error", err)
		d.restore(ctx, sessionID, prev, prevErr)
		return err
	}

	log.Info(ctx, "document dispatched", "route", route, "chars", len(h.Text))
	return nil
}

// restore puts back the handoff that was current before a dispatch whose
// navigation failed, so the session never points at a page it did not open.
func (d *Dispatcher) restore(ctx context.Context, sessionID string, prev Handoff, prevErr error) {
	var err error
	switch {
	case prevErr == nil:
		err = d.store.Save(ctx, sessionID, prev)
	case errors.Is(prevErr, common.ErrNotFound):
		err = d.store.Delete(ctx, sessionID)
	default:
		err = prevErr
	}
	if err != nil {
		d.log.Warn(ctx, "could not restore previous handoff", "session", sessionID, "error", err)
	}
}

func (d *Dispatcher) extract(ctx context.Context, url string) (string, error) {
	data, err := d.fetcher.Fetch(ctx, url)
	if err != nil {
		if !errors.Is(err, common.ErrFetch) {
			err = fmt.Errorf("%w: %w", common.ErrFetch, err)
		}
		return "", err
	}

	text, err := d.extractor.Extract(ctx, data)
	if err != nil {
		if !errors.Is(err, common.ErrExtraction) {
			err = fmt.Errorf("%w: %w", common.ErrExtraction, err)
		}
		return "", err
	}
	return text, nil
}
