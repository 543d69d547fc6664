package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/resourcehub/internal/catalog"
	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/dmitrijs2005/resourcehub/internal/models"
)

const descriptionWidth = 60

// List prints the visible page.
func (a *App) List(_ context.Context) error {
	if !a.view.Ready() {
		a.println("Loading...")
		return nil
	}

	p := a.view.Page()
	if len(p.Cards) == 0 {
		a.println("No resources found.")
		return nil
	}

	for i, c := range p.Cards {
		a.println(formatCard(i+1, c))
	}
	if p.TotalPages > 1 {
		a.printf("Page %d of %d\n", p.Number, p.TotalPages)
	}
	return nil
}

func formatCard(n int, c catalog.Card) string {
	mark := " "
	if c.Bookmarked {
		mark = "*"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%2d. [%s] %s", n, mark, c.Name)
	if d := strings.TrimSpace(c.Description); d != "" {
		fmt.Fprintf(&b, " - %s", truncate(d, descriptionWidth))
	}
	fmt.Fprintf(&b, " (%s, thumbnail: %s)", c.CreatedAt.Format("2006-01-02"), c.ThumbnailSource)
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (a *App) Search(ctx context.Context, query string) error {
	a.view.SetQuery(query)
	return a.List(ctx)
}

func (a *App) Bookmarked(ctx context.Context, arg string) error {
	switch strings.ToLower(arg) {
	case "on", "true", "1":
		a.view.SetBookmarkOnly(true)
	case "off", "false", "0":
		a.view.SetBookmarkOnly(false)
	case "":
		a.view.SetBookmarkOnly(!a.view.BookmarkOnly())
	default:
		a.println("Usage: bookmarked on|off")
		return nil
	}
	return a.List(ctx)
}

func (a *App) Next(ctx context.Context) error {
	a.view.Next()
	return a.List(ctx)
}

func (a *App) Previous(ctx context.Context) error {
	a.view.Previous()
	return a.List(ctx)
}

func (a *App) GoTo(ctx context.Context, arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		a.println("Usage: page <number>")
		return nil
	}
	a.view.GoTo(n)
	return a.List(ctx)
}

// Reload refetches the catalog and the bookmark set.
func (a *App) Reload(ctx context.Context) error {
	if err := a.bookmarks.Load(ctx); err != nil {
		a.println("Could not load bookmarks.")
	}
	if err := a.view.Reload(ctx); err != nil {
		a.println("Could not load resources.")
		return err
	}
	return a.List(ctx)
}

func (a *App) ToggleBookmark(ctx context.Context, arg string) error {
	res, ok := a.cardAt(arg)
	if !ok {
		return nil
	}
	if err := a.view.ToggleBookmark(ctx, res.ID); err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			a.println("Please log in to bookmark resources.")
		} else {
			a.println("Could not update bookmark. Please try again.")
		}
		return err
	}
	return a.List(ctx)
}

// Open prints the download URL of a card.
func (a *App) Open(_ context.Context, arg string) error {
	res, ok := a.cardAt(arg)
	if !ok {
		return nil
	}
	a.println(res.FileURL)
	return nil
}

// cardAt resolves a 1-based card number on the visible page.
func (a *App) cardAt(arg string) (models.Resource, bool) {
	n, err := strconv.Atoi(arg)
	cards := a.view.Page().Cards
	if err != nil || n < 1 || n > len(cards) {
		a.printf("Pick a card number between 1 and %d.\n", len(cards))
		return models.Resource{}, false
	}
	return cards[n-1].Resource, true
}
