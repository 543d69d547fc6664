package catalog

import "github.com/dmitrijs2005/resourcehub/internal/common"

// Pager slices a sequence into fixed-size pages. Pages are 1-indexed and
// every navigation clamps silently instead of failing.
type Pager[T any] struct {
	pageSize int
	items    []T
	page     int
}

// NewPager falls back to common.DefaultPageSize for non-positive sizes.
func NewPager[T any](pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = common.DefaultPageSize
	}
	return &Pager[T]{pageSize: pageSize, page: 1}
}

// SetItems replaces the sequence and pulls the current page back into
// range when the sequence shrank.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.GoTo(p.page)
}

func (p *Pager[T]) PageSize() int { return p.pageSize }

// Len is the length of the whole sequence.
func (p *Pager[T]) Len() int { return len(p.items) }

// TotalPages is ceil(Len/PageSize); zero for an empty sequence.
func (p *Pager[T]) TotalPages() int {
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

func (p *Pager[T]) CurrentPage() int { return p.page }

// CurrentItems returns the active page's slice of the sequence.
func (p *Pager[T]) CurrentItems() []T {
	start := (p.page - 1) * p.pageSize
	if start >= len(p.items) {
		return []T{}
	}
	end := min(start+p.pageSize, len(p.items))
	return p.items[start:end:end]
}

func (p *Pager[T]) Next() {
	if p.page < p.TotalPages() {
		p.page++
	}
}

func (p *Pager[T]) Previous() {
	if p.page > 1 {
		p.page--
	}
}

// GoTo clamps page into [1, max(1, TotalPages)].
func (p *Pager[T]) GoTo(page int) {
	last := max(1, p.TotalPages())
	p.page = min(max(page, 1), last)
}
