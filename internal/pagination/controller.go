// Package pagination implements the cursor-based fetch-merge loop shared by
// every listing surface (shop grid, category grid, blog index, blog
// archive). The controller owns the merge and guard logic; which remote
// query backs it is injected as a fetch function.
package pagination

import (
	"context"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
)

// Page is one page of remote results plus the cursor for the next one.
type Page[T any] struct {
	Items    []T
	PageInfo domain.PageInfo
}

// FetchFunc loads the page following the given cursor.
type FetchFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Controller accumulates pages of a remote list. Items are only ever
// appended; a failed fetch leaves items and cursor untouched so the caller
// may simply trigger LoadMore again.
type Controller[T any] struct {
	fetch  FetchFunc[T]
	logger *log.Logger

	mu      sync.Mutex
	loading bool
	items   []T
	info    domain.PageInfo
}

// New seeds a controller with the server-rendered first page.
func New[T any](seed []T, info domain.PageInfo, fetch FetchFunc[T], logger *log.Logger) *Controller[T] {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	items := make([]T, len(seed))
	copy(items, seed)
	return &Controller[T]{
		fetch:  fetch,
		logger: logger,
		items:  items,
		info:   info,
	}
}

// LoadMore fetches and appends the next page. It is a no-op returning false
// when there is no next page, no cursor, or a fetch is already in flight;
// only one remote call ever runs at a time.
func (c *Controller[T]) LoadMore(ctx context.Context) bool {
	c.mu.Lock()
	if c.loading || !c.info.HasNextPage || c.info.EndCursor == nil {
		c.mu.Unlock()
		return false
	}
	c.loading = true
	cursor := *c.info.EndCursor
	c.mu.Unlock()

	page, err := c.fetch(ctx, cursor)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		// Keep items and cursor as they were; the user may retry.
		c.logger.Printf("pagination: load more cursor=%q error=%v", cursor, err)
		return false
	}
	c.items = append(c.items, page.Items...)
	c.info = page.PageInfo
	return true
}

// Items returns a copy of everything loaded so far, in arrival order.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return items
}

// PageInfo returns the current cursor state.
func (c *Controller[T]) PageInfo() domain.PageInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}
