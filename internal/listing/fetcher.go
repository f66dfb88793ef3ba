// Package listing drives incremental, page-by-page retrieval of upstream
// collections: an ordered, id-deduplicated accumulation that stops on the
// first short page.
package listing

import "context"

// DefaultPageSize is the page size requested from upstream collections
// unless a fetcher overrides it.
const DefaultPageSize = 16

// State is the observable lifecycle of a Fetcher.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateExhausted
	StateErrored
)

// Page is one bounded batch from a collection endpoint.
type Page[T any] struct {
	Items      []T
	TotalCount int
}

// RequestFunc fetches a single 1-indexed page of at most pageSize items.
type RequestFunc[T any] func(ctx context.Context, page, pageSize int) (Page[T], error)

// Fetcher accumulates a collection one page at a time. It is a
// single-owner state machine: one goroutine drives it, mirroring the
// cooperative scheduling it was designed for, so the in-flight guard is a
// plain bool that suppresses re-entrant triggers rather than a lock.
type Fetcher[T any] struct {
	request   RequestFunc[T]
	key       func(T) uint
	pageSize  int
	items     []T
	seen      map[uint]struct{}
	cursor    int
	inFlight  bool
	exhausted bool
	lastErr   error
}

// NewFetcher builds a fetcher over the given page request and primary-key
// extractor, starting at page 1 with DefaultPageSize.
func NewFetcher[T any](request RequestFunc[T], key func(T) uint) *Fetcher[T] {
	return &Fetcher[T]{
		request:  request,
		key:      key,
		pageSize: DefaultPageSize,
		seen:     make(map[uint]struct{}),
		cursor:   1,
	}
}

// WithPageSize overrides the requested page size.
func (f *Fetcher[T]) WithPageSize(size int) *Fetcher[T] {
	if size <= 0 {
		return f
	}
	f.pageSize = size
	return f
}

// FetchNextPage requests the next page and merges it into the accumulated
// items. It is a no-op while a fetch is in flight or once the collection is
// exhausted, which makes redundant triggers (scroll threshold plus
// intersection sentinel firing for the same scroll) safe.
//
// Duplicate ids across pages are dropped, keeping the first-seen copy; the
// cursor still advances for a page that contributed nothing new, so an
// overlapping upstream page can never cause an infinite re-fetch. A page
// shorter than the requested size, including an empty one, marks the
// collection exhausted. On failure nothing is merged, the cursor stays
// put, and the error is returned for the caller to surface or retry.
func (f *Fetcher[T]) FetchNextPage(ctx context.Context) error {
	if f.inFlight || f.exhausted {
		return nil
	}

	f.inFlight = true
	defer func() { f.inFlight = false }()

	page, err := f.request(ctx, f.cursor, f.pageSize)
	if err != nil {
		f.lastErr = err
		return err
	}
	f.lastErr = nil

	for _, item := range page.Items {
		k := f.key(item)
		if _, dup := f.seen[k]; dup {
			continue
		}
		f.seen[k] = struct{}{}
		f.items = append(f.items, item)
	}

	if len(page.Items) < f.pageSize {
		f.exhausted = true
	}
	f.cursor++

	return nil
}

// Drain fetches pages until the collection is exhausted, an error occurs,
// or the context is cancelled.
func (f *Fetcher[T]) Drain(ctx context.Context) error {
	for !f.exhausted {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.FetchNextPage(ctx); err != nil {
			return err
		}
	}
	return nil
}

// OnDemand fetches one page per demand signal until the channel closes,
// the collection is exhausted, or the context is cancelled. The signal
// source is interchangeable: scroll math, an intersection sentinel, or a
// test harness all look the same from here.
func (f *Fetcher[T]) OnDemand(ctx context.Context, demand <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-demand:
			if !ok {
				return nil
			}
			if err := f.FetchNextPage(ctx); err != nil {
				return err
			}
			if f.exhausted {
				return nil
			}
		}
	}
}

// Items returns the accumulated entities in arrival order. The slice is
// owned by the fetcher; callers must not mutate it.
func (f *Fetcher[T]) Items() []T { return f.items }

// Len reports how many distinct items have accumulated.
func (f *Fetcher[T]) Len() int { return len(f.items) }

// Cursor reports the next page number that will be requested.
func (f *Fetcher[T]) Cursor() int { return f.cursor }

// Exhausted reports whether the collection has no further pages. There is
// no way back: refreshing requires a fresh fetcher.
func (f *Fetcher[T]) Exhausted() bool { return f.exhausted }

// State derives the observable state from the internal flags.
func (f *Fetcher[T]) State() State {
	switch {
	case f.inFlight:
		return StateFetching
	case f.exhausted:
		return StateExhausted
	case f.lastErr != nil:
		return StateErrored
	default:
		return StateIdle
	}
}

// Err returns the error from the most recent failed fetch, cleared by the
// next successful one.
func (f *Fetcher[T]) Err() error { return f.lastErr }
