package query

import (
	"context"
	"math"
	"sync"
	"time"
)

// Result is one fetched slice of a collection plus its total row count.
type Result[T any] struct {
	Rows  []T `json:"data"`
	Total int `json:"total"`
}

// TotalPages derives the page count for a given page size.
func (r Result[T]) TotalPages(pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int(math.Ceil(float64(r.Total) / float64(pageSize)))
}

// Fetcher loads one page matching a descriptor.
type Fetcher[T any] interface {
	FetchList(ctx context.Context, d Descriptor) (Result[T], error)
}

// FetchFunc adapts a plain function to the Fetcher interface.
type FetchFunc[T any] func(ctx context.Context, d Descriptor) (Result[T], error)

func (f FetchFunc[T]) FetchList(ctx context.Context, d Descriptor) (Result[T], error) {
	return f(ctx, d)
}

// Engine owns one Descriptor per list view and keeps the matching page.
// Every mutation triggers exactly one fetch; the result replaces the held
// page in full. A fetch failure keeps the previous page visible and is
// reported through the error return (or OnError for debounced fetches).
// Responses that arrive after a newer fetch was issued are discarded.
type Engine[T any] struct {
	mu      sync.Mutex
	ctx     context.Context
	fetcher Fetcher[T]
	delay   time.Duration

	desc    Descriptor
	page    Result[T]
	fetched bool
	lastErr error

	seq      uint64 // latest issued fetch token
	applied  uint64 // token of the page currently held
	closed   bool
	debounce debouncer

	// OnError receives failures from fetches that fire off a timer.
	OnError func(error)
}

// NewEngine builds an engine with the default sort at page 1. The debounce
// delay applies to SetSearchText only.
func NewEngine[T any](ctx context.Context, fetcher Fetcher[T], pageSize int, delay time.Duration) *Engine[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Engine[T]{
		ctx:     ctx,
		fetcher: fetcher,
		delay:   delay,
		desc:    NewDescriptor(pageSize),
	}
}

// Descriptor returns a copy of the current query intent.
func (e *Engine[T]) Descriptor() Descriptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.desc.clone()
}

// Current returns the page held after the last successful fetch.
func (e *Engine[T]) Current() Result[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}

// CurrentPage returns the 1-indexed page number of the descriptor.
func (e *Engine[T]) CurrentPage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.desc.Page
}

// LastErr reports the most recent fetch failure, nil after a success.
func (e *Engine[T]) LastErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Labels returns the compact pager labels for the current state.
func (e *Engine[T]) Labels() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return PageLabels(e.desc.Page, e.page.TotalPages(e.desc.PageSize))
}

// Fetch issues an initial or manual load of the current descriptor.
func (e *Engine[T]) Fetch() error {
	e.mu.Lock()
	tok, d := e.issueLocked()
	e.mu.Unlock()
	return e.run(tok, d)
}

// SetSearchText updates the free-text filter. The fetch fires only after
// the debounce delay elapses without another keystroke; the page resets to
// 1 when the debounced fetch fires.
func (e *Engine[T]) SetSearchText(text string) {
	e.debounce.schedule(e.delay, func() {
		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		e.desc.Search = text
		e.desc.Page = 1
		tok, d := e.issueLocked()
		e.mu.Unlock()
		if err := e.run(tok, d); err != nil && e.OnError != nil {
			e.OnError(err)
		}
	})
}

// SetSort replaces the sort with a single field/direction pair and resets
// the page to 1.
func (e *Engine[T]) SetSort(field, dir string) error {
	e.mu.Lock()
	if dir != DirAsc {
		dir = DirDesc
	}
	e.desc.SortField = field
	e.desc.SortDir = dir
	e.desc.Page = 1
	tok, d := e.issueLocked()
	e.mu.Unlock()
	return e.run(tok, d)
}

// SetFilter adds or replaces the named filter; an empty value removes it.
// Resets the page to 1.
func (e *Engine[T]) SetFilter(key string, f *Filter) error {
	e.mu.Lock()
	if f == nil {
		delete(e.desc.Filters, key)
	} else {
		e.desc.Filters[key] = *f
	}
	e.desc.Page = 1
	tok, d := e.issueLocked()
	e.mu.Unlock()
	return e.run(tok, d)
}

// SetDateRange constrains creation time to [start of from's day, end of
// to's day] in local time. Resets the page to 1.
func (e *Engine[T]) SetDateRange(from, to time.Time) error {
	e.mu.Lock()
	e.desc.Range = &DateRange{From: startOfDay(from), To: endOfDay(to)}
	e.desc.Page = 1
	tok, d := e.issueLocked()
	e.mu.Unlock()
	return e.run(tok, d)
}

// ClearDateRange removes the creation-time constraint.
func (e *Engine[T]) ClearDateRange() error {
	e.mu.Lock()
	e.desc.Range = nil
	e.desc.Page = 1
	tok, d := e.issueLocked()
	e.mu.Unlock()
	return e.run(tok, d)
}

// ClearAll resets search, sort, filters, range and page.
func (e *Engine[T]) ClearAll() error {
	e.debounce.cancel()
	e.mu.Lock()
	e.desc = NewDescriptor(e.desc.PageSize)
	tok, d := e.issueLocked()
	e.mu.Unlock()
	return e.run(tok, d)
}

// GoToPage moves the page by delta, clamped to [1, totalPages]. A delta
// that lands on the current page is a no-op and does not fetch.
func (e *Engine[T]) GoToPage(delta int) error {
	e.mu.Lock()
	target := e.desc.Page + delta
	if target < 1 {
		target = 1
	}
	if e.fetched {
		if tp := e.page.TotalPages(e.desc.PageSize); tp >= 1 && target > tp {
			target = tp
		}
	}
	if target == e.desc.Page {
		e.mu.Unlock()
		return nil
	}
	e.desc.Page = target
	tok, d := e.issueLocked()
	e.mu.Unlock()
	return e.run(tok, d)
}

// Close cancels any pending debounced fetch and stops late responses from
// mutating state after the owning view is torn down.
func (e *Engine[T]) Close() {
	e.debounce.cancel()
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

func (e *Engine[T]) issueLocked() (uint64, Descriptor) {
	e.seq++
	return e.seq, e.desc.clone()
}

func (e *Engine[T]) run(tok uint64, d Descriptor) error {
	res, err := e.fetcher.FetchList(e.ctx, d)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || tok != e.seq || tok < e.applied {
		// a newer query was issued while this one was in flight
		return nil
	}
	if err != nil {
		e.lastErr = err
		return err
	}
	e.applied = tok
	e.page = res
	e.fetched = true
	e.lastErr = nil
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.Local)
}
