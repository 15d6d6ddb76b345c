package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name string
}

// stubFetcher serves a fixed total and records every descriptor it sees.
type stubFetcher struct {
	mu    sync.Mutex
	total int
	calls []Descriptor
	err   error
	block chan struct{} // when set, FetchList waits before returning
}

func (f *stubFetcher) FetchList(_ context.Context, d Descriptor) (Result[row], error) {
	f.mu.Lock()
	f.calls = append(f.calls, d)
	block := f.block
	err := f.err
	total := f.total
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return Result[row]{}, err
	}
	return Result[row]{Rows: []row{{Name: d.SortField + ":" + d.SortDir + ":" + d.Search}}, Total: total}, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *stubFetcher) lastCall() Descriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func TestMutationsResetPageToOne(t *testing.T) {
	f := &stubFetcher{total: 50}
	e := NewEngine[row](context.Background(), f, 10, time.Millisecond)
	require.NoError(t, e.Fetch())
	require.NoError(t, e.GoToPage(2))
	require.Equal(t, 3, e.CurrentPage())

	require.NoError(t, e.SetSort("total", DirAsc))
	assert.Equal(t, 1, e.CurrentPage())

	require.NoError(t, e.GoToPage(2))
	require.NoError(t, e.SetFilter("status", &Filter{Field: "status", Op: "eq", Value: "pending"}))
	assert.Equal(t, 1, e.CurrentPage())

	require.NoError(t, e.GoToPage(2))
	require.NoError(t, e.SetDateRange(time.Now().AddDate(0, 0, -7), time.Now()))
	assert.Equal(t, 1, e.CurrentPage())
}

func TestGoToPageClampsAtBounds(t *testing.T) {
	f := &stubFetcher{total: 50} // 5 pages at size 10
	e := NewEngine[row](context.Background(), f, 10, time.Millisecond)
	require.NoError(t, e.Fetch())

	require.NoError(t, e.GoToPage(-3))
	assert.Equal(t, 1, e.CurrentPage())

	require.NoError(t, e.GoToPage(99))
	assert.Equal(t, 5, e.CurrentPage())

	calls := f.callCount()
	require.NoError(t, e.GoToPage(0))
	assert.Equal(t, 5, e.CurrentPage())
	assert.Equal(t, calls, f.callCount(), "no-op delta must not fetch")
}

func TestRemoveFilterDeletesKey(t *testing.T) {
	f := &stubFetcher{total: 10}
	e := NewEngine[row](context.Background(), f, 10, time.Millisecond)
	require.NoError(t, e.SetFilter("status", &Filter{Field: "status", Op: "eq", Value: "pending"}))
	require.Contains(t, e.Descriptor().Filters, "status")

	require.NoError(t, e.SetFilter("status", nil))
	assert.NotContains(t, e.Descriptor().Filters, "status")
	assert.NotContains(t, f.lastCall().Filters, "status")
}

func TestSearchDebounceTrailingEdge(t *testing.T) {
	f := &stubFetcher{total: 10}
	e := NewEngine[row](context.Background(), f, 10, 40*time.Millisecond)

	e.SetSearchText("a")
	e.SetSearchText("ao")
	e.SetSearchText("ao so mi")
	time.Sleep(120 * time.Millisecond)

	require.Equal(t, 1, f.callCount(), "earlier keystrokes must be cancelled")
	assert.Equal(t, "ao so mi", f.lastCall().Search)
	assert.Equal(t, 1, f.lastCall().Page)
}

func TestFetchFailureKeepsStalePage(t *testing.T) {
	f := &stubFetcher{total: 30}
	e := NewEngine[row](context.Background(), f, 10, time.Millisecond)
	require.NoError(t, e.Fetch())
	before := e.Current()

	f.mu.Lock()
	f.err = errors.New("boom")
	f.mu.Unlock()

	err := e.SetSort("total", DirDesc)
	require.Error(t, err)
	assert.Equal(t, before.Total, e.Current().Total, "stale page stays visible")
	assert.Error(t, e.LastErr())

	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()
	require.NoError(t, e.Fetch())
	assert.NoError(t, e.LastErr())
}

func TestStaleResponseDiscarded(t *testing.T) {
	f := &stubFetcher{total: 30}
	e := NewEngine[row](context.Background(), f, 10, time.Millisecond)
	require.NoError(t, e.Fetch())

	// Query A stalls in flight.
	gate := make(chan struct{})
	f.mu.Lock()
	f.block = gate
	f.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- e.SetSort("total", DirAsc) }()

	// Wait until A is issued, then let query B win the race.
	for f.callCount() < 2 {
		time.Sleep(time.Millisecond)
	}
	f.mu.Lock()
	f.block = nil
	f.mu.Unlock()
	require.NoError(t, e.SetSort("createdAt", DirDesc))
	want := e.Current()

	close(gate)
	require.NoError(t, <-done)
	assert.Equal(t, want, e.Current(), "stale response must not overwrite newer page")
}

func TestCloseStopsPendingSearch(t *testing.T) {
	f := &stubFetcher{total: 10}
	e := NewEngine[row](context.Background(), f, 10, 30*time.Millisecond)
	e.SetSearchText("giat kho")
	e.Close()
	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, f.callCount())
}

func TestDescriptorParamsSerialization(t *testing.T) {
	d := NewDescriptor(5)
	d.Page = 2
	d.Search = "nguyen"
	d.Filters["status"] = Filter{Field: "status", Op: "eq", Value: "completed"}

	v := d.Params()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "5", v.Get("limit"))
	assert.Equal(t, DefaultSortField, v.Get("sort"))
	assert.Equal(t, DirDesc, v.Get("dir"))
	assert.Equal(t, "nguyen", v.Get("q"))
	assert.Equal(t, "completed", v.Get("status"))
	assert.Empty(t, v.Get("from"))
}
