package query

import (
	"net/url"
	"strconv"
	"time"
)

const (
	DirAsc  = "asc"
	DirDesc = "desc"

	DefaultSortField = "createdAt"
	DefaultSortDir   = DirDesc
	DefaultPageSize  = 10
)

// Filter is one named constraint on a list query. Absence of a key means
// "no constraint", never an explicit no-op entry.
type Filter struct {
	Field string `json:"field"`
	Op    string `json:"op"` // eq, like, in
	Value string `json:"value"`
}

// DateRange is an inclusive creation-time window.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Descriptor is the full pagination + sort + filter intent sent to a
// list endpoint.
type Descriptor struct {
	Page      int
	PageSize  int
	SortField string
	SortDir   string
	Search    string
	Filters   map[string]Filter
	Range     *DateRange
}

// NewDescriptor returns a descriptor at page 1 with the default sort.
func NewDescriptor(pageSize int) Descriptor {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Descriptor{
		Page:      1,
		PageSize:  pageSize,
		SortField: DefaultSortField,
		SortDir:   DefaultSortDir,
		Filters:   map[string]Filter{},
	}
}

// Params serializes the descriptor into query parameters understood by the
// list endpoints (page, limit, sort, dir, q, from, to plus one param per
// filter key).
func (d Descriptor) Params() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(d.Page))
	v.Set("limit", strconv.Itoa(d.PageSize))
	if d.SortField != "" {
		v.Set("sort", d.SortField)
		v.Set("dir", d.SortDir)
	}
	if d.Search != "" {
		v.Set("q", d.Search)
	}
	for key, f := range d.Filters {
		v.Set(key, f.Value)
	}
	if d.Range != nil {
		v.Set("from", d.Range.From.Format("2006-01-02 15:04:05"))
		v.Set("to", d.Range.To.Format("2006-01-02 15:04:05"))
	}
	return v
}

func (d Descriptor) clone() Descriptor {
	out := d
	out.Filters = make(map[string]Filter, len(d.Filters))
	for k, f := range d.Filters {
		out.Filters[k] = f
	}
	if d.Range != nil {
		r := *d.Range
		out.Range = &r
	}
	return out
}
