// Package pagination applies one windowing policy to every list endpoint.
//
// Page 0 is a sentinel for "no paging": the full matching set is returned.
// Pages from 1 up are 1-indexed windows of PageSize items. Each returned item
// carries a 1-based counter that continues across pages. The helper never
// sorts; page stability depends on the store returning a stable order.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is used whenever a caller supplies no usable page size.
const DefaultPageSize = 10

// Request is a client page request.
type Request struct {
	PageSize    int `json:"page_size"`
	CurrentPage int `json:"current_page"`
}

// Window is the store-level slice of a result set. Limit 0 means unbounded.
type Window struct {
	Offset int
	Limit  int
}

// Counted is satisfied by pointers to items that carry a sequence counter.
type Counted[T any] interface {
	*T
	SetCounter(n int)
}

// Result is one page of a listing.
type Result[T any] struct {
	TotalCount  int64 `json:"total_count"`
	PageSize    int   `json:"page_size"`
	CurrentPage int   `json:"current_page"`
	Items       []T   `json:"items"`
}

// ParseRequest reads page_size and current_page from query parameters.
// Missing or unusable values fall back to defaults instead of failing.
func ParseRequest(q url.Values) Request {
	req := Request{PageSize: DefaultPageSize, CurrentPage: 1}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("page_size"))); err == nil {
		req.PageSize = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("current_page"))); err == nil {
		req.CurrentPage = v
	}
	return req.Normalize()
}

// Normalize replaces a non-positive page size with DefaultPageSize and a
// negative page with the first page.
func (r Request) Normalize() Request {
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.CurrentPage < 0 {
		r.CurrentPage = 1
	}
	return r
}

// Unbounded reports whether r asks for the whole result set.
func (r Request) Unbounded() bool {
	return r.CurrentPage == 0
}

// Window converts r into an offset/limit pair.
func (r Request) Window() Window {
	r = r.Normalize()
	if r.Unbounded() {
		return Window{}
	}
	skip := r.CurrentPage - 1
	if skip > math.MaxInt/r.PageSize {
		// Past any real result set; saturate instead of wrapping.
		return Window{Offset: math.MaxInt, Limit: r.PageSize}
	}
	return Window{Offset: r.PageSize * skip, Limit: r.PageSize}
}

// Slice returns the part of items covered by w. A window starting past the
// end yields an empty slice.
func Slice[T any](items []T, w Window) []T {
	if w.Offset < 0 || w.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if w.Limit > 0 && w.Limit < end-w.Offset {
		end = w.Offset + w.Limit
	}
	return items[w.Offset:end]
}

// Paginate windows a complete, already ordered result set and numbers the
// returned items. totalCount is reported unchanged even when the page is
// out of range.
func Paginate[T any, P Counted[T]](totalCount int64, req Request, ordered []T) Result[T] {
	req = req.Normalize()
	return NewResult[T, P](totalCount, req, Slice(ordered, req.Window()))
}

// NewResult builds a page from items the store has already windowed. The
// first item is numbered offset+1.
func NewResult[T any, P Counted[T]](totalCount int64, req Request, window []T) Result[T] {
	req = req.Normalize()
	offset := req.Window().Offset
	items := make([]T, len(window))
	copy(items, window)
	for i := range items {
		P(&items[i]).SetCounter(offset + i + 1)
	}
	return Result[T]{
		TotalCount:  totalCount,
		PageSize:    req.PageSize,
		CurrentPage: req.CurrentPage,
		Items:       items,
	}
}

// Map converts the items of r while keeping its totals and counters.
func Map[T, U any, PU Counted[U]](r Result[T], f func(T) U) Result[U] {
	mapped := make([]U, len(r.Items))
	for i, item := range r.Items {
		mapped[i] = f(item)
	}
	return NewResult[U, PU](r.TotalCount, r.Request(), mapped)
}

// Request returns the page request r was built for.
func (r Result[T]) Request() Request {
	return Request{PageSize: r.PageSize, CurrentPage: r.CurrentPage}
}
