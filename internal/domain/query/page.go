package query

import (
	"errors"
	"slices"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// AllowedLimits are the page sizes callers may ask for; 0 means unlimited.
var AllowedLimits = []int{0, 5, 10, 25, 50, 100}

var ErrOffsetOutOfRange = errors.New("offset exceeds the number of matching records")

type (
	Pagination struct {
		Page   int `json:"page"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}
	Page[T any] struct {
		Docs   []T `json:"docs"`
		Total  int `json:"total"`
		Limit  int `json:"limit"`
		Page   int `json:"page"`
		Pages  int `json:"pages"`
		Offset int `json:"offset"`
	}
	// Window is the slice [Start, End) of the pre-offset sequence that makes
	// up the requested page, plus the page metadata.
	Window struct {
		Start int
		End   int
		Total int
		Pages int
	}
)

func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, Limit: DefaultLimit}
}

func IsAllowedLimit(limit int) bool { return slices.Contains(AllowedLimits, limit) }

// Window computes the page boundaries over count filtered records.
func (p Pagination) Window(count int) (Window, error) {
	p = p.normalized()
	if p.Offset > count {
		return Window{}, ErrOffsetOutOfRange
	}

	w := Window{Total: count - p.Offset, Pages: 1}
	if p.Limit == 0 {
		w.Start, w.End = p.Offset, count
		if p.Page > 1 {
			w.Start = count
		}
		return w, nil
	}

	if pages := (w.Total + p.Limit - 1) / p.Limit; pages > 1 {
		w.Pages = pages
	}
	// Pages past the end are empty; checked before multiplying so huge page
	// numbers cannot overflow.
	if p.Page-1 > (count-p.Offset)/p.Limit {
		w.Start, w.End = count, count
		return w, nil
	}
	w.Start = min(p.Offset+(p.Page-1)*p.Limit, count)
	w.End = min(w.Start+p.Limit, count)

	return w, nil
}

func (p Pagination) normalized() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// NewPage assembles the result envelope for docs already cut to w.
func NewPage[T any](docs []T, p Pagination, w Window) Page[T] {
	p = p.normalized()
	if docs == nil {
		docs = []T{}
	}
	return Page[T]{
		Docs:   docs,
		Total:  w.Total,
		Limit:  p.Limit,
		Page:   p.Page,
		Pages:  w.Pages,
		Offset: p.Offset,
	}
}

// Paginate slices an already filtered sequence.
func Paginate[T any](items []T, p Pagination) (Page[T], error) {
	w, err := p.Window(len(items))
	if err != nil {
		return Page[T]{}, err
	}

	docs := make([]T, w.End-w.Start)
	copy(docs, items[w.Start:w.End])

	return NewPage(docs, p, w), nil
}
