package models

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 500
)

// maxPage keeps Page*PageSize within int range.
const maxPage = math.MaxInt / MaxPageSize

// Pagination is zero-based: page 0 is the first page.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Normalize() Pagination {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > maxPage {
		p.Page = maxPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	n := p.Normalize()
	return n.Page * n.PageSize
}

// Page is the envelope returned by every list operation.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func NewPage[T any](items []T, total int, p Pagination) Page[T] {
	p = p.Normalize()
	if items == nil {
		items = make([]T, 0)
	}
	return Page[T]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}
}

// Paginate slices an already filtered and sorted result set.
func Paginate[T any](all []T, p Pagination) Page[T] {
	p = p.Normalize()
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if p.PageSize < end-start {
		end = start + p.PageSize
	}
	if end > len(all) {
		end = len(all)
	}
	items := make([]T, end-start)
	copy(items, all[start:end])
	return NewPage(items, len(all), p)
}
