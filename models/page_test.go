package models

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestPaginationNormalize(t *testing.T) {
	testCases := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{name: "defaults", in: Pagination{}, want: Pagination{Page: 0, PageSize: DefaultPageSize}},
		{name: "negative page", in: Pagination{Page: -3, PageSize: 5}, want: Pagination{Page: 0, PageSize: 5}},
		{name: "oversized page size", in: Pagination{Page: 1, PageSize: math.MaxInt}, want: Pagination{Page: 1, PageSize: MaxPageSize}},
		{name: "huge page", in: Pagination{Page: math.MaxInt / 10, PageSize: 20}, want: Pagination{Page: maxPage, PageSize: 20}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got.Offset(), 0)
		})
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	testCases := []struct {
		name  string
		p     Pagination
		items []int
	}{
		{name: "first page", p: Pagination{PageSize: 2}, items: []int{1, 2}},
		{name: "last partial page", p: Pagination{Page: 2, PageSize: 2}, items: []int{5}},
		{name: "past the end", p: Pagination{Page: 3, PageSize: 2}, items: []int{}},
		{name: "max page size", p: Pagination{Page: 1, PageSize: math.MaxInt}, items: []int{}},
		{name: "huge page", p: Pagination{Page: math.MaxInt / 10, PageSize: 20}, items: []int{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := Paginate(all, tc.p)
			assert.Equal(t, tc.items, page.Items)
			assert.Equal(t, 5, page.Total)
		})
	}
}
