package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		in   PaginateQuery
		want PaginateQuery
	}{
		{PaginateQuery{}, PaginateQuery{Page: DefaultPage, Limit: DefaultLimit}},
		{PaginateQuery{Page: -3, Limit: -1}, PaginateQuery{Page: DefaultPage, Limit: DefaultLimit}},
		{PaginateQuery{Page: 4, Limit: 5000}, PaginateQuery{Page: 4, Limit: MaxLimit}},
		{PaginateQuery{Page: 2, Limit: 10}, PaginateQuery{Page: 2, Limit: 10}},
	}
	for _, tt := range tests {
		got := tt.in
		got.Adjust()
		assert.Equal(t, tt.want, got)
	}
}

func TestResult(t *testing.T) {
	pq := PaginateQuery{Page: 2, Limit: 10}
	assert.Equal(t, int64(10), pq.Offset())

	p := pq.Result(25, 10)
	assert.Equal(t, Paginator{Total: 25, Count: 10, PerPage: 10, CurrentPage: 2}, p)

	resp := p.ToResponse()
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)

	last := PaginateQuery{Page: 3, Limit: 10}.Result(25, 5).ToResponse()
	assert.False(t, last.HasNext)

	assert.Equal(t, 0, Paginator{}.TotalPages())
}
