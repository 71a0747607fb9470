package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPageRequest(t *testing.T) {
	req := DefaultPageRequest()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 5, req.PageSize)
	assert.Equal(t, 0, req.Offset())
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, PageSize: 5}.Offset())
	assert.Equal(t, 5, PageRequest{Page: 2, PageSize: 5}.Offset())
	assert.Equal(t, 20, PageRequest{Page: 3, PageSize: 10}.Offset())
}

func TestPaginationFor(t *testing.T) {
	tests := []struct {
		name    string
		req     PageRequest
		total   int64
		hasNext bool
	}{
		{"first page of many", PageRequest{Page: 1, PageSize: 5}, 12, true},
		{"middle page", PageRequest{Page: 2, PageSize: 5}, 12, true},
		{"last partial page", PageRequest{Page: 3, PageSize: 5}, 12, false},
		{"exact fit", PageRequest{Page: 2, PageSize: 5}, 10, false},
		{"empty resource", PageRequest{Page: 1, PageSize: 1000}, 0, false},
		{"page beyond end", PageRequest{Page: 9, PageSize: 5}, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginationFor(tt.req, tt.total)
			assert.Equal(t, tt.req.Page, p.Page)
			assert.Equal(t, int64(tt.req.PageSize), p.PageSize)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.hasNext, p.HasNext)
		})
	}
}
