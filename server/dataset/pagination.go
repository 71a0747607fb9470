package dataset

// Pagination bounds. Validation against them belongs to the serving
// layer; the core assumes requests already passed it.
const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MinPageSize     = 1
	MaxPageSize     = 1000
)

// PageRequest carries the validated pagination parameters of one request.
type PageRequest struct {
	Page     int
	PageSize int
}

// DefaultPageRequest returns the first page with the default size.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: DefaultPage, PageSize: DefaultPageSize}
}

// Offset returns the zero-based row offset of the page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Pagination is the wire-visible pagination envelope.
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
	HasNext  bool  `json:"has_next"`
}

// paginationFor computes the envelope for a sliced page.
func paginationFor(req PageRequest, total int64) Pagination {
	return Pagination{
		Page:     req.Page,
		PageSize: int64(req.PageSize),
		Total:    total,
		HasNext:  int64(req.Offset()+req.PageSize) < total,
	}
}
