package paginator

const (
	DefaultPage  = 1
	DefaultLimit = 20
	// MaxLimit caps dashboard list pages.
	MaxLimit = 200
)

// PaginateQuery is the page request of a list endpoint. Page is 1-indexed.
type PaginateQuery struct {
	Page  int   `json:"page" form:"page"`
	Limit int64 `json:"limit" form:"limit"`
}

// Adjust replaces out-of-range values with the defaults and caps Limit.
func (p *PaginateQuery) Adjust() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
}

func (p *PaginateQuery) Offset() int64 {
	return int64(p.Page-1) * p.Limit
}

// Result builds the Paginator of a result of count rows out of total for the
// adjusted query.
func (p PaginateQuery) Result(total int64, count int) Paginator {
	p.Adjust()
	return Paginator{
		Total:       total,
		Count:       int64(count),
		PerPage:     p.Limit,
		CurrentPage: p.Page,
	}
}

// Paginator describes one page of a list result.
type Paginator struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int   `json:"current_page"`
}

func (p Paginator) TotalPages() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 0
	}
	return int((p.Total + p.PerPage - 1) / p.PerPage)
}

func (p Paginator) ToResponse() PaginatorResponse {
	pages := p.TotalPages()
	return PaginatorResponse{
		Total:       p.Total,
		Count:       p.Count,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		TotalPages:  pages,
		HasNext:     p.CurrentPage < pages,
		HasPrev:     p.CurrentPage > 1,
	}
}

// PaginatorResponse is the paginator as rendered in list responses.
type PaginatorResponse struct {
	Total       int64 `json:"total"`
	Count       int64 `json:"count"`
	PerPage     int64 `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}
