package pagination

// Pagination describes one page of a list response.
type Pagination struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Offset   int   `json:"-"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

// New returns the pagination for page, falling back to the first page when
// page is not positive.
func New(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// SetTotal records the unpaged row count. An empty list still has one page.
func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	p.LastPage = TotalPages(total, p.Limit)
	if p.LastPage < 1 {
		p.LastPage = 1
	}
}

// TotalPages calculates the number of pages based on the total items and items per page.
func TotalPages(totalItems int64, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := int(totalItems) / limit
	if int(totalItems)%limit > 0 {
		pages++
	}
	return pages
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func NewPage[T any](data []T, p Pagination) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{Data: data, Pagination: p}
}
