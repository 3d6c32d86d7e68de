package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page struct {
	Page  int `json:"page" query:"page" validate:"gte=0"`
	Limit int `json:"limit" query:"limit" validate:"gte=0,lte=100"`
}

// Normalize fills zero values with the defaults.
func (p Page) Normalize() Page {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageInfo struct {
	TotalItems   int64 `json:"total_items"`
	CurrentPage  int   `json:"current_page"`
	PerPage      int   `json:"per_page"`
	TotalPages   int   `json:"total_pages"`
	NextPage     *int  `json:"next_page"`
	PreviousPage *int  `json:"previous_page"`
}

type ProductList struct {
	Data []Product `json:"data"`
	Meta PageInfo  `json:"meta"`
}

func NewPageInfo(total int64, p Page) PageInfo {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))

	info := PageInfo{
		TotalItems:  total,
		CurrentPage: p.Page,
		PerPage:     p.Limit,
		TotalPages:  totalPages,
	}

	if p.Page < totalPages {
		next := p.Page + 1
		info.NextPage = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		info.PreviousPage = &prev
	}

	return info
}
