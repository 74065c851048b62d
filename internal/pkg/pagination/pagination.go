package pagination

import "strconv"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Params struct {
	Page    int
	PerPage int
}

// NewParams clamps page and perPage into the accepted range.
func NewParams(page, perPage int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Params{
		Page:    page,
		PerPage: min(perPage, MaxPerPage),
	}
}

// ParseParams reads raw query values. Unparseable values fall back to the defaults.
func ParseParams(page, perPage string) Params {
	p, _ := strconv.Atoi(page)
	pp, _ := strconv.Atoi(perPage)
	return NewParams(p, pp)
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Params) Limit() int {
	return p.PerPage
}

type Info struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func NewInfo(p Params, totalItems int) *Info {
	totalPages := max((totalItems+p.PerPage-1)/p.PerPage, 1)

	return &Info{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
