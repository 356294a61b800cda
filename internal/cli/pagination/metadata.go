package pagination

// Meta describes the window returned by a paged list.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta computes the metadata of p applied to total items.
func NewMeta(p Params, total int) Meta {
	size := p.PageSize
	if size == 0 {
		size = p.Limit
	}
	if size == 0 {
		size = total
	}

	page := p.Page
	if page == 0 && size > 0 {
		page = p.Offset/size + 1
	}
	if page == 0 {
		page = 1
	}

	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Meta{
		CurrentPage: page,
		PageSize:    size,
		TotalPages:  pages,
		TotalItems:  total,
		HasPrevious: page > 1,
		HasNext:     page < pages,
	}
}
