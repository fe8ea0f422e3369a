package entity

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items []*T  `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPage builds a page, computing pages = ceil(total/limit).
func NewPage[T any](items []*T, total int64, skip, limit int) *Page[T] {
	if items == nil {
		items = []*T{}
	}

	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}

	return &Page[T]{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
		Pages: pages,
	}
}
