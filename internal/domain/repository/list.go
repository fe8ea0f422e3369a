package repository

const (
	// DefaultLimit is the page size used when a listing does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps every page size.
	MaxLimit = 100
)

// ListParams carries pagination and free-text search for every listing.
type ListParams struct {
	Skip   int
	Limit  int
	Search string
}

// Normalize clamps skip and limit, using def when limit is unset.
func (p ListParams) Normalize(def int) ListParams {
	if p.Skip < 0 {
		p.Skip = 0
	}

	switch {
	case p.Limit <= 0:
		p.Limit = def
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}

	return p
}
