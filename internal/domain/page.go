package domain

// PageParams carries offset/limit values from the HTTP layer to the repo layer.
type PageParams struct {
	// Offset is the number of matching rows to skip, zero-based.
	Offset int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPageParams builds a PageParams from optional HTTP query params.
// Nil pointers fall back to defaults (offset=0, limit=20).
// The limit is capped at 100 to prevent runaway queries.
func NewPageParams(offset, limit *int) PageParams {
	p := PageParams{Offset: 0, Limit: 20}
	if offset != nil && *offset > 0 {
		p.Offset = *offset
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}
