package models

// PageQuery is a validated 1-based page request.
type PageQuery struct {
	Page  int64
	Limit int64
}

func (p PageQuery) Skip() int64 {
	return (p.Page - 1) * p.Limit
}
