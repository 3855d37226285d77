package dto

import "patients-management/internal/domain/entity"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	DateLayout       = "2006-01-02"
)

// PageQuery carries the page/limit query parameters shared by list endpoints.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize clamps the page to at least 1 and the limit into [1, MaxPageLimit].
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

func (q PageQuery) Pagination() entity.Pagination {
	n := q.Normalize()
	return entity.Pagination{Page: n.Page, Limit: n.Limit}
}

// TotalPriceResponse is the body of the nested total-price endpoints.
type TotalPriceResponse struct {
	TotalPrice string `json:"total_price"`
}
