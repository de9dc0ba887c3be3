package domain

// PaginatedResult wraps a page of items together with the total count.
type PaginatedResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// NewPaginatedResult creates a PaginatedResult for the given page.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	return PaginatedResult[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}
