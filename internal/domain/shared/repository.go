package shared

import "context"

// Pagination describes an offset-based page request
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the page
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size, defaulting when unset
func (p Pagination) Limit() int {
	if p.PageSize < 1 {
		return 20
	}
	return p.PageSize
}

// Paginated wraps a page of results with the total row count
type Paginated[T any] struct {
	Items      []T
	TotalCount int64
	Page       int
	PageSize   int
}

// TxManager runs a function within a single atomic transaction.
// The transaction is carried on the returned context; repository calls made
// with that context join the same transaction. Nested calls reuse the
// transaction already on the context.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
