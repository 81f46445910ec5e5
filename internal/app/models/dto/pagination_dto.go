package dto

import "github.com/edutech/studify/internal/pkg/helpers"

// PagedResponse wraps a page of items together with paging metadata.
type PagedResponse[T any] struct {
	Content    []T                    `json:"content"`
	Pagination helpers.PaginationInfo `json:"pagination"`
}

// NewPagedResponse builds a page envelope. A nil slice serializes as an
// empty array, never null.
func NewPagedResponse[T any](items []T, totalItems int64, page, size int) PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PagedResponse[T]{
		Content:    items,
		Pagination: helpers.NewPaginationInfo(totalItems, page, size),
	}
}
