package models

// Paged is the standard list response envelope: items plus paging info.
type Paged[T any] struct {
	Items []T   `json:"items"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
	Total int64 `json:"total"`
}

// PageSize defaults per surface. The storefront shows fewer rows than admin tables.
const (
	StorePageSize = 10
	AdminPageSize = 20
)

func NewPaged[T any](items []T, page, total, pageSize int64) Paged[T] {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if items == nil {
		items = []T{}
	}
	return Paged[T]{Items: items, Page: page, Pages: pages, Total: total}
}
