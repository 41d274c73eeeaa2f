package domain

// Page is a paginated slice reconstructed from whichever envelope shape the backend used.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// EmptyPage is the zero-value list state kept after a failed fetch.
func EmptyPage[T any](page, size int) Page[T] {
	return Page[T]{Items: []T{}, Page: page, Size: size}
}
