package listquery

import (
	"net/url"

	"bus-admin/pkg/apiclient"
)

// State - то, что рисует вид списка. Меняется только контроллером.
type State[T any] struct {
	Items       []T                  `json:"items"`
	Pagination  apiclient.Pagination `json:"pagination"`
	Loading     bool                 `json:"loading"`
	HasSearched bool                 `json:"hasSearched"`
	Error       string               `json:"error,omitempty"`
	Warning     string               `json:"warning,omitempty"`
	// Version - номер запроса, чей результат лежит в Items.
	Version uint64 `json:"version"`
	// Revision растёт при каждом изменении; подписчики отбрасывают более старые снимки.
	Revision uint64 `json:"revision"`
}

func (s State[T]) clone() State[T] {
	items := make([]T, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

type operation string

const (
	opList   operation = "list"
	opSearch operation = "search"
	opFilter operation = "filter"
)

// query запоминает операцию, чтобы повторить её для другой страницы.
type query[T any] struct {
	op     operation
	values url.Values
	refine func([]T) []T
	page   int
}
