package listquery

import (
	"context"
	"net/url"

	"bus-admin/pkg/apiclient"
)

// Criteria - набор необязательных ограничений. Пустое поле - нет ограничения.
type Criteria interface {
	IsEmpty() bool
	Values() url.Values
}

// Source - REST-коллекция, из которой читает контроллер.
type Source[T any] interface {
	List(ctx context.Context, query url.Values) (*apiclient.Page[T], error)
	Search(ctx context.Context, query url.Values) (*apiclient.Page[T], error)
	Filter(ctx context.Context, query url.Values) (*apiclient.Page[T], error)
}

// normalize возвращает c с упорядоченными границами, если тип это поддерживает.
func normalize[C Criteria](c C) C {
	if n, ok := any(c).(interface{ Normalize() C }); ok {
		return n.Normalize()
	}
	return c
}

// refinerFor возвращает локальное уточнение из критериев фильтра, если оно есть.
// Уточнение видит только страницу, которую вернул сервер.
func refinerFor[T any, C Criteria](c C) func([]T) []T {
	if r, ok := any(c).(interface{ Refine([]T) []T }); ok {
		return r.Refine
	}
	return nil
}
