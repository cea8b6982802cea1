package dto

import (
	"bus-admin/internal/detail"
	"bus-admin/internal/listquery"
)

type MountViewDTO struct {
	Kind string `json:"kind" validate:"required,oneof=tickets reviews bookings"`
}

type PageDTO struct {
	Page int `json:"page" validate:"required,min=1"`
}

type MountedViewDTO struct {
	ViewID string `json:"viewId"`
	Kind   string `json:"kind"`
}

// ViewSnapshotDTO - всё, что рисует вид списка: состояние, статистика
// и панель деталей.
type ViewSnapshotDTO[T any, S any, D any] struct {
	ViewID string `json:"viewId"`
	Kind   string `json:"kind"`
	// Revision упорядочивает снимки одного вида.
	Revision uint64             `json:"revision"`
	State    listquery.State[T] `json:"state"`
	Stats    S                  `json:"stats"`
	Detail   detail.State[D]    `json:"detail"`
}
