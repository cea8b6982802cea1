package dto

import (
	"bus-admin/internal/entities"
	"bus-admin/pkg/types"
)

type DashboardStatsDTO struct {
	Period          types.Period               `json:"period"`
	KPIs            *types.DashboardKPIs       `json:"kpis"`
	TicketsByStatus []StatusCount              `json:"tickets_by_status"`
	Revenue         []types.DashboardChartData `json:"revenue"`
	LatestBookings  []entities.Booking         `json:"latest_bookings"`
}

type RevenueSeriesDTO struct {
	Period  types.Period               `json:"period"`
	GroupBy string                     `json:"group_by"`
	Points  []types.DashboardChartData `json:"points"`
	Total   string                     `json:"total"`
}
