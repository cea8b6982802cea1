package types

import "github.com/shopspring/decimal"

type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// KPI Metric
type DashboardKPIMetric struct {
	Current   float64 `json:"current"`
	Previous  float64 `json:"-"`
	Formatted string  `json:"formatted"`
	TrendPct  float64 `json:"trend_pct"`
	TrendText string  `json:"trend_text"`
}

// KPI Groups
type DashboardKPIs struct {
	TotalTickets  DashboardKPIMetric `json:"total_tickets"`
	Revenue       DashboardKPIMetric `json:"revenue"`
	TotalBookings DashboardKPIMetric `json:"total_bookings"`
	AverageRating DashboardKPIMetric `json:"average_rating"`
	ActiveTrips   int64              `json:"active_trips"`
}

type DashboardChartData struct {
	Label  string          `json:"label"`
	Value  int64           `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}
