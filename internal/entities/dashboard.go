package entities

import "github.com/shopspring/decimal"

// DashboardSummary - результат /dashboard/summary на бэкенде.
type DashboardSummary struct {
	TotalTickets    int64            `json:"totalTickets"`
	PreviousTickets int64            `json:"previousTickets"`
	TicketsByStatus map[string]int64 `json:"ticketsByStatus"`
	TotalBookings   int64            `json:"totalBookings"`
	TotalRevenue    decimal.Decimal  `json:"totalRevenue"`
	PreviousRevenue decimal.Decimal  `json:"previousRevenue"`
	AverageRating   float64          `json:"averageRating"`
	TotalReviews    int64            `json:"totalReviews"`
	ActiveTrips     int64            `json:"activeTrips"`
}

type RevenuePoint struct {
	Label   string          `json:"label"`
	Amount  decimal.Decimal `json:"amount"`
	Tickets int64           `json:"tickets"`
}

// RevenueSeries - результат /revenue на бэкенде.
type RevenueSeries struct {
	Points []RevenuePoint `json:"points"`
}
