package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"bus-admin/internal/entities"
)

func TestComputeTicketStats(t *testing.T) {
	empty := ComputeTicketStats(nil)
	assert.Equal(t, 0, empty.Total)
	assert.True(t, empty.AveragePrice.IsZero())
	assert.Len(t, empty.ByStatus, 4)

	items := []entities.Ticket{
		{TicketCode: "T1", Status: entities.TicketPaid, Price: decimal.NewFromInt(100)},
		{TicketCode: "T2", Status: entities.TicketPaid, Price: decimal.NewFromInt(150)},
		{TicketCode: "T3", Status: entities.TicketCancelled, Price: decimal.NewFromInt(50)},
	}
	stats := ComputeTicketStats(items)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, "300", stats.TotalValue.String())
	assert.Equal(t, "100", stats.AveragePrice.String())
	assert.Equal(t, 0, stats.ByStatus[0].Count) // BOOKED
	assert.Equal(t, 2, stats.ByStatus[1].Count) // PAID
	assert.Equal(t, 1, stats.ByStatus[2].Count) // CANCELLED

	assert.Equal(t, stats, ComputeTicketStats(items), "pure")
}

func TestComputeReviewStats(t *testing.T) {
	empty := ComputeReviewStats([]entities.Review{})
	assert.Equal(t, 0.0, empty.AverageRating)
	assert.Len(t, empty.ByRating, 5)

	stats := ComputeReviewStats([]entities.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, 5, stats.ByRating[0].Rating)
	assert.Equal(t, 1, stats.ByRating[0].Count)
	assert.Equal(t, 2, stats.ByRating[1].Count)
	assert.Equal(t, 0, stats.ByRating[4].Count)
}

func TestComputeBookingStats(t *testing.T) {
	stats := ComputeBookingStats([]entities.Booking{
		{Status: entities.BookingConfirmed, TotalAmount: decimal.RequireFromString("10.50")},
		{Status: entities.BookingRefunded, TotalAmount: decimal.RequireFromString("4.25")},
	})
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, "14.75", stats.TotalAmount.String())
	assert.Equal(t, 1, stats.ByStatus[1].Count)
	assert.Equal(t, 1, stats.ByStatus[3].Count)
}
