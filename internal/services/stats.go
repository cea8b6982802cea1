package services

import (
	"math"

	"github.com/shopspring/decimal"

	"bus-admin/internal/dto"
	"bus-admin/internal/entities"
)

// Статистика - чистые функции от загруженной страницы, пересчитывается в каждом снимке.

func ComputeTicketStats(items []entities.Ticket) dto.TicketStatsDTO {
	counts := make(map[entities.TicketStatus]int, len(entities.TicketStatuses))
	total := decimal.Zero
	for _, t := range items {
		counts[t.Status]++
		total = total.Add(t.Price)
	}

	stats := dto.TicketStatsDTO{
		Total:        len(items),
		ByStatus:     make([]dto.StatusCount, 0, len(entities.TicketStatuses)),
		TotalValue:   total,
		AveragePrice: decimal.Zero,
	}
	for _, s := range entities.TicketStatuses {
		stats.ByStatus = append(stats.ByStatus, dto.StatusCount{Status: string(s), Count: counts[s]})
	}
	if len(items) > 0 {
		stats.AveragePrice = total.Div(decimal.NewFromInt(int64(len(items)))).Round(2)
	}
	return stats
}

func ComputeReviewStats(items []entities.Review) dto.ReviewStatsDTO {
	stats := dto.ReviewStatsDTO{
		Total:    len(items),
		ByRating: make([]dto.RatingCount, 0, entities.MaxRating),
	}
	counts := make([]int, entities.MaxRating+1)
	sum := 0
	for _, r := range items {
		if r.Rating >= entities.MinRating && r.Rating <= entities.MaxRating {
			counts[r.Rating]++
		}
		sum += r.Rating
	}
	for rating := entities.MaxRating; rating >= entities.MinRating; rating-- {
		stats.ByRating = append(stats.ByRating, dto.RatingCount{Rating: rating, Count: counts[rating]})
	}
	if len(items) > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(len(items))*10) / 10
	}
	return stats
}

func ComputeBookingStats(items []entities.Booking) dto.BookingStatsDTO {
	counts := make(map[entities.BookingStatus]int, len(entities.BookingStatuses))
	total := decimal.Zero
	for _, b := range items {
		counts[b.Status]++
		total = total.Add(b.TotalAmount)
	}

	stats := dto.BookingStatsDTO{
		Total:       len(items),
		ByStatus:    make([]dto.StatusCount, 0, len(entities.BookingStatuses)),
		TotalAmount: total,
	}
	for _, s := range entities.BookingStatuses {
		stats.ByStatus = append(stats.ByStatus, dto.StatusCount{Status: string(s), Count: counts[s]})
	}
	return stats
}
