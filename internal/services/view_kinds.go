package services

import (
	"time"

	"bus-admin/internal/dto"
	"bus-admin/internal/entities"
)

const sheetTimeLayout = "02.01.2006 15:04"

var ticketDef = viewDef[entities.Ticket, dto.TicketStatsDTO]{
	kind:  KindTickets,
	stats: ComputeTicketStats,
	email: func(t entities.Ticket) string { return t.Email },
	sheet: "Tickets",
	headers: []string{
		"Ticket", "Booking", "Passenger", "Phone", "Email", "Route", "Departure", "Seat", "Price", "Status",
	},
	row: func(t entities.Ticket) []interface{} {
		return []interface{}{
			t.TicketCode, t.BookingCode, t.PassengerName, t.Phone, t.Email, t.Route.String(),
			sheetTime(t.DepartureTime),
			t.SeatNumber, t.Price.InexactFloat64(), string(t.Status),
		}
	},
}

var reviewDef = viewDef[entities.Review, dto.ReviewStatsDTO]{
	kind:    KindReviews,
	stats:   ComputeReviewStats,
	email:   func(r entities.Review) string { return r.Email },
	sheet:   "Reviews",
	headers: []string{"ID", "Ticket", "Customer", "Phone", "Email", "Rating", "Comment", "Route", "Created"},
	row: func(r entities.Review) []interface{} {
		return []interface{}{
			r.ID, r.TicketCode, r.CustomerName, r.Phone, r.Email, r.Rating, r.Comment, r.Route.String(),
			sheetTime(r.CreatedAt),
		}
	},
}

var bookingDef = viewDef[entities.Booking, dto.BookingStatsDTO]{
	kind:    KindBookings,
	stats:   ComputeBookingStats,
	email:   func(b entities.Booking) string { return b.Email },
	sheet:   "Bookings",
	headers: []string{"Booking", "Customer", "Phone", "Email", "Tickets", "Total", "Status", "Created"},
	row: func(b entities.Booking) []interface{} {
		return []interface{}{
			b.BookingCode, b.CustomerName, b.Phone, b.Email, b.TicketCount, b.TotalAmount.InexactFloat64(),
			string(b.Status), sheetTime(b.CreatedAt),
		}
	},
}

func sheetTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(sheetTimeLayout)
}

func newTicketView(id string, owner uint64, src RecordSource[entities.Ticket, entities.TicketDetail], deps viewDeps) View {
	return newListView[entities.Ticket, dto.TicketSearchDTO, dto.TicketFilterDTO](id, owner, src, ticketDef, deps)
}

func newReviewView(id string, owner uint64, src RecordSource[entities.Review, entities.ReviewDetail], deps viewDeps) View {
	return newListView[entities.Review, dto.ReviewSearchDTO, dto.ReviewFilterDTO](id, owner, src, reviewDef, deps)
}

func newBookingView(id string, owner uint64, src RecordSource[entities.Booking, entities.BookingDetail], deps viewDeps) View {
	return newListView[entities.Booking, dto.BookingSearchDTO, dto.BookingFilterDTO](id, owner, src, bookingDef, deps)
}
