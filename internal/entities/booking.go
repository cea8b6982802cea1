package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingRefunded  BookingStatus = "REFUNDED"
)

var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingRefunded}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Booking struct {
	BookingCode  string          `json:"bookingCode"`
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	TicketCount  int             `json:"ticketCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       BookingStatus   `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type BookingDetail struct {
	Booking
	Tickets       []Ticket `json:"tickets"`
	PaymentMethod string   `json:"paymentMethod"`
}
