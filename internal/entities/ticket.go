package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketBooked    TicketStatus = "BOOKED"
	TicketPaid      TicketStatus = "PAID"
	TicketCancelled TicketStatus = "CANCELLED"
	TicketUsed      TicketStatus = "USED"
)

// TicketStatuses - порядок статусов билета для отображения.
var TicketStatuses = []TicketStatus{TicketBooked, TicketPaid, TicketCancelled, TicketUsed}

func (s TicketStatus) Valid() bool {
	for _, known := range TicketStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Route struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r Route) String() string {
	if r.From == "" && r.To == "" {
		return ""
	}
	return r.From + " → " + r.To
}

type Ticket struct {
	TicketCode    string          `json:"ticketCode"`
	BookingCode   string          `json:"bookingCode"`
	PassengerName string          `json:"passengerName"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Route         Route           `json:"route"`
	DepartureTime time.Time       `json:"departureTime"`
	SeatNumber    string          `json:"seatNumber"`
	Price         decimal.Decimal `json:"price"`
	Status        TicketStatus    `json:"status"`
}

type Trip struct {
	ID            string    `json:"id"`
	Route         Route     `json:"route"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	BusPlate      string    `json:"busPlate"`
	DriverName    string    `json:"driverName"`
}

type TicketDetail struct {
	Ticket
	Trip          Trip       `json:"trip"`
	PaymentMethod string     `json:"paymentMethod"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CheckedInAt   *time.Time `json:"checkedInAt,omitempty"`
}
