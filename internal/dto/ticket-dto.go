package dto

import (
	"net/url"

	"github.com/shopspring/decimal"

	"bus-admin/internal/entities"
)

// TicketSearchDTO - поля свободного поиска на вкладке билетов.
type TicketSearchDTO struct {
	TicketCode    string `json:"ticketCode" validate:"omitempty,ticket_code"`
	PassengerName string `json:"passengerName" validate:"omitempty,max=100"`
	Phone         string `json:"phone" validate:"omitempty,phone"`
	Email         string `json:"email" validate:"omitempty,max=254"`
}

func (d TicketSearchDTO) IsEmpty() bool {
	return blank(d.TicketCode) && blank(d.PassengerName) && blank(d.Phone) && blank(d.Email)
}

func (d TicketSearchDTO) Values() url.Values {
	v := url.Values{}
	setText(v, "ticketCode", d.TicketCode)
	setText(v, "passengerName", d.PassengerName)
	setText(v, "phone", d.Phone)
	setText(v, "email", d.Email)
	return v
}

type TicketFilterDTO struct {
	Status        string           `json:"status" validate:"omitempty,oneof=BOOKED PAID CANCELLED USED"`
	DepartureFrom string           `json:"departureFrom" validate:"omitempty,datetime=2006-01-02"`
	DepartureTo   string           `json:"departureTo" validate:"omitempty,datetime=2006-01-02"`
	MinPrice      *decimal.Decimal `json:"minPrice"`
	MaxPrice      *decimal.Decimal `json:"maxPrice"`
}

func (d TicketFilterDTO) IsEmpty() bool {
	return blank(d.Status) && blank(d.DepartureFrom) && blank(d.DepartureTo) &&
		d.MinPrice == nil && d.MaxPrice == nil
}

func (d TicketFilterDTO) Normalize() TicketFilterDTO {
	d.DepartureFrom, d.DepartureTo = orderedDates(d.DepartureFrom, d.DepartureTo)
	d.MinPrice, d.MaxPrice = orderedDecimals(d.MinPrice, d.MaxPrice)
	return d
}

func (d TicketFilterDTO) Values() url.Values {
	v := url.Values{}
	setText(v, "status", d.Status)
	setText(v, "departureFrom", d.DepartureFrom)
	setText(v, "departureTo", d.DepartureTo)
	setDecimal(v, "minPrice", d.MinPrice)
	setDecimal(v, "maxPrice", d.MaxPrice)
	return v
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type TicketStatsDTO struct {
	Total        int             `json:"total"`
	ByStatus     []StatusCount   `json:"byStatus"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

type TicketViewDTO = ViewSnapshotDTO[entities.Ticket, TicketStatsDTO, entities.TicketDetail]
