package dto

import (
	"net/url"

	"github.com/shopspring/decimal"

	"bus-admin/internal/entities"
)

type BookingSearchDTO struct {
	BookingCode  string `json:"bookingCode" validate:"omitempty,ticket_code"`
	CustomerName string `json:"customerName" validate:"omitempty,max=100"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	Email        string `json:"email" validate:"omitempty,max=254"`
}

func (d BookingSearchDTO) IsEmpty() bool {
	return blank(d.BookingCode) && blank(d.CustomerName) && blank(d.Phone) && blank(d.Email)
}

func (d BookingSearchDTO) Values() url.Values {
	v := url.Values{}
	setText(v, "bookingCode", d.BookingCode)
	setText(v, "customerName", d.CustomerName)
	setText(v, "phone", d.Phone)
	setText(v, "email", d.Email)
	return v
}

type BookingFilterDTO struct {
	Status string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED REFUNDED"`
	From   string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

func (d BookingFilterDTO) IsEmpty() bool {
	return blank(d.Status) && blank(d.From) && blank(d.To)
}

func (d BookingFilterDTO) Normalize() BookingFilterDTO {
	d.From, d.To = orderedDates(d.From, d.To)
	return d
}

func (d BookingFilterDTO) Values() url.Values {
	v := url.Values{}
	setText(v, "status", d.Status)
	setText(v, "from", d.From)
	setText(v, "to", d.To)
	return v
}

type BookingStatsDTO struct {
	Total       int             `json:"total"`
	ByStatus    []StatusCount   `json:"byStatus"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type BookingViewDTO = ViewSnapshotDTO[entities.Booking, BookingStatsDTO, entities.BookingDetail]
