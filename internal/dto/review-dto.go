package dto

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"

	"bus-admin/internal/entities"
)

type ReviewSearchDTO struct {
	CustomerName string `json:"customerName" validate:"omitempty,max=100"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	TicketCode   string `json:"ticketCode" validate:"omitempty,ticket_code"`
}

func (d ReviewSearchDTO) IsEmpty() bool {
	return blank(d.CustomerName) && blank(d.Phone) && blank(d.TicketCode)
}

func (d ReviewSearchDTO) Values() url.Values {
	v := url.Values{}
	setText(v, "customerName", d.CustomerName)
	setText(v, "phone", d.Phone)
	setText(v, "ticketCode", d.TicketCode)
	return v
}

// ReviewFilterDTO - вкладка фильтра по рейтингу и датам. CustomerName бэкенд не понимает,
// по нему сужается уже полученная страница.
type ReviewFilterDTO struct {
	MinRating    *int   `json:"minRating" validate:"omitempty,min=1,max=5"`
	MaxRating    *int   `json:"maxRating" validate:"omitempty,min=1,max=5"`
	From         string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To           string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	CustomerName string `json:"customerName" validate:"omitempty,max=100"`
}

func (d ReviewFilterDTO) IsEmpty() bool {
	return d.MinRating == nil && d.MaxRating == nil && blank(d.From) && blank(d.To)
}

func (d ReviewFilterDTO) Normalize() ReviewFilterDTO {
	d.MinRating, d.MaxRating = orderedInts(d.MinRating, d.MaxRating)
	d.From, d.To = orderedDates(d.From, d.To)
	return d
}

func (d ReviewFilterDTO) Values() url.Values {
	v := url.Values{}
	setInt(v, "minRating", d.MinRating)
	setInt(v, "maxRating", d.MaxRating)
	setText(v, "from", d.From)
	setText(v, "to", d.To)
	return v
}

// Refine оставляет отзывы, где имя клиента содержит CustomerName без учёта регистра.
func (d ReviewFilterDTO) Refine(items []entities.Review) []entities.Review {
	needle := strings.TrimSpace(d.CustomerName)
	if needle == "" {
		return items
	}
	fold := cases.Fold()
	needle = fold.String(needle)

	out := make([]entities.Review, 0, len(items))
	for _, item := range items {
		if strings.Contains(fold.String(item.CustomerName), needle) {
			out = append(out, item)
		}
	}
	return out
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type ReviewStatsDTO struct {
	Total         int           `json:"total"`
	ByRating      []RatingCount `json:"byRating"`
	AverageRating float64       `json:"averageRating"`
}

type ReviewViewDTO = ViewSnapshotDTO[entities.Review, ReviewStatsDTO, entities.ReviewDetail]
