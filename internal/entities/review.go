package entities

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID           int64     `json:"id"`
	TicketCode   string    `json:"ticketCode"`
	CustomerName string    `json:"customerName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Route        Route     `json:"route"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewReply struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewDetail struct {
	Review
	Trip  Trip         `json:"trip"`
	Reply *ReviewReply `json:"reply,omitempty"`
}
