// Package email отправляет письма через внешнего провайдера.
package email

import (
	"context"
	"time"
)

type SendRequest struct {
	To      []string
	From    string // defaults to the sender's configured address
	Subject string
	HTML    string
	ReplyTo string
}

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

type Sender interface {
	Name() string
	Send(ctx context.Context, req SendRequest) (SendResult, error)
	// SendBatch возвращает результаты в порядке запросов.
	SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error)
}
