package email

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// BatchLimit - максимальный размер пакета в Resend API.
const BatchLimit = 100

type ResendSender struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

func NewResendSender(apiKey, from string, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger.Named("resend"),
	}
}

func (s *ResendSender) Name() string { return "resend" }

func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.params(req))
	if err != nil {
		s.logger.Error("Ошибка отправки через Resend", zap.Strings("to", req.To), zap.Error(err))
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}
	return SendResult{MessageID: sent.Id, SentAt: time.Now()}, nil
}

// SendBatch отправляет reqs через пакетный endpoint, по BatchLimit за вызов. При ошибке
// возвращаются и результаты уже принятых пакетов.
func (s *ResendSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))
	for start := 0; start < len(reqs); start += BatchLimit {
		end := min(start+BatchLimit, len(reqs))
		chunk := reqs[start:end]

		params := make([]*resend.SendEmailRequest, 0, len(chunk))
		for _, req := range chunk {
			params = append(params, s.params(req))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, params)
		if err != nil {
			s.logger.Error("Ошибка пакетной отправки Resend", zap.Int("batch_size", len(chunk)), zap.Error(err))
			return results, fmt.Errorf("resend batch send failed: %w", err)
		}
		for _, item := range resp.Data {
			results = append(results, SendResult{MessageID: item.Id, SentAt: time.Now()})
		}
		s.logger.Debug("Пакет отправлен через Resend", zap.Int("count", len(chunk)), zap.Int("total_sent", len(results)))
	}
	return results, nil
}

func (s *ResendSender) params(req SendRequest) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = s.from
	}
	p := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		p.ReplyTo = req.ReplyTo
	}
	return p
}
