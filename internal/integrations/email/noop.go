package email

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// NoopSender пишет письма в лог вместо отправки.
type NoopSender struct {
	logger *zap.Logger
}

func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger.Named("noop_email")}
}

func (s *NoopSender) Name() string { return "noop" }

func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	s.logger.Info("Письмо не отправлено (noop)", zap.Strings("to", req.To), zap.String("subject", req.Subject))
	return SendResult{MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()), SentAt: time.Now()}, nil
}

func (s *NoopSender) SendBatch(_ context.Context, reqs []SendRequest) ([]SendResult, error) {
	results := make([]SendResult, 0, len(reqs))
	now := time.Now()
	for i, req := range reqs {
		s.logger.Debug("Пакет писем не отправлен (noop)", zap.Int("index", i), zap.Strings("to", req.To))
		results = append(results, SendResult{MessageID: fmt.Sprintf("noop-batch-%d-%d", now.UnixNano(), i), SentAt: now})
	}
	return results, nil
}
