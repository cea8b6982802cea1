package listeners

import (
	"context"

	"go.uber.org/zap"

	"bus-admin/internal/events"
	"bus-admin/pkg/eventbus"
)

// EmailAuditListener пишет одну строку аудита на каждую рассылку.
type EmailAuditListener struct {
	logger *zap.Logger
}

func NewEmailAuditListener(logger *zap.Logger) *EmailAuditListener {
	return &EmailAuditListener{logger: logger.Named("email_audit")}
}

func (l *EmailAuditListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.EmailBatchSent, l.handle)
}

func (l *EmailAuditListener) handle(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.EmailBatchSentEvent)
	if !ok {
		return nil
	}
	l.logger.Info("Массовая рассылка отправлена",
		zap.Uint64("userID", e.UserID),
		zap.String("provider", e.Provider),
		zap.String("subject", e.Subject),
		zap.Int("requested", e.Requested),
		zap.Int("sent", e.Sent),
		zap.Int("failed", e.Failed),
	)
	return nil
}
