package integrations

import (
	"go.uber.org/zap"

	"bus-admin/internal/integrations/email"
	"bus-admin/pkg/config"
)

// NewEmailRegistry регистрирует все известные почтовые провайдеры и включает
// настроенный. Resend регистрируется только при наличии API-ключа.
func NewEmailRegistry(cfg config.EmailConfig, logger *zap.Logger) (RegistryInterface, error) {
	registry := NewRegistry()
	if err := registry.Register(email.NewNoopSender(logger)); err != nil {
		return nil, err
	}
	if cfg.ResendAPIKey != "" {
		if err := registry.Register(email.NewResendSender(cfg.ResendAPIKey, cfg.From, logger)); err != nil {
			return nil, err
		}
	}
	if err := registry.SetActive(cfg.Provider); err != nil {
		logger.Warn("Настроенный почтовый провайдер недоступен, используется noop",
			zap.String("provider", cfg.Provider), zap.Error(err))
		if err := registry.SetActive("noop"); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
