package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bus-admin/internal/dto"
	"bus-admin/internal/events"
	"bus-admin/internal/integrations"
	"bus-admin/internal/integrations/email"
	"bus-admin/internal/repositories"
	"bus-admin/pkg/config"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/eventbus"
	"bus-admin/pkg/i18n"
	"bus-admin/pkg/metrics"
	"bus-admin/pkg/utils"
)

const rateWindow = time.Hour

// Сырой HTML в markdown экранируется, WithUnsafe не задан.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type NotificationServiceInterface interface {
	SendBulkEmail(ctx context.Context, req dto.BulkEmailDTO) (*dto.BulkEmailResultDTO, error)
}

type NotificationService struct {
	senders integrations.RegistryInterface
	views   ViewServiceInterface
	cache   repositories.CacheRepositoryInterface
	bus     *eventbus.Bus
	cfg     config.EmailConfig
	logger  *zap.Logger
}

func NewNotificationService(
	senders integrations.RegistryInterface,
	views ViewServiceInterface,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	cfg config.EmailConfig,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{
		senders: senders,
		views:   views,
		cache:   cache,
		bus:     bus,
		cfg:     cfg,
		logger:  logger.Named("notifications"),
	}
}

// SendBulkEmail рендерит markdown один раз и отправляет по письму каждому получателю.
// Получатели - явный список плюс строки указанного вида.
func (s *NotificationService) SendBulkEmail(ctx context.Context, req dto.BulkEmailDTO) (*dto.BulkEmailResultDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	lang := utils.GetLangFromCtx(ctx)

	candidates := append([]string(nil), req.Recipients...)
	if req.ViewID != "" {
		view, err := s.views.Get(ctx, req.ViewID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, view.Recipients()...)
	}
	recipients := dedupeAddresses(candidates)
	if len(recipients) == 0 {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, i18n.T(lang, i18n.MsgNoRecipients), apperrors.ErrNoRecipients, nil)
	}

	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(req.Body), &body); err != nil {
		return nil, fmt.Errorf("render email body: %w", err)
	}

	sender, err := s.senders.GetActive()
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, i18n.T(lang, i18n.MsgInternal), err, nil)
	}

	// В лимит идут только запросы, дошедшие до отправки.
	if err := s.checkRate(ctx, userID); err != nil {
		return nil, apperrors.NewHttpError(http.StatusTooManyRequests, i18n.T(lang, i18n.MsgRateLimited), err, nil)
	}

	reqs := make([]email.SendRequest, 0, len(recipients))
	for _, to := range recipients {
		reqs = append(reqs, email.SendRequest{
			To:      []string{to},
			Subject: req.Subject,
			HTML:    body.String(),
			ReplyTo: req.ReplyTo,
		})
	}

	result := s.deliver(ctx, sender, reqs)

	metrics.EmailsSentTotal.WithLabelValues(sender.Name(), "sent").Add(float64(result.Sent))
	metrics.EmailsSentTotal.WithLabelValues(sender.Name(), "failed").Add(float64(result.Failed))
	if s.bus != nil {
		s.bus.Publish(ctx, events.EmailBatchSentEvent{
			UserID:    userID,
			Provider:  sender.Name(),
			Subject:   req.Subject,
			Requested: result.Requested,
			Sent:      result.Sent,
			Failed:    result.Failed,
		})
	}
	return result, nil
}

// deliver отправляет reqs пакетами провайдера, не больше cfg.Concurrency одновременно.
// Ошибка пакета учитывается и не останавливает остальные.
func (s *NotificationService) deliver(ctx context.Context, sender email.Sender, reqs []email.SendRequest) *dto.BulkEmailResultDTO {
	result := &dto.BulkEmailResultDTO{Requested: len(reqs)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.Concurrency, 1))

	for start := 0; start < len(reqs); start += email.BatchLimit {
		chunk := reqs[start:min(start+email.BatchLimit, len(reqs))]
		g.Go(func() error {
			sent, err := sender.SendBatch(gctx, chunk)

			mu.Lock()
			defer mu.Unlock()
			for _, r := range sent {
				result.MessageIDs = append(result.MessageIDs, r.MessageID)
			}
			result.Sent += len(sent)
			if err != nil {
				result.Failed += len(chunk) - len(sent)
				s.logger.Error("Ошибка отправки пакета писем", zap.String("provider", sender.Name()), zap.Int("size", len(chunk)), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return result
}

// checkRate учитывает рассылку в часовом лимите пользователя. При ошибке кеша
// запрос пропускается.
func (s *NotificationService) checkRate(ctx context.Context, userID uint64) error {
	if s.cfg.HourlyLimit <= 0 || s.cache == nil {
		return nil
	}
	n, err := s.cache.IncrWithTTL(ctx, fmt.Sprintf("email:rate:user:%d", userID), rateWindow)
	if err != nil {
		s.logger.Warn("Счётчик лимита рассылок недоступен", zap.Uint64("userID", userID), zap.Error(err))
		return nil
	}
	if n > int64(s.cfg.HourlyLimit) {
		return fmt.Errorf("user %d exceeded %d bulk emails per hour", userID, s.cfg.HourlyLimit)
	}
	return nil
}

// dedupeAddresses обрезает пробелы, убирает пустые адреса и дубли без учёта регистра,
// сохраняя порядок.
func dedupeAddresses(addrs []string) []string {
	seen := make(map[string]bool, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		key := strings.ToLower(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}
