package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bus-admin/internal/entities"
	"bus-admin/internal/events"
	"bus-admin/pkg/config"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/eventbus"
	"bus-admin/pkg/metrics"
	"bus-admin/pkg/utils"
)

type ViewServiceInterface interface {
	Mount(ctx context.Context, kind string) (View, error)
	Get(ctx context.Context, id string) (View, error)
	Unmount(ctx context.Context, id string) error
	// Run удаляет простаивающие виды, пока ctx не завершён.
	Run(ctx context.Context)
	Close()
}

// ViewSources - коллекции бэкенда, из которых читают виды.
type ViewSources struct {
	Tickets  RecordSource[entities.Ticket, entities.TicketDetail]
	Reviews  RecordSource[entities.Review, entities.ReviewDetail]
	Bookings RecordSource[entities.Booking, entities.BookingDetail]
}

type ViewService struct {
	sources ViewSources
	cfg     config.ViewConfig
	bus     *eventbus.Bus
	logger  *zap.Logger
	now     func() time.Time
	// watchers возвращает число подписок на вид; у наблюдаемых видов нет простоя.
	watchers func(viewID string) int

	mu    sync.Mutex
	views map[string]View
}

func NewViewService(sources ViewSources, cfg config.ViewConfig, bus *eventbus.Bus, logger *zap.Logger) *ViewService {
	return &ViewService{
		sources: sources,
		cfg:     cfg,
		bus:     bus,
		logger:  logger.Named("views"),
		now:     time.Now,
		views:   make(map[string]View),
	}
}

// SetWatchers задаёт счётчик подписок, который использует очистка простаивающих видов.
func (s *ViewService) SetWatchers(watchers func(viewID string) int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = watchers
}

// Mount создаёт вид kind, принадлежащий текущему пользователю.
func (s *ViewService) Mount(ctx context.Context, kind string) (View, error) {
	owner, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	deps := viewDeps{
		pageSize: s.cfg.PageSize,
		lang:     utils.GetLangFromCtx(ctx),
		bus:      s.bus,
		logger:   s.logger,
	}
	id := uuid.NewString()

	var view View
	switch kind {
	case KindTickets:
		view = newTicketView(id, owner, s.sources.Tickets, deps)
	case KindReviews:
		view = newReviewView(id, owner, s.sources.Reviews, deps)
	case KindBookings:
		view = newBookingView(id, owner, s.sources.Bookings, deps)
	default:
		return nil, apperrors.ErrUnknownViewKind
	}

	s.mu.Lock()
	s.views[id] = view
	s.mu.Unlock()

	metrics.MountedViews.WithLabelValues(kind).Inc()
	s.logger.Info("Представление создано", zap.String("viewID", id), zap.String("kind", kind), zap.Uint64("owner", owner))
	return view, nil
}

// Get возвращает вид только пользователю, который его открыл.
func (s *ViewService) Get(ctx context.Context, id string) (View, error) {
	owner, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	view, ok := s.views[id]
	s.mu.Unlock()
	if !ok || view.OwnerID() != owner {
		return nil, apperrors.ErrViewNotFound
	}
	return view, nil
}

func (s *ViewService) Unmount(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	s.remove(id, "unmount")
	return nil
}

func (s *ViewService) remove(id, reason string) {
	s.mu.Lock()
	view, ok := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	view.Close()
	metrics.MountedViews.WithLabelValues(view.Kind()).Dec()
	if s.bus != nil {
		s.bus.Publish(context.Background(), events.ViewUnmountedEvent{ViewID: id, Kind: view.Kind(), Reason: reason})
	}
	s.logger.Info("Представление закрыто", zap.String("viewID", id), zap.String("reason", reason))
}

func (s *ViewService) Run(ctx context.Context) {
	interval := s.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep закрывает виды, простаивающие дольше настроенного TTL.
func (s *ViewService) sweep() {
	if s.cfg.IdleTTL <= 0 {
		return
	}
	cutoff := s.now().Add(-s.cfg.IdleTTL)

	var idle []string
	s.mu.Lock()
	for id, view := range s.views {
		if !view.LastUsed().Before(cutoff) {
			continue
		}
		if s.watchers != nil && s.watchers(id) > 0 {
			continue
		}
		idle = append(idle, id)
	}
	s.mu.Unlock()

	for _, id := range idle {
		s.remove(id, "idle")
	}
}

// Close закрывает все виды.
func (s *ViewService) Close() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.views))
	for id := range s.views {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.remove(id, "shutdown")
	}
}
