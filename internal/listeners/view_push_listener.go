package listeners

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"bus-admin/internal/events"
	"bus-admin/pkg/eventbus"
	"bus-admin/pkg/websocket"
)

// ViewPushListener пересылает снимки видов подписанным websocket-клиентам.
// Обработчики работают параллельно, снимок старше последнего отправленного отбрасывается.
type ViewPushListener struct {
	hub    *websocket.Hub
	logger *zap.Logger

	mu     sync.Mutex
	pushed map[string]uint64
}

func NewViewPushListener(hub *websocket.Hub, logger *zap.Logger) *ViewPushListener {
	return &ViewPushListener{
		hub:    hub,
		logger: logger.Named("view_push"),
		pushed: make(map[string]uint64),
	}
}

func (l *ViewPushListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ViewStateChanged, l.handleStateChanged)
	bus.Subscribe(events.ViewUnmounted, l.handleUnmounted)
	l.logger.Info("ViewPushListener подписан на события", zap.Strings("events", []string{events.ViewStateChanged, events.ViewUnmounted}))
}

func (l *ViewPushListener) handleStateChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.ViewStateChangedEvent)
	if !ok {
		return nil
	}
	if l.hub.Subscribers(e.ViewID) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e.Revision <= l.pushed[e.ViewID] {
		l.logger.Debug("Устаревший снимок отброшен", zap.String("viewID", e.ViewID), zap.Uint64("revision", e.Revision))
		return nil
	}
	l.pushed[e.ViewID] = e.Revision
	return l.hub.Publish(e.ViewID, websocket.TypeViewState, e.Snapshot)
}

func (l *ViewPushListener) handleUnmounted(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.ViewUnmountedEvent)
	if !ok {
		return nil
	}
	l.mu.Lock()
	delete(l.pushed, e.ViewID)
	l.mu.Unlock()
	l.hub.CloseTopic(e.ViewID)
	l.logger.Debug("Представление закрыто для подписчиков", zap.String("viewID", e.ViewID), zap.String("reason", e.Reason))
	return nil
}
