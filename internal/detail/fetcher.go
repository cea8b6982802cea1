// Package detail загружает расширенную запись по выбранной строке. Отражается только
// последний выбор: новый Open отменяет предыдущий.
package detail

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"bus-admin/pkg/metrics"
)

var ErrSuperseded = errors.New("detail request superseded by a newer selection")

// LoadFunc загружает одну расширенную запись по идентификатору.
type LoadFunc[D any] func(ctx context.Context, id string) (*D, error)

type State[D any] struct {
	ID      string `json:"id,omitempty"`
	Record  *D     `json:"record,omitempty"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type Fetcher[D any] struct {
	load     LoadFunc[D]
	name     string
	describe func(error) string
	logger   *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  State[D]
}

func NewFetcher[D any](name string, load LoadFunc[D], describe func(error) string, logger *zap.Logger) *Fetcher[D] {
	if describe == nil {
		describe = func(err error) string { return err.Error() }
	}
	return &Fetcher[D]{
		load:     load,
		name:     name,
		describe: describe,
		logger:   logger.Named(name),
	}
}

// Open выбирает id и загружает запись. Возвращает ErrSuperseded, если до окончания загрузки
// был другой Open или Close; более новый выбор не трогается.
func (f *Fetcher[D]) Open(ctx context.Context, id string) (*D, error) {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	if f.cancel != nil {
		f.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	f.cancel = cancel
	f.state = State[D]{ID: id, Loading: true}
	f.mu.Unlock()

	record, err := f.load(reqCtx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		metrics.StaleResponsesTotal.WithLabelValues(f.name).Inc()
		f.logger.Debug("Устаревший ответ деталей отброшен", zap.String("id", id))
		return nil, ErrSuperseded
	}
	f.cancel = nil
	f.state.Loading = false
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.state.Error = f.describe(err)
		f.logger.Warn("Ошибка загрузки деталей", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	f.state.Record = record
	return record, nil
}

// Close сбрасывает выбор и отбрасывает незавершённую загрузку.
func (f *Fetcher[D]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.state = State[D]{}
}

func (f *Fetcher[D]) Snapshot() State[D] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
