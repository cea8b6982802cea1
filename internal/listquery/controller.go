// Package listquery - контроллер списков для видов билетов, отзывов и
// бронирований: актуален один запрос, устаревшие ответы отбрасываются.
package listquery

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"bus-admin/pkg/apiclient"
	"bus-admin/pkg/metrics"
)

var (
	ErrNoCriteria = errors.New("at least one search criterion is required")
	ErrSuperseded = errors.New("request superseded by a newer one")
	ErrClosed     = errors.New("controller is closed")
)

const DefaultPageSize = 20

type Config[T any] struct {
	Name     string
	PageSize int
	// OnChange получает копию состояния после каждого изменения.
	OnChange func(State[T])
	// Describe превращает ошибку запроса в текст для State.Error.
	Describe func(error) string
	// NoCriteriaMessage пишется в State.Warning, если у поиска нет критериев.
	NoCriteriaMessage string
}

type Controller[T any, S Criteria, F Criteria] struct {
	source Source[T]
	cfg    Config[T]
	logger *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
	state  State[T]
	last   *query[T]
}

func New[T any, S Criteria, F Criteria](source Source[T], cfg Config[T], logger *zap.Logger) *Controller[T, S, F] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Name == "" {
		cfg.Name = "list"
	}
	if cfg.NoCriteriaMessage == "" {
		cfg.NoCriteriaMessage = ErrNoCriteria.Error()
	}
	return &Controller[T, S, F]{
		source: source,
		cfg:    cfg,
		logger: logger.Named(cfg.Name),
		state:  State[T]{Items: []T{}},
	}
}

// LoadAll загружает первую страницу без фильтров. Критерии не нужны.
func (c *Controller[T, S, F]) LoadAll(ctx context.Context) error {
	return c.run(ctx, query[T]{op: opList, values: url.Values{}, page: 1})
}

// Search отклоняет пустые критерии локально, запрос в этом случае не отправляется.
func (c *Controller[T, S, F]) Search(ctx context.Context, criteria S) error {
	if criteria.IsEmpty() {
		c.warnNoCriteria()
		return ErrNoCriteria
	}
	criteria = normalize(criteria)
	return c.run(ctx, query[T]{op: opSearch, values: criteria.Values(), page: 1})
}

// Filter работает как Search. Границы сортируются перед отправкой, а локальное
// уточнение из критериев применяется только к полученной странице.
func (c *Controller[T, S, F]) Filter(ctx context.Context, criteria F) error {
	if criteria.IsEmpty() {
		c.warnNoCriteria()
		return ErrNoCriteria
	}
	criteria = normalize(criteria)
	return c.run(ctx, query[T]{
		op:     opFilter,
		values: criteria.Values(),
		refine: refinerFor[T](criteria),
		page:   1,
	})
}

// Reset сбрасывает флаг поиска и перезагружает коллекцию без фильтров.
func (c *Controller[T, S, F]) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.state.HasSearched = false
	c.state.Warning = ""
	snapshot := c.touchLocked()
	c.mu.Unlock()
	c.notify(snapshot)

	return c.LoadAll(ctx)
}

// GoToPage повторяет последнюю успешную операцию для другой страницы.
func (c *Controller[T, S, F]) GoToPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	q := query[T]{op: opList, values: url.Values{}}
	if c.last != nil {
		q = *c.last
	}
	c.mu.Unlock()

	q.page = page
	return c.run(ctx, q)
}

// Snapshot возвращает копию текущего состояния.
func (c *Controller[T, S, F]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Close отменяет текущий запрос; его результат отбрасывается.
func (c *Controller[T, S, F]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller[T, S, F]) run(ctx context.Context, q query[T]) error {
	values := make(url.Values, len(q.values)+2)
	for key, vals := range q.values {
		values[key] = append([]string(nil), vals...)
	}
	values.Set("page", strconv.Itoa(q.page))
	values.Set("pageSize", strconv.Itoa(c.cfg.PageSize))

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel
	c.state.Loading = true
	c.state.Warning = ""
	snapshot := c.touchLocked()
	c.mu.Unlock()
	c.notify(snapshot)

	page, err := c.fetch(reqCtx, q.op, values)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		metrics.StaleResponsesTotal.WithLabelValues(c.cfg.Name).Inc()
		c.logger.Debug("Устаревший ответ отброшен",
			zap.String("op", string(q.op)),
			zap.Uint64("seq", seq),
		)
		return ErrSuperseded
	}
	c.cancel = nil
	c.state.Loading = false

	if err != nil {
		if ctx.Err() != nil {
			// Вызывающий ушёл, вид остаётся как был.
			snapshot = c.touchLocked()
			c.mu.Unlock()
			c.notify(snapshot)
			return ctx.Err()
		}
		c.state.Error = c.describe(err)
		snapshot = c.touchLocked()
		c.mu.Unlock()

		c.logger.Warn("Ошибка загрузки списка",
			zap.String("op", string(q.op)),
			zap.Int("page", q.page),
			zap.Error(err),
		)
		c.notify(snapshot)
		return err
	}

	items := page.Items
	if q.refine != nil {
		items = q.refine(items)
	}
	if items == nil {
		items = []T{}
	}
	c.state.Items = items
	c.state.Pagination = page.Pagination
	c.state.HasSearched = q.op != opList
	c.state.Error = ""
	c.state.Version = seq
	c.last = &q
	snapshot = c.touchLocked()
	c.mu.Unlock()

	c.logger.Debug("Ответ списка применён",
		zap.String("op", string(q.op)),
		zap.Int("page", q.page),
		zap.Int("items", len(items)),
		zap.Uint64("seq", seq),
	)
	c.notify(snapshot)
	return nil
}

func (c *Controller[T, S, F]) fetch(ctx context.Context, op operation, values url.Values) (*apiclient.Page[T], error) {
	switch op {
	case opSearch:
		return c.source.Search(ctx, values)
	case opFilter:
		return c.source.Filter(ctx, values)
	default:
		return c.source.List(ctx, values)
	}
}

func (c *Controller[T, S, F]) warnNoCriteria() {
	c.mu.Lock()
	c.state.Warning = c.cfg.NoCriteriaMessage
	snapshot := c.touchLocked()
	c.mu.Unlock()
	c.notify(snapshot)
}

func (c *Controller[T, S, F]) describe(err error) string {
	if c.cfg.Describe != nil {
		return c.cfg.Describe(err)
	}
	return err.Error()
}

func (c *Controller[T, S, F]) touchLocked() State[T] {
	c.state.Revision++
	return c.state.clone()
}

func (c *Controller[T, S, F]) notify(snapshot State[T]) {
	if c.cfg.OnChange != nil {
		c.cfg.OnChange(snapshot)
	}
}
