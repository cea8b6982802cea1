package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"bus-admin/internal/detail"
	"bus-admin/internal/dto"
	"bus-admin/internal/events"
	"bus-admin/internal/listquery"
	"bus-admin/pkg/apiclient"
	"bus-admin/pkg/eventbus"
	"bus-admin/pkg/i18n"
)

const (
	KindTickets  = "tickets"
	KindReviews  = "reviews"
	KindBookings = "bookings"
)

// DecodeFunc заполняет target (указатель на критерии) из запроса и валидирует его.
type DecodeFunc func(target interface{}) error

// Sheet - табличное представление текущих строк вида.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// View - один открытый экран списка: контроллер списка, загрузчик деталей и
// статистика по загруженной странице.
type View interface {
	ID() string
	Kind() string
	OwnerID() uint64
	LoadAll(ctx context.Context) error
	Search(ctx context.Context, decode DecodeFunc) error
	Filter(ctx context.Context, decode DecodeFunc) error
	Reset(ctx context.Context) error
	GoToPage(ctx context.Context, page int) error
	OpenDetail(ctx context.Context, key string) error
	CloseDetail()
	Snapshot() interface{}
	Recipients() []string
	Sheet() Sheet
	LastUsed() time.Time
	Close()
}

// RecordSource - коллекция бэкенда с endpoint деталей.
type RecordSource[T any, D any] interface {
	listquery.Source[T]
	Get(ctx context.Context, id string) (*D, error)
}

type viewDef[T any, St any] struct {
	kind    string
	stats   func([]T) St
	email   func(T) string
	sheet   string
	headers []string
	row     func(T) []interface{}
}

type viewDeps struct {
	pageSize int
	lang     language.Tag
	bus      *eventbus.Bus
	logger   *zap.Logger
}

type listView[T any, S listquery.Criteria, F listquery.Criteria, D any, St any] struct {
	id      string
	ownerID uint64
	def     viewDef[T, St]
	ctrl    *listquery.Controller[T, S, F]
	detail  *detail.Fetcher[D]
	bus     *eventbus.Bus

	pubMu    sync.Mutex
	revision uint64
	lastUsed atomic.Int64
}

func newListView[T any, S listquery.Criteria, F listquery.Criteria, D any, St any](
	id string,
	ownerID uint64,
	source RecordSource[T, D],
	def viewDef[T, St],
	deps viewDeps,
) *listView[T, S, F, D, St] {
	v := &listView[T, S, F, D, St]{
		id:      id,
		ownerID: ownerID,
		def:     def,
		bus:     deps.bus,
	}
	describe := describeError(deps.lang)
	logger := deps.logger.With(zap.String("viewID", id))

	v.ctrl = listquery.New[T, S, F](source, listquery.Config[T]{
		Name:              def.kind,
		PageSize:          deps.pageSize,
		OnChange:          func(listquery.State[T]) { v.publish() },
		Describe:          describe,
		NoCriteriaMessage: i18n.T(deps.lang, i18n.MsgNoCriteria),
	}, logger)
	v.detail = detail.NewFetcher[D](def.kind+"_detail", source.Get, describe, logger)
	v.touch()
	return v
}

// describeError берёт сообщение бэкенда, а если его нет - общий текст.
func describeError(lang language.Tag) func(error) string {
	return func(err error) string {
		if msg := apiclient.UserMessage(err); msg != "" {
			return msg
		}
		return i18n.T(lang, i18n.MsgBackendUnavailable)
	}
}

func (v *listView[T, S, F, D, St]) ID() string      { return v.id }
func (v *listView[T, S, F, D, St]) Kind() string    { return v.def.kind }
func (v *listView[T, S, F, D, St]) OwnerID() uint64 { return v.ownerID }

func (v *listView[T, S, F, D, St]) LoadAll(ctx context.Context) error {
	v.touch()
	return v.ctrl.LoadAll(ctx)
}

func (v *listView[T, S, F, D, St]) Search(ctx context.Context, decode DecodeFunc) error {
	v.touch()
	var criteria S
	if err := decode(&criteria); err != nil {
		return err
	}
	return v.ctrl.Search(ctx, criteria)
}

func (v *listView[T, S, F, D, St]) Filter(ctx context.Context, decode DecodeFunc) error {
	v.touch()
	var criteria F
	if err := decode(&criteria); err != nil {
		return err
	}
	return v.ctrl.Filter(ctx, criteria)
}

func (v *listView[T, S, F, D, St]) Reset(ctx context.Context) error {
	v.touch()
	return v.ctrl.Reset(ctx)
}

func (v *listView[T, S, F, D, St]) GoToPage(ctx context.Context, page int) error {
	v.touch()
	return v.ctrl.GoToPage(ctx, page)
}

func (v *listView[T, S, F, D, St]) OpenDetail(ctx context.Context, key string) error {
	v.touch()
	_, err := v.detail.Open(ctx, key)
	if !errors.Is(err, detail.ErrSuperseded) {
		v.publish()
	}
	return err
}

func (v *listView[T, S, F, D, St]) CloseDetail() {
	v.touch()
	v.detail.Close()
	v.publish()
}

func (v *listView[T, S, F, D, St]) Snapshot() interface{} {
	v.pubMu.Lock()
	defer v.pubMu.Unlock()
	return v.snapshotLocked()
}

func (v *listView[T, S, F, D, St]) snapshotLocked() dto.ViewSnapshotDTO[T, St, D] {
	state := v.ctrl.Snapshot()
	return dto.ViewSnapshotDTO[T, St, D]{
		ViewID:   v.id,
		Kind:     v.def.kind,
		Revision: v.revision,
		State:    state,
		Stats:    v.def.stats(state.Items),
		Detail:   v.detail.Snapshot(),
	}
}

// publish отправляет текущий снимок. Снимок берётся и нумеруется под одной блокировкой,
// поэтому больший revision всегда соответствует более позднему состоянию.
func (v *listView[T, S, F, D, St]) publish() {
	if v.bus == nil {
		return
	}
	v.pubMu.Lock()
	v.revision++
	snapshot := v.snapshotLocked()
	v.pubMu.Unlock()

	v.bus.Publish(context.Background(), events.ViewStateChangedEvent{
		ViewID:   v.id,
		Kind:     v.def.kind,
		Revision: snapshot.Revision,
		Snapshot: snapshot,
	})
}

// Recipients возвращает уникальные email загруженных строк.
func (v *listView[T, S, F, D, St]) Recipients() []string {
	state := v.ctrl.Snapshot()
	addrs := make([]string, 0, len(state.Items))
	for _, item := range state.Items {
		addrs = append(addrs, v.def.email(item))
	}
	return dedupeAddresses(addrs)
}

func (v *listView[T, S, F, D, St]) Sheet() Sheet {
	state := v.ctrl.Snapshot()
	rows := make([][]interface{}, 0, len(state.Items))
	for _, item := range state.Items {
		rows = append(rows, v.def.row(item))
	}
	return Sheet{Name: v.def.sheet, Headers: v.def.headers, Rows: rows}
}

func (v *listView[T, S, F, D, St]) touch() {
	v.lastUsed.Store(time.Now().UnixNano())
}

func (v *listView[T, S, F, D, St]) LastUsed() time.Time {
	return time.Unix(0, v.lastUsed.Load())
}

func (v *listView[T, S, F, D, St]) Close() {
	v.ctrl.Close()
	v.detail.Close()
}
