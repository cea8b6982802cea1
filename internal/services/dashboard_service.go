package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"bus-admin/internal/dto"
	"bus-admin/internal/entities"
	"bus-admin/internal/listquery"
	"bus-admin/pkg/apiclient"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/i18n"
	"bus-admin/pkg/types"
	"bus-admin/pkg/utils"
)

const (
	GroupByDay   = "day"
	GroupByMonth = "month"

	latestBookingsCount = 5
	maxDayPoints        = 366
	monthLabelLayout    = "2006-01"
)

// ResultFetcher читает endpoint бэкенда, который не является коллекцией.
type ResultFetcher interface {
	GetResult(ctx context.Context, endpoint, path string, query url.Values, out any) error
}

type DashboardService struct {
	backend  ResultFetcher
	bookings listquery.Source[entities.Booking]
	logger   *zap.Logger
}

func NewDashboardService(backend ResultFetcher, bookings listquery.Source[entities.Booking], logger *zap.Logger) *DashboardService {
	return &DashboardService{backend: backend, bookings: bookings, logger: logger.Named("dashboard")}
}

func (s *DashboardService) GetDashboardStats(ctx context.Context, from, to time.Time) (*dto.DashboardStatsDTO, error) {
	if err := checkRange(from, to, GroupByDay); err != nil {
		return nil, err
	}
	period := periodQuery(from, to)
	lang := utils.GetLangFromCtx(ctx)

	var (
		wg      sync.WaitGroup
		summary entities.DashboardSummary
		revenue entities.RevenueSeries
		latest  *apiclient.Page[entities.Booking]

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() error {
		return s.backend.GetResult(ctx, "dashboard.summary", "/dashboard/summary", period, &summary)
	})
	addTask(func() error {
		q := periodQuery(from, to)
		q.Set("groupBy", GroupByDay)
		return s.backend.GetResult(ctx, "revenue", "/revenue", q, &revenue)
	})
	addTask(func() (err error) {
		latest, err = s.bookings.List(ctx, url.Values{
			"page":     {"1"},
			"pageSize": {fmt.Sprint(latestBookingsCount)},
		})
		return
	})

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Dashboard fetching error", zap.Error(errs[0]), zap.Int("failed", len(errs)))
		return nil, backendError(lang, errs[0])
	}

	kpis := &types.DashboardKPIs{
		TotalTickets:  types.DashboardKPIMetric{Current: float64(summary.TotalTickets), Previous: float64(summary.PreviousTickets)},
		Revenue:       types.DashboardKPIMetric{Current: summary.TotalRevenue.InexactFloat64(), Previous: summary.PreviousRevenue.InexactFloat64()},
		TotalBookings: types.DashboardKPIMetric{Current: float64(summary.TotalBookings)},
		AverageRating: types.DashboardKPIMetric{Current: summary.AverageRating},
		ActiveTrips:   summary.ActiveTrips,
	}
	processTrend(&kpis.TotalTickets, lang)
	processTrend(&kpis.Revenue, lang)
	kpis.TotalTickets.Formatted = fmt.Sprintf("%.0f", kpis.TotalTickets.Current)
	kpis.Revenue.Formatted = summary.TotalRevenue.StringFixed(2)
	kpis.TotalBookings.Formatted = fmt.Sprintf("%.0f", kpis.TotalBookings.Current)
	kpis.AverageRating.Formatted = fmt.Sprintf("%.1f", kpis.AverageRating.Current)

	byStatus := make([]dto.StatusCount, 0, len(entities.TicketStatuses))
	for _, st := range entities.TicketStatuses {
		byStatus = append(byStatus, dto.StatusCount{Status: string(st), Count: int(summary.TicketsByStatus[string(st)])})
	}

	bookings := []entities.Booking{}
	if latest != nil {
		bookings = latest.Items
	}

	return &dto.DashboardStatsDTO{
		Period:          types.Period{From: from.Format(utils.DateLayout), To: to.Format(utils.DateLayout)},
		KPIs:            kpis,
		TicketsByStatus: byStatus,
		Revenue:         fillMissingPoints(revenue.Points, from, to, GroupByDay),
		LatestBookings:  bookings,
	}, nil
}

func (s *DashboardService) GetRevenue(ctx context.Context, from, to time.Time, groupBy string) (*dto.RevenueSeriesDTO, error) {
	if groupBy == "" {
		groupBy = GroupByDay
	}
	if groupBy != GroupByDay && groupBy != GroupByMonth {
		return nil, apperrors.NewInvalidInputError("groupBy must be %q or %q", GroupByDay, GroupByMonth)
	}
	if err := checkRange(from, to, groupBy); err != nil {
		return nil, err
	}

	q := periodQuery(from, to)
	q.Set("groupBy", groupBy)
	var series entities.RevenueSeries
	if err := s.backend.GetResult(ctx, "revenue", "/revenue", q, &series); err != nil {
		s.logger.Warn("Ошибка загрузки выручки", zap.Error(err))
		return nil, backendError(utils.GetLangFromCtx(ctx), err)
	}

	points := fillMissingPoints(series.Points, from, to, groupBy)
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Amount)
	}

	return &dto.RevenueSeriesDTO{
		Period:  types.Period{From: from.Format(utils.DateLayout), To: to.Format(utils.DateLayout)},
		GroupBy: groupBy,
		Points:  points,
		Total:   total.StringFixed(2),
	}, nil
}

func periodQuery(from, to time.Time) url.Values {
	return url.Values{
		"from": {from.Format(utils.DateLayout)},
		"to":   {to.Format(utils.DateLayout)},
	}
}

func checkRange(from, to time.Time, groupBy string) error {
	if groupBy == GroupByDay && int(to.Sub(from).Hours()/24)+1 > maxDayPoints {
		return apperrors.NewInvalidInputError("daily series are limited to %d days", maxDayPoints)
	}
	return nil
}

// backendError превращает ошибку бэкенда в 502 с текстом для пользователя.
func backendError(lang language.Tag, err error) error {
	msg := apiclient.UserMessage(err)
	if msg == "" {
		msg = i18n.T(lang, i18n.MsgBackendUnavailable)
	}
	return apperrors.NewHttpError(http.StatusBadGateway, msg, err, nil)
}

// processTrend заполняет TrendPct и TrendText по Current и Previous.
func processTrend(m *types.DashboardKPIMetric, lang language.Tag) {
	if m.Previous > 0 {
		m.TrendPct = ((m.Current - m.Previous) / m.Previous) * 100
	} else if m.Current > 0 {
		m.TrendPct = 100
	} else {
		m.TrendPct = 0
	}
	m.TrendPct = math.Round(m.TrendPct)

	if m.TrendPct == 0 {
		m.TrendText = i18n.T(lang, i18n.MsgTrendFlat)
		return
	}
	sign := ""
	if m.TrendPct > 0 {
		sign = "+"
	}
	m.TrendText = i18n.T(lang, i18n.MsgTrendChange, sign, m.TrendPct)
}

// fillMissingPoints возвращает по точке на каждый день (или месяц) от from до to, с нулём там,
// где бэкенд ничего не вернул.
func fillMissingPoints(data []entities.RevenuePoint, from, to time.Time, groupBy string) []types.DashboardChartData {
	byLabel := make(map[string]entities.RevenuePoint, len(data))
	for _, item := range data {
		byLabel[item.Label] = item
	}

	layout, step := utils.DateLayout, func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	start := from
	if groupBy == GroupByMonth {
		layout, step = monthLabelLayout, func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		start = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	}

	var result []types.DashboardChartData
	for t := start; !t.After(to); t = step(t) {
		label := t.Format(layout)
		point := types.DashboardChartData{Label: label, Amount: decimal.Zero}
		if item, ok := byLabel[label]; ok {
			point.Value = item.Tickets
			point.Amount = item.Amount
		}
		result = append(result, point)
	}
	return result
}
