package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/dto"
	"bus-admin/pkg/i18n"
	"bus-admin/pkg/utils"
)

const defaultPeriodDays = 30

type DashboardServiceInterface interface {
	GetDashboardStats(ctx context.Context, from, to time.Time) (*dto.DashboardStatsDTO, error)
	GetRevenue(ctx context.Context, from, to time.Time, groupBy string) (*dto.RevenueSeriesDTO, error)
}

type DashboardController struct {
	dashboardService DashboardServiceInterface
	logger           *zap.Logger
	now              func() time.Time
}

func NewDashboardController(ds DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
		now:              time.Now,
	}
}

// GetDashboardStats обрабатывает GET /dashboard?from=YYYY-MM-DD&to=YYYY-MM-DD. По умолчанию
// берутся последние 30 дней.
func (ctrl *DashboardController) GetDashboardStats(c echo.Context) error {
	from, to, err := utils.ParsePeriod(c.QueryParams(), ctrl.now(), defaultPeriodDays)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctx := c.Request().Context()
	stats, err := ctrl.dashboardService.GetDashboardStats(ctx, from, to)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, stats, i18n.T(utils.GetLangFromCtx(ctx), i18n.MsgDashboard), http.StatusOK)
}

func (ctrl *DashboardController) GetRevenue(c echo.Context) error {
	from, to, err := utils.ParsePeriod(c.QueryParams(), ctrl.now(), defaultPeriodDays)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctx := c.Request().Context()
	series, err := ctrl.dashboardService.GetRevenue(ctx, from, to, c.QueryParam("groupBy"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, series, i18n.T(utils.GetLangFromCtx(ctx), i18n.MsgRevenue), http.StatusOK)
}
