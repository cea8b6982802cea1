package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/authz"
	"bus-admin/internal/controllers"
	"bus-admin/pkg/middleware"
)

func runDashboardRouter(
	secureGroup *echo.Group,
	dashboardService controllers.DashboardServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/dashboard", dashboardController.GetDashboardStats, authMW.AuthorizeAny(authz.DashboardView))
	secureGroup.GET("/dashboard/revenue", dashboardController.GetRevenue, authMW.AuthorizeAny(authz.RevenueView))
}
