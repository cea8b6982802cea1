package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/authz"
	"bus-admin/internal/controllers"
	"bus-admin/internal/services"
	"bus-admin/pkg/middleware"
	"bus-admin/pkg/websocket"
)

func runViewRouter(
	secureGroup *echo.Group,
	viewService services.ViewServiceInterface,
	reportService services.ReportServiceInterface,
	hub *websocket.Hub,
	allowedOrigins []string,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	viewController := controllers.NewViewController(viewService, logger)
	reportController := controllers.NewReportController(viewService, reportService, logger)
	wsController := controllers.NewWebSocketController(hub, viewService, allowedOrigins, logger)

	anyView := authMW.AuthorizeAny(authz.ViewsTickets, authz.ViewsReviews, authz.ViewsBookings)
	views := secureGroup.Group("/views", anyView)

	views.POST("", viewController.Mount)
	views.GET("/:id", viewController.GetSnapshot)
	views.DELETE("/:id", viewController.Unmount)
	views.POST("/:id/load", viewController.LoadAll)
	views.POST("/:id/search", viewController.Search)
	views.POST("/:id/filter", viewController.Filter)
	views.POST("/:id/reset", viewController.Reset)
	views.POST("/:id/page", viewController.GoToPage)
	views.GET("/:id/detail/:key", viewController.OpenDetail)
	views.DELETE("/:id/detail", viewController.CloseDetail)
	views.GET("/:id/export", reportController.ExportView, authMW.AuthorizeAny(authz.ReportsExport))
	views.GET("/:id/ws", wsController.ServeView)
}
