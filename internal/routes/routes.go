package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bus-admin/internal/controllers"
	"bus-admin/internal/services"
	"bus-admin/pkg/config"
	"bus-admin/pkg/middleware"
	"bus-admin/pkg/service"
	"bus-admin/pkg/websocket"
)

type Loggers struct {
	Main  *zap.Logger
	Auth  *zap.Logger
	Views *zap.Logger
	Email *zap.Logger
}

// Services создаёт вызывающий, он же управляет их жизненным циклом.
type Services struct {
	Views         services.ViewServiceInterface
	Dashboard     controllers.DashboardServiceInterface
	Menu          services.MenuServiceInterface
	Notifications services.NotificationServiceInterface
	Reports       services.ReportServiceInterface
	// SendGuard отклоняет повторные рассылки; Cleanup запускает вызывающий.
	SendGuard *controllers.RequestDeduplicator
}

func InitRouter(
	e *echo.Echo,
	svc *Services,
	hub *websocket.Hub,
	jwtSvc service.JWTService,
	healthChecks map[string]controllers.Pinger,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	healthController := controllers.NewHealthController(healthChecks, loggers.Main)
	e.GET("/health", healthController.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", middleware.Localize)
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	runViewRouter(secureGroup, svc.Views, svc.Reports, hub, cfg.Server.AllowedOrigins, loggers.Views, authMW)
	runDashboardRouter(secureGroup, svc.Dashboard, loggers.Main, authMW)
	runMenuRouter(secureGroup, svc.Menu, loggers.Main, authMW)
	sendGuard := svc.SendGuard
	if sendGuard == nil {
		sendGuard = controllers.NewRequestDeduplicator()
	}
	runNotificationRouter(secureGroup, svc.Notifications, sendGuard, loggers.Email, authMW)

	loggers.Main.Info("InitRouter: Все маршруты успешно зарегистрированы")
}
