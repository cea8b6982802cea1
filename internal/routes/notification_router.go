package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/authz"
	"bus-admin/internal/controllers"
	"bus-admin/internal/services"
	"bus-admin/pkg/middleware"
)

func runNotificationRouter(
	secureGroup *echo.Group,
	notificationService services.NotificationServiceInterface,
	dedup *controllers.RequestDeduplicator,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	notificationController := controllers.NewNotificationController(notificationService, dedup, logger)

	secureGroup.POST("/notifications/email", notificationController.SendBulkEmail, authMW.AuthorizeAny(authz.NotificationsSend))
}
