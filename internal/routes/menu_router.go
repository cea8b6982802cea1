package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/authz"
	"bus-admin/internal/controllers"
	"bus-admin/internal/services"
	"bus-admin/pkg/middleware"
)

func runMenuRouter(
	secureGroup *echo.Group,
	menuService services.MenuServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	menuController := controllers.NewMenuController(menuService, logger)

	secureGroup.GET("/menu", menuController.GetMenu)
	secureGroup.DELETE("/menu/cache/:role", menuController.ResetMenuCache, authMW.AuthorizeAny(authz.MenuManage))
}
