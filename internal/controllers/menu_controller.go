package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/services"
	"bus-admin/pkg/i18n"
	"bus-admin/pkg/utils"
)

type MenuController struct {
	menuService services.MenuServiceInterface
	logger      *zap.Logger
}

func NewMenuController(menuService services.MenuServiceInterface, logger *zap.Logger) *MenuController {
	return &MenuController{menuService: menuService, logger: logger}
}

// GetMenu возвращает меню для роли текущего пользователя.
func (ctrl *MenuController) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	role, err := utils.GetRoleFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	menu, err := ctrl.menuService.BuildMenu(ctx, role)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, menu, i18n.T(utils.GetLangFromCtx(ctx), i18n.MsgMenu), http.StatusOK)
}

func (ctrl *MenuController) ResetMenuCache(c echo.Context) error {
	ctx := c.Request().Context()
	if err := ctrl.menuService.InvalidateMenu(ctx, c.Param("role")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, i18n.T(utils.GetLangFromCtx(ctx), i18n.MsgMenuReset), http.StatusOK)
}
