package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/authz"
	"bus-admin/internal/detail"
	"bus-admin/internal/dto"
	"bus-admin/internal/listquery"
	"bus-admin/internal/services"
	"bus-admin/pkg/apiclient"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/i18n"
	"bus-admin/pkg/utils"
)

type ViewController struct {
	viewService services.ViewServiceInterface
	logger      *zap.Logger
}

func NewViewController(viewService services.ViewServiceInterface, logger *zap.Logger) *ViewController {
	return &ViewController{viewService: viewService, logger: logger}
}

func (ctrl *ViewController) Mount(c echo.Context) error {
	ctx := c.Request().Context()
	lang := utils.GetLangFromCtx(ctx)

	var req dto.MountViewDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewBadRequestError(i18n.T(lang, i18n.MsgInvalidRequest)), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	role, err := utils.GetRoleFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if !authz.Can(role, authz.ViewPermission(req.Kind)) {
		return utils.ErrorResponse(c, apperrors.ErrForbidden, ctrl.logger)
	}

	view, err := ctrl.viewService.Mount(ctx, req.Kind)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, dto.MountedViewDTO{ViewID: view.ID(), Kind: view.Kind()},
		i18n.T(lang, i18n.MsgViewMounted), http.StatusCreated)
}

func (ctrl *ViewController) GetSnapshot(c echo.Context) error {
	view, err := ctrl.viewService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, view, nil, i18n.MsgStateLoaded)
}

func (ctrl *ViewController) Unmount(c echo.Context) error {
	ctx := c.Request().Context()
	if err := ctrl.viewService.Unmount(ctx, c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, i18n.T(utils.GetLangFromCtx(ctx), i18n.MsgViewUnmounted), http.StatusOK)
}

func (ctrl *ViewController) LoadAll(c echo.Context) error {
	return ctrl.withView(c, func(ctx context.Context, view services.View) error {
		return view.LoadAll(ctx)
	})
}

func (ctrl *ViewController) Search(c echo.Context) error {
	return ctrl.withView(c, func(ctx context.Context, view services.View) error {
		return view.Search(ctx, ctrl.decoder(c))
	})
}

func (ctrl *ViewController) Filter(c echo.Context) error {
	return ctrl.withView(c, func(ctx context.Context, view services.View) error {
		return view.Filter(ctx, ctrl.decoder(c))
	})
}

func (ctrl *ViewController) Reset(c echo.Context) error {
	return ctrl.withView(c, func(ctx context.Context, view services.View) error {
		return view.Reset(ctx)
	})
}

func (ctrl *ViewController) GoToPage(c echo.Context) error {
	return ctrl.withView(c, func(ctx context.Context, view services.View) error {
		var req dto.PageDTO
		if err := ctrl.decoder(c)(&req); err != nil {
			return err
		}
		return view.GoToPage(ctx, req.Page)
	})
}

func (ctrl *ViewController) OpenDetail(c echo.Context) error {
	view, err := ctrl.viewService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	err = view.OpenDetail(c.Request().Context(), c.Param("key"))
	return ctrl.respond(c, view, err, i18n.MsgDetailLoaded)
}

func (ctrl *ViewController) CloseDetail(c echo.Context) error {
	view, err := ctrl.viewService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	view.CloseDetail()
	return ctrl.respond(c, view, nil, i18n.MsgStateLoaded)
}

func (ctrl *ViewController) withView(c echo.Context, op func(ctx context.Context, view services.View) error) error {
	ctx := c.Request().Context()
	view, err := ctrl.viewService.Get(ctx, c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return ctrl.respond(c, view, op(ctx, view), i18n.MsgStateLoaded)
}

// decoder читает тело запроса в критерии и валидирует их.
func (ctrl *ViewController) decoder(c echo.Context) services.DecodeFunc {
	return func(target interface{}) error {
		if err := c.Bind(target); err != nil {
			lang := utils.GetLangFromCtx(c.Request().Context())
			return apperrors.NewBadRequestError(i18n.T(lang, i18n.MsgInvalidRequest))
		}
		return c.Validate(target)
	}
}

// respond отвечает снимком вида. При ошибке снимок тоже уходит в теле, чтобы
// UI показал состояние, оставшееся после ошибки.
func (ctrl *ViewController) respond(c echo.Context, view services.View, err error, okMsg string) error {
	lang := utils.GetLangFromCtx(c.Request().Context())
	snapshot := view.Snapshot()
	if err == nil {
		return utils.SuccessResponse(c, snapshot, i18n.T(lang, okMsg), http.StatusOK)
	}

	var (
		verrs  validator.ValidationErrors
		apiErr *apiclient.Error
		status int
		msg    string
	)
	switch {
	case errors.As(err, &verrs):
		status, msg = http.StatusBadRequest, utils.ValidationMessage(lang, verrs)
	case errors.Is(err, listquery.ErrNoCriteria):
		status, msg = http.StatusBadRequest, i18n.T(lang, i18n.MsgNoCriteria)
	case errors.Is(err, listquery.ErrSuperseded), errors.Is(err, detail.ErrSuperseded):
		status, msg = http.StatusConflict, i18n.T(lang, i18n.MsgSuperseded)
	case errors.Is(err, listquery.ErrClosed):
		return utils.ErrorResponse(c, apperrors.ErrViewNotFound, ctrl.logger)
	case errors.Is(err, context.Canceled):
		ctrl.logger.Debug("Клиент отключился", zap.String("viewID", view.ID()))
		return nil
	case apiclient.IsNotFound(err):
		status, msg = http.StatusNotFound, apiclient.UserMessage(err)
	case errors.As(err, &apiErr):
		status, msg = http.StatusBadGateway, apiclient.UserMessage(err)
	default:
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if msg == "" {
		msg = i18n.T(lang, i18n.MsgBackendUnavailable)
	}
	return utils.ErrorResponse(c, apperrors.NewHttpError(status, msg, err, nil).WithDetails(snapshot), ctrl.logger)
}
