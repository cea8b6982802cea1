package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/dto"
	"bus-admin/internal/services"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/i18n"
	"bus-admin/pkg/utils"
)

const duplicateSendWindow = 30 * time.Second

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	dedup               *RequestDeduplicator
	logger              *zap.Logger
}

func NewNotificationController(ns services.NotificationServiceInterface, dedup *RequestDeduplicator, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: ns, dedup: dedup, logger: logger}
}

// SendBulkEmail отвечает 200 со счётчиками, даже если часть писем не ушла.
func (ctrl *NotificationController) SendBulkEmail(c echo.Context) error {
	ctx := c.Request().Context()
	lang := utils.GetLangFromCtx(ctx)

	var req dto.BulkEmailDTO
	if err := c.Bind(&req); err != nil {
		return utils.ErrorResponse(c, apperrors.NewBadRequestError(i18n.T(lang, i18n.MsgInvalidRequest)), ctrl.logger)
	}
	if err := c.Validate(&req); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	recipients := append([]string(nil), req.Recipients...)
	sort.Strings(recipients)
	guard := []string{req.Subject, req.Body, req.ViewID, strings.Join(recipients, ",")}
	if !ctrl.dedup.TryAcquire(userID, duplicateSendWindow, guard...) {
		ctrl.logger.Warn("Повторная рассылка отклонена", zap.Uint64("userID", userID))
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusConflict, i18n.T(lang, i18n.MsgDuplicateSend), nil, nil), ctrl.logger)
	}

	result, err := ctrl.notificationService.SendBulkEmail(ctx, req)
	if err != nil {
		// Слот держит только доставленная рассылка, после ошибки можно отправить сразу.
		ctrl.dedup.Release(userID, guard...)
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, i18n.T(lang, i18n.MsgEmailSent), http.StatusOK)
}
