package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/internal/services"
	"bus-admin/pkg/utils"
	appwebsocket "bus-admin/pkg/websocket"
)

type WebSocketController struct {
	hub         *appwebsocket.Hub
	viewService services.ViewServiceInterface
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// NewWebSocketController принимает upgrade только с allowedOrigins; "*" разрешает всех.
func NewWebSocketController(hub *appwebsocket.Hub, viewService services.ViewServiceInterface, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &WebSocketController{
		hub:         hub,
		viewService: viewService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins["*"] || origins[origin]
			},
		},
		logger: logger,
	}
}

// ServeView транслирует снимки одного вида. Текущий снимок отправляется
// сразу после upgrade.
func (ctrl *WebSocketController) ServeView(c echo.Context) error {
	ctx := c.Request().Context()
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	view, err := ctrl.viewService.Get(ctx, c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	conn, err := ctrl.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ctrl.logger.Error("Ошибка upgrade websocket", zap.String("viewID", view.ID()), zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(ctrl.hub, conn, view.ID(), userID)
	ctrl.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()

	if err := ctrl.hub.Publish(view.ID(), appwebsocket.TypeViewState, view.Snapshot()); err != nil {
		ctrl.logger.Warn("Начальный снимок не отправлен", zap.String("viewID", view.ID()), zap.Error(err))
	}
	ctrl.logger.Info("Websocket клиент подключён", zap.String("viewID", view.ID()), zap.Uint64("userID", userID))
	return nil
}
