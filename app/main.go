package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"bus-admin/internal/controllers"
	"bus-admin/internal/entities"
	"bus-admin/internal/integrations"
	"bus-admin/internal/listeners"
	"bus-admin/internal/repositories"
	"bus-admin/internal/routes"
	"bus-admin/internal/services"
	"bus-admin/pkg/apiclient"
	"bus-admin/pkg/config"
	"bus-admin/pkg/customvalidator"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/eventbus"
	applogger "bus-admin/pkg/logger"
	appmiddleware "bus-admin/pkg/middleware"
	"bus-admin/pkg/service"
	"bus-admin/pkg/utils"
	"bus-admin/pkg/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Accept-Language"},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(appmiddleware.RequestLogger(logger))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Не удалось зарегистрировать правила валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	backend := apiclient.New(cfg.Backend, logger)
	tickets := apiclient.NewCollection[entities.Ticket, entities.TicketDetail](backend, "/tickets")
	reviews := apiclient.NewCollection[entities.Review, entities.ReviewDetail](backend, "/reviews")
	bookings := apiclient.NewCollection[entities.Booking, entities.BookingDetail](backend, "/bookings")

	bus := eventbus.New(logger)
	hub := websocket.NewHub(logger)
	listeners.NewViewPushListener(hub, logger).Register(bus)
	listeners.NewEmailAuditListener(logger).Register(bus)

	emailRegistry, err := integrations.NewEmailRegistry(cfg.Email, logger)
	if err != nil {
		logger.Fatal("Не удалось настроить почтовых провайдеров", zap.Error(err))
	}

	viewService := services.NewViewService(services.ViewSources{
		Tickets:  tickets,
		Reviews:  reviews,
		Bookings: bookings,
	}, cfg.Views, bus, logger)
	viewService.SetWatchers(hub.Subscribers)
	go viewService.Run(ctx)

	sendGuard := controllers.NewRequestDeduplicator()
	go sendGuard.Cleanup(ctx, time.Minute)

	svc := &routes.Services{
		Views:         viewService,
		Dashboard:     services.NewDashboardService(backend, bookings, logger),
		Menu:          services.NewMenuService(cacheRepo, logger, cfg.Menu.CacheTTL),
		Notifications: services.NewNotificationService(emailRegistry, viewService, cacheRepo, bus, cfg.Email, logger),
		Reports:       services.NewReportService(logger),
		SendGuard:     sendGuard,
	}
	healthChecks := map[string]controllers.Pinger{
		"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}
	loggers := &routes.Loggers{
		Main:  logger,
		Auth:  logger.Named("auth"),
		Views: logger.Named("views"),
		Email: logger.Named("email"),
	}
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, logger)

	routes.InitRouter(e, svc, hub, jwtSvc, healthChecks, loggers, cfg)

	go func() {
		logger.Info("Сервер запускается", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	viewService.Close()
	bus.Wait()
}
