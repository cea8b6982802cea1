package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bus-admin/pkg/i18n"
	"bus-admin/pkg/metrics"
	"bus-admin/pkg/utils"
)

// RequestLogger логирует каждый запрос и считает его по шаблону маршрута.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	logger = logger.Named("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			metrics.HTTPRequestsTotal.WithLabelValues(c.Path(), c.Request().Method, strconv.Itoa(status)).Inc()
			logger.Info("HTTP запрос",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			)
			return nil
		}
	}
}

// Localize выбирает язык UI по Accept-Language (или параметру "lang").
func Localize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Accept-Language")
		if q := c.QueryParam("lang"); q != "" {
			header = q
		}
		lang := i18n.Match(header)
		c.SetRequest(c.Request().WithContext(utils.WithLang(c.Request().Context(), lang)))
		return next(c)
	}
}
