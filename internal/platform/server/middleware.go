package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ogurasousui/company-api/internal/platform/logger"
)

func registerMiddlewares(e *echo.Echo) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		// リクエスト ID 付きのロガーをリクエストのコンテキストに載せる。
		RequestIDHandler: func(c echo.Context, requestID string) {
			req := c.Request()
			ctx := logger.WithFields(req.Context(), map[string]interface{}{"request_id": requestID})
			c.SetRequest(req.WithContext(ctx))
		},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := logger.FromContext(c.Request().Context())
			event := l.Info()
			if v.Status >= 500 || v.Error != nil {
				event = l.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request completed")
			return nil
		},
	}))
	e.Use(middleware.Recover())
}
