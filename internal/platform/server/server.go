package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/company-api/internal/adapters/http/handler"
	"github.com/ogurasousui/company-api/internal/core/employee"
	"github.com/ogurasousui/company-api/internal/platform/config"
	"github.com/ogurasousui/company-api/internal/platform/logger"
)

// Server は HTTP サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr      string
	shutdownTimeout time.Duration
	echo            *echo.Echo
}

// New は社員 API のルートとミドルウェアを登録した HTTP サーバーを構築します。
func New(cfg config.ServerConfig, employees employee.UseCase) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	registerMiddlewares(e)

	employeeHandler := handler.NewEmployeeHandler(employees)
	employeeHandler.Register(e.Group(cfg.BasePath))

	return &Server{
		listenAddr:      cfg.ListenAddr,
		shutdownTimeout: cfg.ShutdownTimeout,
		echo:            e,
	}
}

// Handler はルーティング済みの http.Handler を返します。
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.InfoLog(ctx, "http server listening on %s", s.listenAddr)
		if err := s.echo.Start(s.listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http on %s: %w", s.listenAddr, err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.InfoLog(ctx, "shutting down http server")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}
