package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/company-api/internal/core/employee"
	"github.com/ogurasousui/company-api/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	panicOnDispatch bool
}

func (s stubUseCase) Dispatch(_ context.Context, req employee.OperationRequest) (*employee.Result, error) {
	if s.panicOnDispatch {
		panic("boom")
	}
	return &employee.Result{Kind: req.Kind()}, nil
}

func (stubUseCase) PatchEmployee(_ context.Context, id int64, _ []byte) (*employee.Result, error) {
	return &employee.Result{Kind: employee.KindUpdate, ID: id}, nil
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{ListenAddr: "127.0.0.1:0", BasePath: "/api/company", ShutdownTimeout: time.Second}
}

func TestServer_RoutesUnderBasePath(t *testing.T) {
	t.Parallel()

	srv := New(testServerConfig(), stubUseCase{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/company/BaseEmployee", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/BaseEmployee", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_KeepsIncomingRequestID(t *testing.T) {
	t.Parallel()

	srv := New(testServerConfig(), stubUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/company/AllHireDates", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestServer_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	srv := New(testServerConfig(), stubUseCase{panicOnDispatch: true})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/company/AllFromFunction", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := New(testServerConfig(), stubUseCase{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
