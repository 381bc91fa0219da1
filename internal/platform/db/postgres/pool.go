package postgres

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/ogurasousui/company-api/internal/platform/config"
	"github.com/ogurasousui/company-api/internal/platform/logger"
)

// BuildPoolConfig は database 設定から pgxpool.Config を構築します。
func BuildPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	// NUMERIC を decimal.Decimal として読み書きする。
	poolCfg.AfterConnect = registerTypes

	if cfg.QueryLogLevel != "" && cfg.QueryLogLevel != "none" {
		level, err := tracelog.LogLevelFromString(cfg.QueryLogLevel)
		if err != nil {
			return nil, fmt.Errorf("postgres: query log level: %w", err)
		}
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger{},
			LogLevel: level,
		}
	}

	return poolCfg, nil
}

// NewPool は pgxpool.Pool を生成し疎通確認を行います。
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	logger.InfoLog(ctx, "postgres pool ready host=%s db=%s max_conns=%d", poolCfg.ConnConfig.Host, poolCfg.ConnConfig.Database, poolCfg.MaxConns)
	return pool, nil
}

func registerTypes(_ context.Context, conn *pgx.Conn) error {
	pgxdecimal.Register(conn.TypeMap())
	return nil
}

// queryLogger は pgx のトレースログを zerolog に流します。
type queryLogger struct{}

func (queryLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	l := logger.FromContext(ctx)
	var ev = l.Debug()
	switch level {
	case tracelog.LogLevelError:
		ev = l.Error()
	case tracelog.LogLevelWarn:
		ev = l.Warn()
	case tracelog.LogLevelInfo:
		ev = l.Info()
	case tracelog.LogLevelTrace:
		ev = l.Trace()
	}
	ev.Fields(data).Str("component", "pgx").Msg(msg)
}
