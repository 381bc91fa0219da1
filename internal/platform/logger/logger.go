package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	globalLogger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	once         sync.Once
	logFile      *os.File
)

// InitLogging はグローバルロガーを構成します。filePath が空でなければ標準出力に加えてファイルにも書き込みます。
func InitLogging(filePath, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var initErr error
	once.Do(func() {
		writers := []io.Writer{os.Stdout}

		if filePath != "" {
			file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o664)
			if err != nil {
				initErr = fmt.Errorf("logger: open log file %s: %w", filePath, err)
				return
			}
			logFile = file
			writers = append(writers, file)
		}

		multi := zerolog.MultiLevelWriter(writers...)
		globalLogger = zerolog.New(multi).With().Timestamp().Logger().Level(lvl)
		log.Logger = globalLogger
	})

	return initErr
}

// Close はログファイルを閉じます。
func Close() error {
	if logFile == nil {
		return nil
	}
	if err := logFile.Sync(); err != nil {
		return err
	}
	return logFile.Close()
}

// ParseLevel はログレベル文字列を解釈します。空文字列は info として扱います。
func ParseLevel(raw string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logger: parse level %q: %w", raw, err)
	}
	return lvl, nil
}

// Global はグローバルロガーを返します。
func Global() zerolog.Logger {
	return globalLogger
}

// WithLogger は l をコンテキストに格納します。
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// WithFields はコンテキストのロガーに fields を付与した新しいコンテキストを返します。
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	l := FromContext(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// FromContext はコンテキストのロガーを返します。未設定の場合はグローバルロガーを返します。
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

// DebugLog はデバッグレベルで出力します。
func DebugLog(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Debug().Msgf(msg, args...)
}

// InfoLog は情報レベルで出力します。
func InfoLog(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Info().Msgf(msg, args...)
}

// WarnLog は警告レベルで出力します。
func WarnLog(ctx context.Context, msg string, args ...interface{}) {
	FromContext(ctx).Warn().Msgf(msg, args...)
}

// ErrorLog はエラーレベルで出力します。args の先頭が error の場合は構造化フィールドとして記録します。
func ErrorLog(ctx context.Context, msg string, args ...interface{}) {
	l := FromContext(ctx)
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			l.Error().Err(err).Msgf(msg, args[1:]...)
			return
		}
	}
	l.Error().Msgf(msg, args...)
}
