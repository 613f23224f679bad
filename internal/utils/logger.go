package utils

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

// Logger is the logging surface shared by handlers and background jobs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	InfoContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger

	LogRequest(method, path string, statusCode int, duration string, args ...any)
	LogError(err error, msg string, args ...any)
}

// SlogLogger implements Logger on top of slog
type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{logger: logger}
}

// NewLogger builds the process logger: JSON in production, text everywhere else.
func NewLogger(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *SlogLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) LogRequest(method, path string, statusCode int, duration string, args ...any) {
	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	allArgs := append([]any{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration", duration,
	}, args...)
	l.logger.Log(context.Background(), level, "HTTP Request", allArgs...)
}

func (l *SlogLogger) LogError(err error, msg string, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

// LoggerMiddleware replaces gin's default access log with the structured one.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logger.LogRequest(
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency.String(),
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
		)
		return ""
	})
}

// ContextLogger stores a request-scoped logger under the "logger" key.
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("logger", logger.With(
			"request_id", c.GetHeader("X-Request-ID"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		))
		c.Next()
	}
}

func GetLoggerFromContext(c *gin.Context, fallback Logger) Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(Logger); ok {
			return l
		}
	}
	return fallback
}
