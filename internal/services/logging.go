package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger provides structured outcome logging for workflow operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, component string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", "conference-service", "component", component),
	}
}

// LogOperation logs the outcome of one operation at a level derived from the error family
func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, userID uint, resourceID uint, resourceType string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level, status = slog.LevelWarn, "validation_error"
		case IsNotFound(err):
			level, status = slog.LevelInfo, "not_found"
		case IsUnauthorized(err), IsForbidden(err):
			level, status = slog.LevelWarn, "unauthorized"
		case IsInvalidState(err), IsDeadlineExpired(err), IsConflict(err):
			level, status = slog.LevelWarn, "rejected"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("resource_id", uint64(resourceID)),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()), slog.String("code", ErrorCode(err)))

		var ve ValidationErrors
		if errors.As(err, &ve) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(ve)))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// OperationLog times an operation from WithOperation until LogResult
type OperationLog struct {
	logger    *ServiceLogger
	operation string
	userID    uint
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string, userID uint) *OperationLog {
	return &OperationLog{
		logger:    l,
		operation: operation,
		userID:    userID,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (ol *OperationLog) LogResult(resourceID uint, resourceType string, err error) {
	ol.logger.LogOperation(ol.ctx, ol.operation, ol.userID, resourceID, resourceType, time.Since(ol.startTime), err)
}
