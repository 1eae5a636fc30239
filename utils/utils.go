// Package utils holds small helpers shared across the CLI and services.
package utils

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// LogError logs an error with an explanatory message. A nil logger falls
// back to a no-op logger so early-startup failures still don't panic.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.Error(msg, fields...)
}

// HandlePanic recovers a panic, reports it and dumps the stack trace. Meant
// to be deferred at the top of every goroutine with external input.
func HandlePanic(logger *zap.Logger) {
	if r := recover(); r != nil {
		sentry.CaptureException(errors.New(fmt.Sprint(r)))
		stackTrace := debug.Stack()
		LogError(logger, nil, "recovered from panic",
			zap.Any("panic", r),
			zap.String("stack trace", string(stackTrace)),
		)
		sentry.Flush(time.Second * 2)
	}
}
