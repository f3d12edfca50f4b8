package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for request-context keys so they cannot collide.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	callerCtxKey = contextKey("caller")
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger. It falls back to slog.Default()
// outside a request, e.g. in the admin CLI or in tests.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// WithCaller returns a copy of ctx carrying the authenticated caller.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey, caller)
}

// GetCallerFromCtx retrieves the authenticated caller stored by AuthMiddleware.
func GetCallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerCtxKey).(domain.Caller)
	return caller, ok
}

// GetCallerFromContext retrieves the authenticated caller from the Gin request.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	return GetCallerFromCtx(c.Request.Context())
}
