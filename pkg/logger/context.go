package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// ctxKey — приватный тип ключей контекста.
type ctxKey string

const (
	traceIDKey       ctxKey = "trace_id"
	correlationIDKey ctxKey = "correlation_id"
	requestIDKey     ctxKey = "request_id"
	loggerKey        ctxKey = "logger"
)

// WithTraceID добавляет trace_id в контекст.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext возвращает trace_id или пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

// WithCorrelationID добавляет correlation_id: связывает запросы одной операции
// (например, все webhooks одного заказа).
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// CorrelationIDFromContext возвращает correlation_id или пустую строку.
func CorrelationIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(correlationIDKey).(string)
	return v
}

// WithRequestID добавляет request_id входящего HTTP запроса.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext возвращает request_id или пустую строку.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithLogger кладёт настроенный логгер в контекст.
//
//	l := logger.With().Str("component", "webhook").Logger()
//	ctx = logger.WithLogger(ctx, l)
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext возвращает логгер из контекста (или глобальный) с полями
// trace_id, correlation_id и request_id, если они есть.
//
//	log := logger.FromContext(ctx)
//	log.Info().Str("hook_id", id).Msg("Webhook принят")
func FromContext(ctx context.Context) zerolog.Logger {
	l, ok := ctx.Value(loggerKey).(zerolog.Logger)
	if !ok {
		l = log
	}

	fields := l.With()
	if v := TraceIDFromContext(ctx); v != "" {
		fields = fields.Str("trace_id", v)
	}
	if v := CorrelationIDFromContext(ctx); v != "" {
		fields = fields.Str("correlation_id", v)
	}
	if v := RequestIDFromContext(ctx); v != "" {
		fields = fields.Str("request_id", v)
	}
	return fields.Logger()
}

// NewContextWithIDs добавляет непустые trace_id, correlation_id и request_id.
func NewContextWithIDs(ctx context.Context, traceID, correlationID, requestID string) context.Context {
	if traceID != "" {
		ctx = WithTraceID(ctx, traceID)
	}
	if correlationID != "" {
		ctx = WithCorrelationID(ctx, correlationID)
	}
	if requestID != "" {
		ctx = WithRequestID(ctx, requestID)
	}
	return ctx
}
