package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"example.com/pagarme-gateway/pkg/logger"
	"example.com/pagarme-gateway/pkg/tracing"
)

// HTTP заголовки для трассировки.
const (
	HeaderTraceID       = "X-Trace-ID"
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"
)

// TracingMiddleware — middleware для добавления trace_id, correlation_id и request_id.
// Отсутствующие ID генерируются, все три возвращаются клиенту в заголовках
// и попадают в логи через logger.FromContext.
type TracingMiddleware struct{}

// NewTracingMiddleware создаёт новый middleware для трассировки.
func NewTracingMiddleware() *TracingMiddleware {
	return &TracingMiddleware{}
}

// Handle возвращает Gin handler function для middleware.
func (m *TracingMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)

		// X-Request-ID служит trace_id, если клиент не прислал X-Trace-ID
		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = requestID
		}
		if traceID == "" {
			traceID = uuid.New().String()
		}
		if requestID == "" {
			requestID = traceID
		}

		correlationID := c.GetHeader(HeaderCorrelationID)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		ctx := logger.NewContextWithIDs(c.Request.Context(), traceID, correlationID, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderTraceID, traceID)
		c.Header(HeaderCorrelationID, correlationID)
		c.Header(HeaderRequestID, requestID)

		c.Set("trace_id", traceID)
		c.Set("correlation_id", correlationID)
		c.Set("request_id", requestID)

		log := logger.FromContext(ctx)
		event := log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP())
		if otelID := tracing.TraceID(ctx); otelID != "" {
			event = event.Str("otel_trace_id", otelID)
		}
		event.Msg("Входящий запрос")

		c.Next()

		statusCode := c.Writer.Status()

		logEvent := log.Info()
		if statusCode >= 400 {
			logEvent = log.Warn()
		}
		if statusCode >= 500 {
			logEvent = log.Error()
		}

		logEvent.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", statusCode).
			Dur("duration", time.Since(start)).
			Msg("Запрос завершён")
	}
}
