// Package metrics содержит Prometheus метрики шлюза и HTTP сервер для /metrics, /healthz и /readyz.
//
// Использование:
//
//	srv := metrics.NewServer(":9090", "pagarme-gateway", metrics.WithReadinessCheck(check))
//	go srv.Start()
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/pagarme-gateway/pkg/logger"
)

// =============================================================================
// HTTP метрики
// =============================================================================

var (
	// RequestsTotal — запросы по сервису, маршруту и статусу.
	// PromQL: rate(requests_total{service="pagarme-gateway"}[5m])
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Общее количество запросов по сервису, методу и статусу",
		},
		[]string{"service", "method", "status"},
	)

	// RequestDuration — latency запросов.
	// PromQL: histogram_quantile(0.95, rate(request_duration_seconds_bucket[5m]))
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Время выполнения запроса в секундах",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method"},
	)
)

// =============================================================================
// Доменные метрики
// =============================================================================

var (
	// WebhookValidations — проверки входящих webhooks (result: accepted|rejected|skipped).
	WebhookValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagarme_webhook_validations_total",
			Help: "Проверки webhooks Pagar.me по результату",
		},
		[]string{"result"},
	)

	// WebhookRejections — коды причин отказа (ip_not_whitelisted, invalid_signature, ...).
	WebhookRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagarme_webhook_rejections_total",
			Help: "Отклонённые webhooks по причине",
		},
		[]string{"reason"},
	)

	// WebhookEvents — принятые события по типу (order.paid, charge.refunded, other).
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagarme_webhook_events_total",
			Help: "Принятые события webhooks по типу",
		},
		[]string{"type"},
	)

	// OrderValidations — проверки заказов перед отправкой (mode: psp|gateway).
	OrderValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagarme_order_validations_total",
			Help: "Проверки заказов по режиму и результату",
		},
		[]string{"mode", "result"},
	)

	// Declines — отказы эмитента по категории ABECS и возможности повтора.
	Declines = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagarme_declines_total",
			Help: "Отказы по категории кода возврата",
		},
		[]string{"category", "retryable"},
	)

	// APIErrors — ошибки API Pagar.me по типу.
	APIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagarme_api_errors_total",
			Help: "Ошибки API Pagar.me по типу",
		},
		[]string{"kind"},
	)
)

// rejectionCodes — допустимые значения метки reason. Остальное пишется как other.
var rejectionCodes = map[string]struct{}{
	"ip_not_whitelisted": {},
	"invalid_structure":  {},
	"invalid_json":       {},
	"invalid_signature":  {},
	"missing_signature":  {},
}

// RecordWebhook записывает результат проверки webhook и коды причин отказа.
func RecordWebhook(result string, codes []string) {
	WebhookValidations.WithLabelValues(result).Inc()
	for _, code := range codes {
		if _, ok := rejectionCodes[code]; !ok {
			code = "other"
		}
		WebhookRejections.WithLabelValues(code).Inc()
	}
}

// RecordOrderValidation записывает результат проверки заказа.
func RecordOrderValidation(mode string, valid bool) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	OrderValidations.WithLabelValues(mode, result).Inc()
}

// RecordDecline записывает отказ по категории кода.
func RecordDecline(category string, retryable bool) {
	r := "false"
	if retryable {
		r = "true"
	}
	Declines.WithLabelValues(category, r).Inc()
}

// =============================================================================
// HTTP Server для /metrics endpoint
// =============================================================================

// ReadinessChecker — проверка готовности сервиса. nil означает готов.
type ReadinessChecker func(ctx context.Context) error

// Server — HTTP сервер для экспорта метрик Prometheus.
type Server struct {
	httpServer     *http.Server
	service        string
	readinessCheck ReadinessChecker
}

// Option — функциональная опция для настройки Server.
type Option func(*Server)

// WithReadinessCheck добавляет проверку готовности для /readyz.
// Ошибка проверки превращается в 503 Service Unavailable.
func WithReadinessCheck(checker ReadinessChecker) Option {
	return func(s *Server) {
		s.readinessCheck = checker
	}
}

// NewServer создаёт metrics server на addr (например ":9090").
func NewServer(addr, service string, opts ...Option) *Server {
	s := &Server{
		service: service,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Handler возвращает mux с /metrics, /healthz и /readyz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	// liveness: сервер отвечает, значит процесс жив
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"alive"}`))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if s.readinessCheck == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ready"}`))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := s.readinessCheck(ctx); err != nil {
			// детали ошибки наружу не отдаём
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"not_ready"}`))
			logger.Warn().Err(err).Str("service", s.service).Msg("Readiness check failed")
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	return mux
}

// Start запускает HTTP сервер. Блокирующий вызов.
func (s *Server) Start() error {
	log := logger.With().Str("service", s.service).Logger()
	log.Info().Str("addr", s.httpServer.Addr).Msg("Запуск Metrics Server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully останавливает сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// =============================================================================
// Gin Middleware для HTTP метрик
// =============================================================================

// RecordRequest записывает метрики запроса.
// status — "success" или "error".
func RecordRequest(service, method, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(service, method, status).Inc()
	RequestDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// GinMetricsMiddleware собирает requests_total и request_duration_seconds.
// Незарегистрированные маршруты пишутся как "unmatched", чтобы не плодить labels.
func GinMetricsMiddleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := "success"
		if c.Writer.Status() >= 400 {
			status = "error"
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		RecordRequest(service, c.Request.Method+" "+route, status, time.Since(start))
	}
}
