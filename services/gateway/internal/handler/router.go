package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"example.com/pagarme-gateway/pkg/logger"
	"example.com/pagarme-gateway/pkg/metrics"
	"example.com/pagarme-gateway/services/gateway/internal/middleware"
)

// ReadinessChecker — функция проверки готовности сервиса.
type ReadinessChecker func(ctx context.Context) error

// Router — HTTP роутер шлюза.
type Router struct {
	engine         *gin.Engine
	assembler      OrderAssembler
	events         EventHandler
	webhookMW      *middleware.WebhookMiddleware
	rateLimitMW    *middleware.RateLimitMiddleware
	tracingMW      *middleware.TracingMiddleware
	readinessCheck ReadinessChecker
}

// RouterConfig — параметры для создания роутера.
type RouterConfig struct {
	ServiceName    string
	Assembler      OrderAssembler
	Events         EventHandler // nil: события только логируются
	WebhookMW      *middleware.WebhookMiddleware
	RateLimitMW    *middleware.RateLimitMiddleware
	TracingMW      *middleware.TracingMiddleware
	CORS           *middleware.CORSConfig
	ReadinessCheck ReadinessChecker
	TrustedProxies []string // nil: X-Forwarded-For игнорируется
	MaxBodyBytes   int64    // 0: middleware.DefaultMaxBodyBytes
	Debug          bool
}

// NewRouter создаёт и настраивает HTTP роутер.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "pagarme-gateway"
	}

	engine := gin.New()

	// IP отправителя webhook проверяется по allow-list, поэтому
	// X-Forwarded-For принимается только от явно заданных прокси
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn().Err(err).Strs("proxies", cfg.TrustedProxies).Msg("Некорректный список доверенных прокси")
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	if cfg.CORS != nil {
		corsCfg = *cfg.CORS
	}

	engine.Use(middleware.Recovery())
	engine.Use(middleware.CORS(corsCfg))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	engine.Use(otelgin.Middleware(cfg.ServiceName))
	engine.Use(metrics.GinMetricsMiddleware(cfg.ServiceName))

	r := &Router{
		engine:         engine,
		assembler:      cfg.Assembler,
		events:         cfg.Events,
		webhookMW:      cfg.WebhookMW,
		rateLimitMW:    cfg.RateLimitMW,
		tracingMW:      cfg.TracingMW,
		readinessCheck: cfg.ReadinessCheck,
	}

	r.setupRoutes()
	return r
}

// setupRoutes настраивает все маршруты API.
func (r *Router) setupRoutes() {
	if r.tracingMW != nil {
		r.engine.Use(r.tracingMW.Handle())
	}

	r.engine.GET("/healthz", r.livenessCheck)
	r.engine.GET("/readyz", r.readinessCheckHandler)

	// === Webhooks Pagar.me (без rate limiting: повторные доставки не должны теряться) ===
	webhookHandler := NewWebhookHandler(r.events)
	hooks := r.engine.Group("/webhooks")
	if r.webhookMW != nil {
		hooks.Use(r.webhookMW.Handle())
	}
	hooks.POST("/pagarme", webhookHandler.Receive)

	// === API v1 ===
	v1 := r.engine.Group("/api/v1")
	if r.rateLimitMW != nil {
		v1.Use(r.rateLimitMW.Handle())
	}

	if r.assembler != nil {
		orderHandler := NewOrderHandler(r.assembler)
		orders := v1.Group("/orders")
		{
			orders.POST("/validate", orderHandler.Validate)
			orders.POST("/payload", orderHandler.Payload)
		}
	}

	feeHandler := NewFeeHandler()
	v1.POST("/fees/validate", feeHandler.Validate)

	declineHandler := NewDeclineHandler()
	v1.POST("/responses/classify", declineHandler.Classify)
	codes := v1.Group("/return-codes")
	{
		codes.GET("", declineHandler.ReturnCodes)
		codes.GET("/:code", declineHandler.ReturnCode)
	}
}

// Engine возвращает Gin engine для запуска сервера.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// livenessCheck — liveness: сервер отвечает, значит процесс жив.
func (r *Router) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// readinessCheckHandler — readiness. Без проверки сервис считается готовым.
func (r *Router) readinessCheckHandler(c *gin.Context) {
	if r.readinessCheck == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := r.readinessCheck(ctx); err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("Readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
