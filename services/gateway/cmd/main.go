// Package main — точка входа шлюза Pagar.me.
// Шлюз принимает webhooks за проверкой доверия, проверяет и собирает заказы,
// разбирает отказы и ошибки API Pagar.me.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"example.com/pagarme-gateway/pkg/config"
	"example.com/pagarme-gateway/pkg/db"
	"example.com/pagarme-gateway/pkg/healthcheck"
	"example.com/pagarme-gateway/pkg/logger"
	"example.com/pagarme-gateway/pkg/metrics"
	"example.com/pagarme-gateway/pkg/payment"
	"example.com/pagarme-gateway/pkg/tracing"
	"example.com/pagarme-gateway/pkg/webhook"
	"example.com/pagarme-gateway/services/gateway/internal/handler"
	"example.com/pagarme-gateway/services/gateway/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Ошибка загрузки конфигурации")
	}

	logger.Init(logger.Config{
		Level:   cfg.App.LogLevel,
		Pretty:  cfg.App.LogPretty,
		Service: cfg.App.Name,
	})

	logger.Info().
		Str("env", cfg.App.Env).
		Str("mode", cfg.Pagarme.ClientMode).
		Msg("Запуск Pagar.me gateway")

	// === Observability: Tracing ===

	shutdownTracing, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.App.Name,
		Environment:    cfg.App.Env,
		JaegerEndpoint: cfg.Jaeger.OTLPEndpoint(),
		Enabled:        cfg.Jaeger.Enabled,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Не удалось инициализировать tracing")
	}

	// === Redis (rate limiting) ===

	redisClient, err := db.ConnectRedis(context.Background(), cfg.Redis)
	if err != nil {
		// rate limiter работает в режиме fail-open, старт не блокируем
		logger.Warn().Err(err).Msg("Redis недоступен, rate limiting пропускает запросы")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Ошибка закрытия Redis")
		}
	}()

	readiness := healthcheck.Composite(
		healthcheck.Named("redis", healthcheck.Redis(redisClient)),
	)

	// === Metrics ===

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Addr(), cfg.App.Name,
			metrics.WithReadinessCheck(metrics.ReadinessChecker(readiness)))
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Error().Err(err).Msg("Ошибка Metrics Server")
			}
		}()
	}

	// === Доменные компоненты ===

	validator, err := webhook.NewValidator(cfg.WebhookValidatorConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("Ошибка настройки проверки webhooks")
	}
	if cfg.Webhook.ValidateSignature {
		logger.Info().Str("secret", validator.SecretMasked()).Msg("Проверка HMAC подписи webhooks включена")
	}

	webhookMW := middleware.NewWebhookMiddleware(middleware.WebhookConfig{
		Validator:    validator,
		Skip:         cfg.SkipWebhookValidation(),
		Debug:        cfg.DebugResponses(),
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})
	if cfg.SkipWebhookValidation() {
		logger.Warn().Msg("Проверка webhooks отключена")
	}

	assembler := payment.NewAssembler(cfg.AssemblerConfig())

	var rateLimitMW *middleware.RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		rateLimitMW = middleware.NewRateLimitMiddleware(middleware.RateLimitConfig{
			Redis:  redisClient,
			Limit:  cfg.RateLimit.Requests,
			Window: cfg.RateLimit.Window,
		})
		logger.Info().
			Int("limit", cfg.RateLimit.Requests).
			Dur("window", cfg.RateLimit.Window).
			Msg("Rate limiting включён")
	}

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:    cfg.App.Name,
		Assembler:      assembler,
		WebhookMW:      webhookMW,
		RateLimitMW:    rateLimitMW,
		TracingMW:      middleware.NewTracingMiddleware(),
		ReadinessCheck: handler.ReadinessChecker(readiness),
		TrustedProxies: cfg.HTTP.TrustedProxies,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		Debug:          cfg.DebugResponses(),
	})

	// === HTTP сервер ===

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTP.Addr()).Msg("HTTP сервер запущен")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Ошибка HTTP сервера")
		}
	}()

	// === Graceful Shutdown ===

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Получен сигнал завершения, останавливаем сервер...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Ошибка при остановке сервера")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Ошибка остановки Metrics Server")
		}
	}

	if shutdownTracing != nil {
		if err := shutdownTracing(ctx); err != nil {
			logger.Error().Err(err).Msg("Ошибка остановки Tracing")
		}
	}

	logger.Info().Msg("Pagar.me gateway остановлен")
}
