package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/pagarme-gateway/pkg/logger"
	"example.com/pagarme-gateway/pkg/metrics"
	"example.com/pagarme-gateway/pkg/webhook"
	"example.com/pagarme-gateway/services/gateway/internal/httputil"
)

// WebhookValidator — проверка входящего webhook (реализуется *webhook.Validator).
type WebhookValidator interface {
	ValidateWebhook(r webhook.Request) webhook.Result
}

// WebhookConfig — настройки middleware проверки webhooks.
type WebhookConfig struct {
	Validator WebhookValidator

	// Skip отключает проверку (выключена в конфиге или локальное окружение).
	Skip bool

	// Debug добавляет причины отказа в ответ 401.
	Debug bool

	MaxBodyBytes int64
}

// WebhookMiddleware пропускает к обработчику только webhooks, прошедшие проверку.
type WebhookMiddleware struct {
	validator    WebhookValidator
	skip         bool
	debug        bool
	maxBodyBytes int64
}

// NewWebhookMiddleware создаёт middleware проверки webhooks.
func NewWebhookMiddleware(cfg WebhookConfig) *WebhookMiddleware {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &WebhookMiddleware{
		validator:    cfg.Validator,
		skip:         cfg.Skip || cfg.Validator == nil,
		debug:        cfg.Debug,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

// Handle возвращает Gin handler function для middleware.
func (m *WebhookMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.skip {
			metrics.RecordWebhook("skipped", nil)
			c.Next()
			return
		}

		log := logger.FromContext(c.Request.Context())

		body, err := httputil.ReadBody(c, m.maxBodyBytes)
		if err != nil {
			if httputil.IsTooLarge(err) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
				return
			}
			log.Warn().Err(err).Msg("Не удалось прочитать тело webhook")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Unreadable payload"})
			return
		}

		result := m.validator.ValidateWebhook(webhook.Request{
			IP:     c.ClientIP(),
			Body:   body,
			Header: c.Request.Header,
		})

		if !result.Valid {
			metrics.RecordWebhook("rejected", result.Codes)

			log.Warn().
				Str("ip", c.ClientIP()).
				Str("url", c.Request.URL.String()).
				Str("user_agent", c.Request.UserAgent()).
				Strs("reasons", result.Reasons).
				Str("payload_preview", httputil.Preview(body, httputil.PreviewLength)).
				Msg("Pagarme webhook validation failed")

			var reasons []string
			if m.debug {
				reasons = result.Reasons
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Webhook validation failed",
				"reasons": reasons,
			})
			return
		}

		metrics.RecordWebhook("accepted", nil)
		c.Next()
	}
}
