// Package middleware содержит HTTP middleware шлюза.
package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"example.com/pagarme-gateway/pkg/logger"
)

// defaultKeyPrefix — префикс ключей счётчиков в Redis.
const defaultKeyPrefix = "pagarme-gateway:rate:"

// fixedWindow атомарно увеличивает счётчик и ставит TTL на первом запросе окна.
var fixedWindow = redis.NewScript(`
	local current = redis.call("INCR", KEYS[1])
	if current == 1 then
		redis.call("EXPIRE", KEYS[1], ARGV[1])
	end
	return current
`)

// RateLimitMiddleware ограничивает количество запросов с одного IP за окно.
// Счётчики хранятся в Redis; при недоступности Redis запросы пропускаются.
type RateLimitMiddleware struct {
	redis     redis.UniversalClient
	limit     int
	window    time.Duration
	keyPrefix string
}

// RateLimitConfig — конфигурация rate limiter.
type RateLimitConfig struct {
	Redis     redis.UniversalClient
	Limit     int           // по умолчанию 100
	Window    time.Duration // по умолчанию 1 минута
	KeyPrefix string
}

// NewRateLimitMiddleware создаёт middleware для rate limiting.
func NewRateLimitMiddleware(cfg RateLimitConfig) *RateLimitMiddleware {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}

	return &RateLimitMiddleware{
		redis:     cfg.Redis,
		limit:     cfg.Limit,
		window:    cfg.Window,
		keyPrefix: cfg.KeyPrefix,
	}
}

// Handle возвращает Gin handler function для middleware.
func (m *RateLimitMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		clientIP := c.ClientIP()

		allowed, remaining, err := m.checkLimit(c, m.keyPrefix+clientIP)
		if err != nil {
			// fail-open: недоступный Redis не должен останавливать приём webhooks
			log.Warn().Err(err).Msg("Ошибка проверки rate limit")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(m.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(m.window).Unix(), 10))

		if !allowed {
			log.Warn().
				Str("client_ip", clientIP).
				Int("limit", m.limit).
				Msg("Rate limit превышен")

			seconds := int(m.window.Seconds())
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": fmt.Sprintf("Превышен лимит запросов. Попробуйте через %d секунд", seconds),
			})
			return
		}

		c.Next()
	}
}

// checkLimit увеличивает счётчик и возвращает (разрешён ли запрос, остаток лимита, ошибка).
func (m *RateLimitMiddleware) checkLimit(c *gin.Context, key string) (bool, int, error) {
	windowSec := int(m.window.Seconds())
	if windowSec < 1 {
		windowSec = 1
	}

	result, err := fixedWindow.Run(c.Request.Context(), m.redis, []string{key}, windowSec).Int()
	if err != nil {
		return true, m.limit, err
	}

	return result <= m.limit, max(m.limit-result, 0), nil
}
