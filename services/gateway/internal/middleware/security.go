package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes — лимит тела запроса, если он не задан в конфигурации.
const DefaultMaxBodyBytes int64 = 1 << 20

// SecurityHeaders добавляет заголовки безопасности ко всем ответам.
// Ответы шлюза содержат данные заказов и причины отказов, поэтому не кешируются.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Cache-Control", "no-store")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Del("X-Powered-By")

		c.Next()
	}
}

// BodyLimit ограничивает размер тела запроса. Чтение сверх лимита
// возвращает *http.MaxBytesError, обработчики отвечают на него 413.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
