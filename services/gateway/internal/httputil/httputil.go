// Package httputil содержит вспомогательные функции для HTTP обработки.
package httputil

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

// PreviewLength — сколько символов тела попадает в лог.
const PreviewLength = 200

// bodyKey — ключ gin.Context для уже прочитанного тела.
const bodyKey = "raw_body"

// ReadBody читает тело запроса не больше limit байт и возвращает его в
// c.Request.Body, чтобы следующий handler мог прочитать его снова.
// Повторный вызов отдаёт тело из gin.Context без чтения.
func ReadBody(c *gin.Context, limit int64) ([]byte, error) {
	if v, ok := c.Get(bodyKey); ok {
		return v.([]byte), nil
	}
	if c.Request.Body == nil {
		return nil, nil
	}

	reader := c.Request.Body
	if limit > 0 {
		reader = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	c.Set(bodyKey, body)
	return body, nil
}

// IsTooLarge сообщает, что чтение тела прервано лимитом http.MaxBytesReader.
func IsTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// Preview возвращает первые n символов тела для логов, не разрывая UTF-8.
func Preview(body []byte, n int) string {
	if utf8.RuneCount(body) <= n {
		return string(body)
	}

	i := 0
	for r := 0; r < n; r++ {
		_, size := utf8.DecodeRune(body[i:])
		i += size
	}
	return string(body[:i])
}
