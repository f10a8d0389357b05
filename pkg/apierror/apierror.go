// Package apierror превращает неуспешные ответы Pagar.me в типизированные ошибки.
//
// Каждая ошибка несёт HTTP статус, сообщение из body.message, ошибки полей
// из body.errors и идентификатор запроса из заголовков ответа.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
)

// DefaultMessage — сообщение, если в теле ответа нет message.
const DefaultMessage = "An error occurred with Pagarme API"

// maxBodySize — сколько байт тела ответа читается при разборе.
const maxBodySize = 1 << 20

// requestIDHeaders — заголовки с идентификатором запроса в порядке приоритета.
var requestIDHeaders = []string{"x-request-id", "X-Request-Id", "request-id", "Request-Id"}

// Kind — класс ошибки по HTTP статусу.
type Kind string

const (
	KindBadRequest         Kind = "bad_request"
	KindAuthentication     Kind = "authentication"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindPreconditionFailed Kind = "precondition_failed"
	KindValidation         Kind = "validation"
	KindTooManyRequests    Kind = "too_many_requests"
	KindGeneric            Kind = "pagarme"
)

// Sentinel ошибки для errors.Is.
var (
	ErrBadRequest         = errors.New("некорректный запрос к Pagar.me")
	ErrAuthentication     = errors.New("ошибка аутентификации в Pagar.me")
	ErrForbidden          = errors.New("доступ к ресурсу Pagar.me запрещён")
	ErrNotFound           = errors.New("ресурс Pagar.me не найден")
	ErrPreconditionFailed = errors.New("не выполнено предусловие запроса к Pagar.me")
	ErrValidation         = errors.New("Pagar.me отклонил данные запроса")
	ErrTooManyRequests    = errors.New("превышен лимит запросов к Pagar.me")
	ErrPagarme            = errors.New("ошибка Pagar.me")
)

var kindSentinels = map[Kind]error{
	KindBadRequest:         ErrBadRequest,
	KindAuthentication:     ErrAuthentication,
	KindForbidden:          ErrForbidden,
	KindNotFound:           ErrNotFound,
	KindPreconditionFailed: ErrPreconditionFailed,
	KindValidation:         ErrValidation,
	KindTooManyRequests:    ErrTooManyRequests,
	KindGeneric:            ErrPagarme,
}

// KindForStatus возвращает класс ошибки для HTTP статуса.
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusPreconditionFailed:
		return KindPreconditionFailed
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindTooManyRequests
	}
	return KindGeneric
}

// IsRetryableStatus — статусы, которые транспорт повторяет автоматически: 429 и 5xx.
func IsRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// Error — ошибка ответа Pagar.me.
type Error struct {
	Kind      Kind
	Status    int
	Message   string
	RequestID string

	fields map[string][]string
}

func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("pagarme %d: %s (request_id=%s)", e.Status, e.Message, e.RequestID)
	}
	return fmt.Sprintf("pagarme %d: %s", e.Status, e.Message)
}

// Unwrap возвращает sentinel ошибку класса.
func (e *Error) Unwrap() error {
	return kindSentinels[e.Kind]
}

// Errors возвращает копию ошибок полей.
func (e *Error) Errors() map[string][]string {
	out := make(map[string][]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Fields возвращает имена полей с ошибками в алфавитном порядке.
func (e *Error) Fields() []string {
	out := make([]string, 0, len(e.fields))
	for k := range e.fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// HasError возвращает true, если для поля есть ошибка.
func (e *Error) HasError(field string) bool {
	_, ok := e.fields[field]
	return ok
}

// GetError возвращает первое сообщение для поля или пустую строку.
func (e *Error) GetError(field string) string {
	if msgs := e.fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// FromResponse собирает ошибку из статуса, заголовков и тела ответа.
// Тело может быть пустым или не-JSON: тогда используется DefaultMessage.
func FromResponse(status int, header http.Header, body []byte) *Error {
	e := &Error{
		Kind:      KindForStatus(status),
		Status:    status,
		Message:   DefaultMessage,
		RequestID: requestID(header),
		fields:    map[string][]string{},
	}

	var parsed struct {
		Message string          `json:"message"`
		Errors  json.RawMessage `json:"errors"`
	}
	if len(body) == 0 || json.Unmarshal(body, &parsed) != nil {
		return e
	}

	if parsed.Message != "" {
		e.Message = parsed.Message
	}
	e.fields = parseFieldErrors(parsed.Errors)
	return e
}

// FromHTTPResponse читает тело ответа (не больше 1 МБ) и собирает ошибку.
// Тело не закрывается: это делает вызывающий.
func FromHTTPResponse(resp *http.Response) (*Error, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("чтение тела ответа Pagar.me: %w", err)
	}
	return FromResponse(resp.StatusCode, resp.Header, body), nil
}

func requestID(header http.Header) string {
	for _, name := range requestIDHeaders {
		if v := header.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// parseFieldErrors разбирает body.errors. Поддерживаемые формы:
//
//	{"field": "message"}
//	{"field": ["message", ...]}
//	[{"field": "...", "message": "..."}] или ["message", ...]
func parseFieldErrors(raw json.RawMessage) map[string][]string {
	out := map[string][]string{}
	if len(raw) == 0 {
		return out
	}

	var byField map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err == nil {
		for field, v := range byField {
			if msgs := messages(v); len(msgs) > 0 {
				out[field] = msgs
			}
		}
		return out
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return out
	}
	for i, item := range list {
		var entry struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		}
		if json.Unmarshal(item, &entry) == nil && entry.Message != "" {
			field := entry.Field
			if field == "" {
				field = strconv.Itoa(i)
			}
			out[field] = append(out[field], entry.Message)
			continue
		}
		if msgs := messages(item); len(msgs) > 0 {
			key := strconv.Itoa(i)
			out[key] = append(out[key], msgs...)
		}
	}
	return out
}

func messages(raw json.RawMessage) []string {
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}
