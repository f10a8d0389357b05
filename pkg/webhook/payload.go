package webhook

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// HookIDPrefix — префикс идентификатора webhook в Pagar.me.
const HookIDPrefix = "hook_"

var requiredFields = []string{"id", "type", "created_at", "data"}

// ValidatePayload разбирает тело запроса и проверяет структуру.
// Ошибка возвращается только для невалидного JSON.
func (v *Validator) ValidatePayload(body []byte) (bool, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, err
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return false, nil
	}
	return ValidatePayloadStructure(obj), nil
}

// ValidatePayloadStructure проверяет обязательные поля webhook Pagar.me:
// id с префиксом hook_, type вида "resource.action", created_at и data.
// Если передан account, в нём обязательны id и name.
func ValidatePayloadStructure(payload map[string]any) bool {
	for _, field := range requiredFields {
		if payload[field] == nil {
			return false
		}
	}

	id, ok := payload["id"].(string)
	if !ok || !strings.HasPrefix(id, HookIDPrefix) {
		return false
	}

	eventType, ok := payload["type"].(string)
	if !ok || !strings.Contains(eventType, ".") {
		return false
	}

	if account, present := payload["account"]; present && account != nil {
		acc, ok := account.(map[string]any)
		if !ok || acc["id"] == nil || acc["name"] == nil {
			return false
		}
	}

	return true
}

// Account — аккаунт Pagar.me, от имени которого пришло событие.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event — разобранное уведомление Pagar.me.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	CreatedAt string          `json:"created_at"`
	Data      json.RawMessage `json:"data"`
	Account   *Account        `json:"account,omitempty"`
}

// ParseEvent разбирает тело webhook. Структура не проверяется:
// вызывайте после ValidateWebhook.
func ParseEvent(body []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("разбор webhook: %w", err)
	}
	return &e, nil
}

// Resource — часть type до первой точки (order, charge, subscription).
func (e *Event) Resource() string {
	resource, _, _ := strings.Cut(e.Type, ".")
	return resource
}

// Action — часть type после первой точки (paid, created, canceled).
func (e *Event) Action() string {
	_, action, _ := strings.Cut(e.Type, ".")
	return action
}

// Time разбирает created_at. Pagar.me присылает RFC 3339 или формат без зоны (UTC).
func (e *Event) Time() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", e.CreatedAt)
}
