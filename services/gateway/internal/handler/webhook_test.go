package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/pagarme-gateway/pkg/logger"
	"example.com/pagarme-gateway/pkg/webhook"
)

const orderPaidHook = `{
	"id": "hook_RyEKQO789TRpZjv5",
	"account": {"id": "acc_jkRQLPLU6SDl1Nr5", "name": "Loja Exemplo"},
	"type": "order.paid",
	"created_at": "2025-03-10T12:00:00",
	"data": {"id": "or_56aK8pJHxHPe0QJB", "status": "paid"}
}`

func TestWebhookHandler_Receive(t *testing.T) {
	t.Run("событие передаётся обработчику", func(t *testing.T) {
		var got *webhook.Event
		var correlationID string
		h := NewWebhookHandler(EventHandlerFunc(func(ctx context.Context, e *webhook.Event) error {
			got = e
			correlationID = logger.CorrelationIDFromContext(ctx)
			return nil
		}))
		r := newTestEngine(http.MethodPost, "/webhooks/pagarme", h.Receive)

		w := postJSON(r, "/webhooks/pagarme", []byte(orderPaidHook))
		require.Equal(t, http.StatusOK, w.Code)

		var resp WebhookResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "received", resp.Status)
		assert.Equal(t, "hook_RyEKQO789TRpZjv5", resp.ID)

		require.NotNil(t, got)
		assert.Equal(t, "order", got.Resource())
		assert.Equal(t, "paid", got.Action())
		assert.Equal(t, "hook_RyEKQO789TRpZjv5", correlationID)
	})

	t.Run("без обработчика событие логируется", func(t *testing.T) {
		r := newTestEngine(http.MethodPost, "/webhooks/pagarme", NewWebhookHandler(nil).Receive)

		w := postJSON(r, "/webhooks/pagarme", []byte(orderPaidHook))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ошибка обработчика → 500 для повторной доставки", func(t *testing.T) {
		h := NewWebhookHandler(EventHandlerFunc(func(context.Context, *webhook.Event) error {
			return errors.New("queue unavailable")
		}))
		r := newTestEngine(http.MethodPost, "/webhooks/pagarme", h.Receive)

		w := postJSON(r, "/webhooks/pagarme", []byte(orderPaidHook))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("битый JSON", func(t *testing.T) {
		r := newTestEngine(http.MethodPost, "/webhooks/pagarme", NewWebhookHandler(nil).Receive)

		w := postJSON(r, "/webhooks/pagarme", []byte(`{"id":`))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), webhook.ReasonInvalidJSON)
	})
}
