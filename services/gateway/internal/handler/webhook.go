package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"example.com/pagarme-gateway/pkg/logger"
	"example.com/pagarme-gateway/pkg/metrics"
	"example.com/pagarme-gateway/pkg/tracing"
	"example.com/pagarme-gateway/pkg/webhook"
	"example.com/pagarme-gateway/services/gateway/internal/httputil"
)

// WebhookHandler принимает уведомления Pagar.me после WebhookMiddleware.
type WebhookHandler struct {
	events EventHandler
}

// NewWebhookHandler создаёт обработчик. Без events событие только логируется.
func NewWebhookHandler(events EventHandler) *WebhookHandler {
	if events == nil {
		events = EventHandlerFunc(logEvent)
	}
	return &WebhookHandler{events: events}
}

// WebhookResponse — ответ на принятый webhook.
type WebhookResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// Receive обрабатывает POST /webhooks/pagarme.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := httputil.ReadBody(c, 0)
	if err != nil {
		if httputil.IsTooLarge(err) {
			HandleError(c, err, "Webhook")
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_payload", Message: "Unreadable payload"})
		return
	}

	event, err := webhook.ParseEvent(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_payload", Message: webhook.ReasonInvalidJSON})
		return
	}

	// все логи обработки события связаны через hook id
	ctx := logger.WithCorrelationID(c.Request.Context(), event.ID)
	ctx, span := tracing.StartSpan(ctx, "webhook.handle",
		attribute.String("pagarme.hook_id", event.ID),
		attribute.String("pagarme.event_type", event.Type),
	)
	defer span.End()

	metrics.WebhookEvents.WithLabelValues(webhook.EventTypeLabel(event.Type)).Inc()

	if err := h.events.HandleEvent(ctx, event); err != nil {
		tracing.RecordError(span, err)
		c.Request = c.Request.WithContext(ctx)
		HandleError(c, err, "Webhook")
		return
	}

	c.JSON(http.StatusOK, WebhookResponse{Status: "received", ID: event.ID})
}

func logEvent(ctx context.Context, e *webhook.Event) error {
	log := logger.FromContext(ctx)
	ev := log.Info().
		Str("hook_id", e.ID).
		Str("type", e.Type).
		Str("resource", e.Resource()).
		Str("action", e.Action())
	if e.Account != nil {
		ev = ev.Str("account_id", e.Account.ID)
	}
	ev.Msg("Pagarme webhook received")
	return nil
}
