package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"example.com/pagarme-gateway/pkg/metrics"
	"example.com/pagarme-gateway/pkg/payment"
	"example.com/pagarme-gateway/pkg/tracing"
	"example.com/pagarme-gateway/services/gateway/internal/httputil"
)

// OrderHandler проверяет заказы и собирает payload для Pagar.me.
type OrderHandler struct {
	assembler OrderAssembler
}

// NewOrderHandler создаёт обработчик заказов.
func NewOrderHandler(assembler OrderAssembler) *OrderHandler {
	return &OrderHandler{assembler: assembler}
}

// ValidateOrderResponse — результат проверки заказа.
type ValidateOrderResponse struct {
	Valid       bool     `json:"valid"`
	Mode        string   `json:"mode"`
	Errors      []string `json:"errors"`
	TotalAmount int64    `json:"total_amount"`
	SubMerchant bool     `json:"submerchant"`
}

// Validate обрабатывает POST /api/v1/orders/validate.
// Невалидный заказ это 200 со списком ошибок; 400 только для неразбираемого JSON.
func (h *OrderHandler) Validate(c *gin.Context) {
	mode := string(h.assembler.Mode())
	_, span := tracing.StartSpan(c.Request.Context(), "order.validate", attribute.String("pagarme.mode", mode))
	defer span.End()

	order, err := h.parse(c)
	if err != nil {
		tracing.RecordError(span, err)
		HandleError(c, err, "ValidateOrder")
		return
	}

	prepared, errs := h.assembler.Prepare(order)
	metrics.RecordOrderValidation(mode, len(errs) == 0)
	span.SetAttributes(attribute.Int("order.validation_errors", len(errs)))

	if errs == nil {
		errs = []string{}
	}

	resp := ValidateOrderResponse{
		Valid:  len(errs) == 0,
		Mode:   mode,
		Errors: errs,
	}
	if prepared != nil {
		resp.TotalAmount = prepared.TotalAmount()
		resp.SubMerchant = prepared.SubMerchant != nil
	}

	c.JSON(http.StatusOK, resp)
}

// Payload обрабатывает POST /api/v1/orders/payload: возвращает JSON,
// готовый к отправке в POST /orders, или 422 со списком ошибок.
func (h *OrderHandler) Payload(c *gin.Context) {
	mode := string(h.assembler.Mode())
	ctx, span := tracing.StartSpan(c.Request.Context(), "order.assemble", attribute.String("pagarme.mode", mode))
	defer span.End()

	order, err := h.parse(c)
	if err != nil {
		tracing.RecordError(span, err)
		HandleError(c, err, "AssembleOrder")
		return
	}

	payload, err := h.assembler.Assemble(ctx, order)
	metrics.RecordOrderValidation(mode, err == nil)
	if err != nil {
		tracing.RecordError(span, err)
		HandleError(c, err, "AssembleOrder")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *OrderHandler) parse(c *gin.Context) (*payment.Order, error) {
	body, err := httputil.ReadBody(c, 0)
	if err != nil {
		return nil, err
	}
	return payment.ParseOrder(body)
}
