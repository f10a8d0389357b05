package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"example.com/pagarme-gateway/pkg/payment"
	"example.com/pagarme-gateway/pkg/tracing"
	"example.com/pagarme-gateway/services/gateway/internal/httputil"
)

// FeeHandler готовит запросы к калькулятору комиссий Pagar.me.
type FeeHandler struct{}

// NewFeeHandler создаёт обработчик.
func NewFeeHandler() *FeeHandler {
	return &FeeHandler{}
}

// Validate обрабатывает POST /api/v1/fees/validate: возвращает нормализованный
// запрос для transactions/fee-calculator или 422 со списком ошибок.
func (h *FeeHandler) Validate(c *gin.Context) {
	_, span := tracing.StartSpan(c.Request.Context(), "fee.validate")
	defer span.End()

	body, err := httputil.ReadBody(c, 0)
	if err != nil {
		tracing.RecordError(span, err)
		HandleError(c, err, "ValidateFee")
		return
	}

	req, err := payment.ParseFeeRequest(body)
	if err == nil {
		err = req.Prepare()
	}
	if err != nil {
		tracing.RecordError(span, err)
		HandleError(c, err, "ValidateFee")
		return
	}

	span.SetAttributes(
		attribute.String("fee.card_brand", req.CreditCard.CardBrand),
		attribute.Int("fee.installments", req.CreditCard.Installments),
	)
	c.JSON(http.StatusOK, req)
}
