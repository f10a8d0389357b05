package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"example.com/pagarme-gateway/pkg/apierror"
	"example.com/pagarme-gateway/pkg/decline"
	"example.com/pagarme-gateway/pkg/metrics"
	"example.com/pagarme-gateway/pkg/tracing"
	"example.com/pagarme-gateway/services/gateway/internal/httputil"
)

// Исходы разбора ответа Pagar.me.
const (
	OutcomeAPIError = "api_error"
	OutcomeDeclined = "declined"
	OutcomeOK       = "ok"
)

// failedStatuses — статусы платежа/заказа, означающие отказ.
var failedStatuses = map[string]bool{
	"failed":         true,
	"not_authorized": true,
}

// DeclineHandler разбирает ответы Pagar.me: коды ABECS, отказы и ошибки API.
type DeclineHandler struct{}

// NewDeclineHandler создаёт обработчик.
func NewDeclineHandler() *DeclineHandler {
	return &DeclineHandler{}
}

// ClassifyRequest — ответ Pagar.me, полученный вызывающим сервисом.
type ClassifyRequest struct {
	Status  int               `json:"status" binding:"required,min=100,max=599"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body"`
}

// APIErrorInfo — описание ошибки API Pagar.me.
type APIErrorInfo struct {
	Kind      apierror.Kind       `json:"kind"`
	Status    int                 `json:"status"`
	Message   string              `json:"message"`
	RequestID string              `json:"request_id,omitempty"`
	Retryable bool                `json:"retryable"`
	Fields    map[string][]string `json:"fields,omitempty"`
}

// ClassifyResponse — итог разбора.
type ClassifyResponse struct {
	Outcome  string               `json:"outcome"`
	Status   string               `json:"status,omitempty"`
	APIError *APIErrorInfo        `json:"api_error,omitempty"`
	Decline  *decline.DeclineInfo `json:"decline,omitempty"`
}

// Classify обрабатывает POST /api/v1/responses/classify.
//
// HTTP статус >= 400 разбирается как ошибка API. Успешный ответ с платежом
// или заказом в статусе failed разбирается как отказ эмитента.
func (h *DeclineHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if httputil.IsTooLarge(err) {
			HandleError(c, err, "Classify")
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	_, span := tracing.StartSpan(c.Request.Context(), "pagarme.response.classify",
		attribute.Int("pagarme.status", req.Status))
	defer span.End()

	if req.Status >= http.StatusBadRequest {
		header := make(http.Header, len(req.Headers))
		for k, v := range req.Headers {
			header.Set(k, v)
		}

		apiErr := apierror.FromResponse(req.Status, header, req.Body)
		metrics.APIErrors.WithLabelValues(string(apiErr.Kind)).Inc()

		c.JSON(http.StatusOK, ClassifyResponse{
			Outcome: OutcomeAPIError,
			APIError: &APIErrorInfo{
				Kind:      apiErr.Kind,
				Status:    apiErr.Status,
				Message:   apiErr.Message,
				RequestID: apiErr.RequestID,
				Retryable: apierror.IsRetryableStatus(apiErr.Status),
				Fields:    apiErr.Errors(),
			},
		})
		return
	}

	status, declined, err := parseResult(req.Body)
	if err != nil {
		tracing.RecordError(span, err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	if !failedStatuses[status] {
		c.JSON(http.StatusOK, ClassifyResponse{Outcome: OutcomeOK, Status: status})
		return
	}

	info := declined.Info()
	metrics.RecordDecline(string(info.Category), info.CanRetry)
	span.SetAttributes(
		attribute.String("abecs.code", info.AbecsCode),
		attribute.String("abecs.category", string(info.Category)),
	)

	c.JSON(http.StatusOK, ClassifyResponse{
		Outcome: OutcomeDeclined,
		Status:  status,
		Decline: &info,
	})
}

// parseResult определяет, заказ это или платёж, и разбирает отказ.
// Для заказа статус берётся из первого платежа, если он есть.
func parseResult(body []byte) (string, *decline.TransactionDeclined, error) {
	var head struct {
		Status  string            `json:"status"`
		Charges []json.RawMessage `json:"charges"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return "", nil, err
	}

	if head.Charges == nil {
		d, err := decline.ParseCharge(body)
		return head.Status, d, err
	}

	d, err := decline.ParseOrderResponse(body)
	if err != nil {
		return "", nil, err
	}

	status := head.Status
	if len(head.Charges) > 0 {
		var charge struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(head.Charges[0], &charge); err == nil && charge.Status != "" {
			status = charge.Status
		}
	}
	return status, d, nil
}

// ReturnCodesResponse — таблица кодов ABECS.
type ReturnCodesResponse struct {
	Codes []decline.Info `json:"codes"`
}

// ReturnCodes обрабатывает GET /api/v1/return-codes[?category=declined].
func (h *DeclineHandler) ReturnCodes(c *gin.Context) {
	category := decline.Category(c.Query("category"))

	out := make([]decline.Info, 0, len(decline.Codes()))
	for _, code := range decline.Codes() {
		info := decline.Describe(string(code))
		if category != "" && info.Category != category {
			continue
		}
		out = append(out, info)
	}

	c.JSON(http.StatusOK, ReturnCodesResponse{Codes: out})
}

// ReturnCode обрабатывает GET /api/v1/return-codes/:code.
// Неизвестный четырёхзначный код возвращается с known=false и категорией по первой цифре.
func (h *DeclineHandler) ReturnCode(c *gin.Context) {
	raw := c.Param("code")
	if !isReturnCode(raw) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_code",
			Message: "Return code must have 4 digits",
		})
		return
	}

	c.JSON(http.StatusOK, decline.Describe(raw))
}

func isReturnCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
