// Package handler содержит HTTP обработчики шлюза.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/pagarme-gateway/pkg/apierror"
	"example.com/pagarme-gateway/pkg/decline"
	"example.com/pagarme-gateway/pkg/logger"
	"example.com/pagarme-gateway/pkg/payment"
	"example.com/pagarme-gateway/services/gateway/internal/httputil"
)

// ErrorResponse — стандартный формат ошибки API.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message"`
	Errors  []string             `json:"errors,omitempty"`
	Fields  map[string][]string  `json:"fields,omitempty"`
	Decline *decline.DeclineInfo `json:"decline,omitempty"`
}

const internalMessage = "Внутренняя ошибка сервера"

// HandleError преобразует доменную ошибку в HTTP ответ.
// err не должен быть nil: это баг в вызывающем коде.
func HandleError(c *gin.Context, err error, method string) {
	log := logger.FromContext(c.Request.Context())

	if err == nil {
		log.Error().Str("method", method).Msg("HandleError вызван с nil ошибкой")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: internalMessage})
		return
	}

	var (
		validationErr *payment.ValidationError
		declined      *decline.TransactionDeclined
		apiErr        *apierror.Error
	)

	switch {
	case httputil.IsTooLarge(err):
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "payload_too_large",
			Message: "Payload too large",
		})

	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_failed",
			Message: "Validation failed",
			Errors:  validationErr.Errors,
		})

	case errors.Is(err, payment.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_argument",
			Message: err.Error(),
		})

	case errors.As(err, &declined):
		info := declined.Info()
		c.JSON(http.StatusPaymentRequired, ErrorResponse{
			Error:   "transaction_declined",
			Message: declined.Error(),
			Decline: &info,
		})

	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		switch apiErr.Kind {
		case apierror.KindTooManyRequests:
			status = http.StatusServiceUnavailable
			c.Header("Retry-After", "1")
		case apierror.KindValidation, apierror.KindBadRequest:
			status = http.StatusUnprocessableEntity
		}
		log.Warn().
			Err(err).
			Str("method", method).
			Int("pagarme_status", apiErr.Status).
			Str("pagarme_request_id", apiErr.RequestID).
			Msg("Ошибка Pagar.me")
		c.JSON(status, ErrorResponse{
			Error:   "pagarme_" + string(apiErr.Kind),
			Message: apiErr.Message,
			Fields:  apiErr.Errors(),
		})

	default:
		log.Error().Err(err).Str("method", method).Msg("Внутренняя ошибка")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: internalMessage})
	}
}
