package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FeeResponsibility — кто оплачивает комиссию.
type FeeResponsibility string

const (
	FeeBuyer    FeeResponsibility = "buyer"
	FeeMerchant FeeResponsibility = "merchant"
)

// CaptureEcommerce — способ захвата по умолчанию.
const CaptureEcommerce = "ecommerce"

// FeeRequest — запрос к transactions/fee-calculator.
type FeeRequest struct {
	Amount            int64             `json:"amount" validate:"gte=1"`
	FeeResponsibility FeeResponsibility `json:"fee_responsibility" validate:"oneof=buyer merchant"`
	CreditCard        *FeeCreditCard    `json:"credit_card" validate:"required"`
}

// FeeCreditCard — параметры карты для расчёта комиссии.
type FeeCreditCard struct {
	Installments  int    `json:"installments" validate:"between=1 12"`
	CardBrand     string `json:"card_brand" validate:"oneof=amex aura diners discover elo hipercard jcb mastercard visa"`
	CaptureMethod string `json:"capture_method" validate:"oneof=ecommerce emv magstripe emv_contactless magstripe_contactless"`
}

// feeMessages — сообщения об ошибках по пути поля.
var feeMessages = map[string]string{
	"FeeRequest.Amount":                   "amount must be an integer in cents and >= 1",
	"FeeRequest.FeeResponsibility":        `fee_responsibility must be "buyer" or "merchant"`,
	"FeeRequest.CreditCard":               "credit_card must be an object",
	"FeeRequest.CreditCard.Installments":  "credit_card.installments must be an integer between 1 and 12",
	"FeeRequest.CreditCard.CardBrand":     "credit_card.card_brand is invalid",
	"FeeRequest.CreditCard.CaptureMethod": "credit_card.capture_method is invalid",
}

// ParseFeeRequest разбирает JSON запроса калькулятора.
// Дробная сумма или строка вместо числа дают ErrInvalidArgument.
func ParseFeeRequest(data []byte) (*FeeRequest, error) {
	var r FeeRequest
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return &r, nil
}

// Normalize приводит бренд и сторону комиссии к нижнему регистру
// и подставляет capture_method по умолчанию.
func (r *FeeRequest) Normalize() {
	r.FeeResponsibility = FeeResponsibility(strings.ToLower(string(r.FeeResponsibility)))
	if r.CreditCard == nil {
		return
	}
	r.CreditCard.CardBrand = strings.ToLower(r.CreditCard.CardBrand)
	if r.CreditCard.CaptureMethod == "" {
		r.CreditCard.CaptureMethod = CaptureEcommerce
	}
}

// Validate проверяет нормализованный запрос.
func (r *FeeRequest) Validate() []string {
	var errs errorList

	err := fieldRules.Struct(r)
	if err == nil {
		return errs.list()
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs.add(err.Error())
		return errs.list()
	}
	for _, fe := range ve {
		if msg, ok := feeMessages[fe.StructNamespace()]; ok {
			errs.add(msg)
			continue
		}
		errs.add(fieldMessage(fe))
	}
	return errs.list()
}

// Prepare нормализует запрос и возвращает *ValidationError, если он некорректен.
func (r *FeeRequest) Prepare() error {
	r.Normalize()
	return Check(r)
}
