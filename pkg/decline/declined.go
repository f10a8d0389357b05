package decline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTransactionDeclined — транзакция отклонена эмитентом, эквайером или антифродом.
var ErrTransactionDeclined = errors.New("транзакция отклонена")

// DefaultMessage — сообщение, если в ответе нет ни одного текста отказа.
const DefaultMessage = "Transaction declined"

// GatewayResponse — поле gateway_response. Pagar.me присылает его строкой
// или объектом {"code": "...", "errors": [{"message": "..."}]}.
type GatewayResponse struct {
	Code    string
	Message string
}

// UnmarshalJSON принимает обе формы.
func (g *GatewayResponse) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &g.Message)
	}

	var obj struct {
		Code   json.Number `json:"code"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	g.Code = obj.Code.String()
	if len(obj.Errors) > 0 {
		g.Message = obj.Errors[0].Message
	}
	return nil
}

// LastTransaction — последняя транзакция платежа.
type LastTransaction struct {
	ID                  string           `json:"id"`
	Status              string           `json:"status"`
	AcquirerReturnCode  string           `json:"acquirer_return_code"`
	AcquirerMessage     string           `json:"acquirer_message"`
	GatewayResponseCode string           `json:"gateway_response_code"`
	GatewayResponse     *GatewayResponse `json:"gateway_response"`
}

// Charge — платёж из ответа Pagar.me (используемые поля).
type Charge struct {
	ID              string           `json:"id"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	Amount          int64            `json:"amount"`
	LastTransaction *LastTransaction `json:"last_transaction"`
}

// OrderResponse — заказ из ответа Pagar.me (используемые поля).
type OrderResponse struct {
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Charges []Charge `json:"charges"`
}

// TransactionDeclined — отказ по транзакции с разобранными кодами и сообщениями.
// Это не сбой транспорта, а бизнес-результат: вызывающий решает, повторять ли
// платёж, просить другую карту или отправить на ручную проверку.
type TransactionDeclined struct {
	Message            string
	AcquirerReturnCode string
	GatewayReturnCode  string
	AcquirerMessage    string
	GatewayMessage     string
	ChargeID           string

	// Code — код ABECS; пустой, если AcquirerReturnCode нет в таблице.
	Code Code
}

// FromCharge разбирает last_transaction платежа.
func FromCharge(c Charge) *TransactionDeclined {
	d := &TransactionDeclined{ChargeID: c.ID}

	if tx := c.LastTransaction; tx != nil {
		d.AcquirerReturnCode = tx.AcquirerReturnCode
		d.AcquirerMessage = tx.AcquirerMessage
		d.GatewayReturnCode = tx.GatewayResponseCode
		if tx.GatewayResponse != nil {
			d.GatewayMessage = tx.GatewayResponse.Message
			if d.GatewayReturnCode == "" {
				d.GatewayReturnCode = tx.GatewayResponse.Code
			}
		}
	}

	switch {
	case d.AcquirerMessage != "":
		d.Message = d.AcquirerMessage
	case d.GatewayMessage != "":
		d.Message = d.GatewayMessage
	default:
		d.Message = DefaultMessage
	}

	if code, ok := Classify(d.AcquirerReturnCode); ok {
		d.Code = code
	}
	return d
}

// FromOrderResponse разбирает первый платёж заказа.
func FromOrderResponse(o OrderResponse) *TransactionDeclined {
	if len(o.Charges) == 0 {
		return &TransactionDeclined{Message: DefaultMessage}
	}
	return FromCharge(o.Charges[0])
}

// ParseCharge разбирает JSON платежа.
func ParseCharge(data []byte) (*TransactionDeclined, error) {
	var c Charge
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("разбор платежа: %w", err)
	}
	return FromCharge(c), nil
}

// ParseOrderResponse разбирает JSON заказа.
func ParseOrderResponse(data []byte) (*TransactionDeclined, error) {
	var o OrderResponse
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("разбор заказа: %w", err)
	}
	return FromOrderResponse(o), nil
}

func (d *TransactionDeclined) Error() string {
	return d.Message
}

// Unwrap позволяет проверять отказ через errors.Is(err, ErrTransactionDeclined).
func (d *TransactionDeclined) Unwrap() error {
	return ErrTransactionDeclined
}

// HasCode возвращает true, если код эквайера найден в таблице ABECS.
func (d *TransactionDeclined) HasCode() bool {
	return d.Code != ""
}

// DeclineReason — понятная причина отказа: сообщение ABECS, затем сообщение
// эквайера, затем шлюза, затем общее сообщение.
func (d *TransactionDeclined) DeclineReason() string {
	switch {
	case d.HasCode():
		return d.Code.Message()
	case d.AcquirerMessage != "":
		return d.AcquirerMessage
	case d.GatewayMessage != "":
		return d.GatewayMessage
	}
	return d.Message
}

// CanRetry — без распознанного кода повтор запрещён.
func (d *TransactionDeclined) CanRetry() bool {
	return d.HasCode() && d.Code.CanRetry()
}

// IsFraudRelated возвращает true для подозрения на мошенничество и отказа антифрода.
func (d *TransactionDeclined) IsFraudRelated() bool {
	return d.HasCode() && d.Code.IsFraudRelated()
}

// IsInsufficientFunds возвращает true при недостатке средств.
func (d *TransactionDeclined) IsInsufficientFunds() bool {
	return d.Code == CodeDeclinedInsufficientFunds
}

// IsInvalidCard возвращает true, если нужна другая карта.
func (d *TransactionDeclined) IsInvalidCard() bool {
	return d.HasCode() && d.Code.IsInvalidCard()
}

// Category — категория распознанного кода, иначе по первой цифре сырого кода.
func (d *TransactionDeclined) Category() Category {
	if d.HasCode() {
		return d.Code.Category()
	}
	return CategoryOf(d.AcquirerReturnCode)
}

// DeclineInfo — полное описание отказа.
type DeclineInfo struct {
	AbecsCode       string   `json:"abecs_code,omitempty"`
	AbecsMessage    string   `json:"abecs_message,omitempty"`
	AcquirerCode    string   `json:"acquirer_code,omitempty"`
	AcquirerMessage string   `json:"acquirer_message,omitempty"`
	GatewayCode     string   `json:"gateway_code,omitempty"`
	GatewayMessage  string   `json:"gateway_message,omitempty"`
	Reason          string   `json:"reason"`
	Category        Category `json:"category"`
	CanRetry        bool     `json:"can_retry"`
	IsFraud         bool     `json:"is_fraud"`
}

// Info собирает DeclineInfo.
func (d *TransactionDeclined) Info() DeclineInfo {
	info := DeclineInfo{
		AcquirerCode:    d.AcquirerReturnCode,
		AcquirerMessage: d.AcquirerMessage,
		GatewayCode:     d.GatewayReturnCode,
		GatewayMessage:  d.GatewayMessage,
		Reason:          d.DeclineReason(),
		Category:        d.Category(),
		CanRetry:        d.CanRetry(),
		IsFraud:         d.IsFraudRelated(),
	}
	if d.HasCode() {
		info.AbecsCode = string(d.Code)
		info.AbecsMessage = d.Code.Message()
	}
	return info
}
