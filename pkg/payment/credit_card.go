package payment

import "encoding/json"

// OperationType — режим авторизации кредитной карты.
type OperationType string

const (
	OperationAuthAndCapture OperationType = "auth_and_capture"
	OperationAuthOnly       OperationType = "auth_only"
	OperationPreAuth        OperationType = "pre_auth"
)

// Значения recurrence_cycle.
const (
	RecurrenceFirst      = "first"
	RecurrenceSubsequent = "subsequent"
)

// Ограничения длины statement_descriptor.
const (
	MaxStatementDescriptor    = 22
	MaxStatementDescriptorPSP = 13
)

// CreditCardPayment — данные оплаты кредитной картой.
//
// Карта идентифицируется ровно одним способом: Card, CardID, CardToken,
// NetworkToken или Payload (Google Pay).
type CreditCardPayment struct {
	Installments         int             `json:"installments"`
	StatementDescriptor  string          `json:"statement_descriptor,omitempty"`
	OperationType        OperationType   `json:"operation_type"`
	Card                 *Card           `json:"card,omitempty"`
	CardID               string          `json:"card_id,omitempty"`
	CardToken            string          `json:"card_token,omitempty"`
	NetworkToken         *NetworkToken   `json:"network_token,omitempty"`
	RecurrenceCycle      string          `json:"recurrence_cycle,omitempty"`
	MerchantCategoryCode int             `json:"merchant_category_code,omitempty"`
	Authentication       *Authentication `json:"authentication,omitempty"`
	AutoRecovery         *bool           `json:"auto_recovery,omitempty"`
	Payload              *Payload        `json:"payload,omitempty"`
	PaymentType          string          `json:"payment_type,omitempty"`
	FundingSource        string          `json:"funding_source,omitempty"`
	InitiatedType        string          `json:"initiated_type,omitempty"`
	RecurrenceModel      string          `json:"recurrence_model,omitempty"`
	Channel              string          `json:"channel,omitempty"`
	ExtendedLimitEnabled *bool           `json:"extended_limit_enabled,omitempty"`
	ExtendedLimitCode    string          `json:"extended_limit_code,omitempty"`
	Metadata             Metadata        `json:"metadata,omitempty"`
}

// NewCreditCardPayment — оплата новой картой или card_id/token внутри Card.
func NewCreditCardPayment(card *Card, installments int) *CreditCardPayment {
	return &CreditCardPayment{Card: card, Installments: installments}
}

// NewCreditCardPaymentByReference — оплата по строковой ссылке на карту.
func NewCreditCardPaymentByReference(ref string, installments int) *CreditCardPayment {
	id, token := CardReference(ref)
	return &CreditCardPayment{CardID: id, CardToken: token, Installments: installments}
}

// effectiveInstallments — 0 означает значение по умолчанию (1).
func (p *CreditCardPayment) effectiveInstallments() int {
	if p.Installments == 0 {
		return 1
	}
	return p.Installments
}

func (p *CreditCardPayment) effectiveOperationType() OperationType {
	if p.OperationType == "" {
		return OperationAuthAndCapture
	}
	return p.OperationType
}

// hasBillingAddress — адрес плательщика, который засчитывается антифродом.
func (p *CreditCardPayment) hasBillingAddress() bool {
	return p.Card != nil && p.Card.BillingAddress != nil
}

// MarshalJSON всегда передаёт installments и operation_type.
func (p CreditCardPayment) MarshalJSON() ([]byte, error) {
	type wire CreditCardPayment
	w := wire(p)
	w.Installments = p.effectiveInstallments()
	w.OperationType = p.effectiveOperationType()
	return json.Marshal(w)
}

// Validate проверяет способ идентификации карты и перечислимые поля.
func (p *CreditCardPayment) Validate() []string {
	var errs errorList

	switch cardSources(p.Card != nil, p.CardID != "", p.CardToken != "", p.NetworkToken != nil, p.Payload != nil) {
	case 0:
		errs.add("Either card, card_id, card_token, network_token, or payload (Google Pay) must be provided")
	case 1:
	default:
		errs.add("Only one of card, card_id, card_token, network_token, or payload (Google Pay) may be provided")
	}

	if p.effectiveInstallments() < 1 {
		errs.add("Installments must be at least 1")
	}

	if len(p.StatementDescriptor) > MaxStatementDescriptor {
		errs.add("Statement descriptor must not exceed 22 characters (13 for PSP clients)")
	}

	errs.validateEnum(string(p.effectiveOperationType()), validOperationTypes, "Operation type")

	if p.RecurrenceCycle != "" && p.RecurrenceCycle != RecurrenceFirst && p.RecurrenceCycle != RecurrenceSubsequent {
		errs.add(`Recurrence cycle must be "first" or "subsequent"`)
	}
	if p.RecurrenceCycle == RecurrenceSubsequent && p.Card != nil && p.Card.CVV != "" {
		errs.add("CVV should not be sent for subsequent recurrence transactions")
	}

	errs.validateEnum(p.FundingSource, validFundingSources, "Funding source")
	errs.validateEnum(p.InitiatedType, validInitiatedTypes, "Initiated type")
	errs.validateEnum(p.RecurrenceModel, validRecurrenceModels, "Recurrence model")
	errs.validateChannel(p.Channel)

	if p.ExtendedLimitEnabled != nil && *p.ExtendedLimitEnabled && p.ExtendedLimitCode == "" {
		errs.add("Extended limit code is required when extended limit is enabled")
	}

	if p.Card != nil {
		errs.merge("", p.Card.Validate())
	}
	if p.NetworkToken != nil {
		errs.merge("", p.NetworkToken.Validate())
	}
	if p.Authentication != nil {
		errs.merge("", p.Authentication.Validate())
	}
	if p.Payload != nil {
		errs.merge("", p.Payload.Validate())
	}

	return errs.list()
}
