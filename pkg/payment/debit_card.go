package payment

// DebitCardPayment — данные оплаты дебетовой картой.
// Recurrence передаётся всегда, даже если false.
type DebitCardPayment struct {
	StatementDescriptor  string          `json:"statement_descriptor,omitempty"`
	Card                 *Card           `json:"card,omitempty"`
	CardID               string          `json:"card_id,omitempty"`
	CardToken            string          `json:"card_token,omitempty"`
	NetworkToken         *NetworkToken   `json:"network_token,omitempty"`
	Recurrence           bool            `json:"recurrence"`
	MerchantCategoryCode int             `json:"merchant_category_code,omitempty"`
	Authentication       *Authentication `json:"authentication,omitempty"`
	InitiatedType        string          `json:"initiated_type,omitempty"`
	RecurrenceModel      string          `json:"recurrence_model,omitempty"`
	Channel              string          `json:"channel,omitempty"`
	Metadata             Metadata        `json:"metadata,omitempty"`
}

// NewDebitCardPayment — оплата новой картой с 3DS аутентификацией.
func NewDebitCardPayment(card *Card, auth *Authentication) *DebitCardPayment {
	return &DebitCardPayment{Card: card, Authentication: auth}
}

// Validate проверяет способ идентификации карты и перечислимые поля.
func (p *DebitCardPayment) Validate() []string {
	var errs errorList

	switch cardSources(p.Card != nil, p.CardID != "", p.CardToken != "", p.NetworkToken != nil) {
	case 0:
		errs.add("Either card, card_id, card_token, or network_token must be provided")
	case 1:
	default:
		errs.add("Only one of card, card_id, card_token, or network_token may be provided")
	}

	if len(p.StatementDescriptor) > MaxStatementDescriptor {
		errs.add("Statement descriptor must not exceed 22 characters")
	}

	errs.validateEnum(p.InitiatedType, validInitiatedTypes, "Initiated type")
	errs.validateEnum(p.RecurrenceModel, validRecurrenceModels, "Recurrence model")
	errs.validateChannel(p.Channel)

	// Аутентификация проверяется только для карты, переданной целиком.
	if p.Authentication != nil && p.Card != nil {
		errs.merge("", p.Authentication.Validate())
	}
	if p.Card != nil {
		errs.merge("", p.Card.Validate())
	}
	if p.NetworkToken != nil {
		errs.merge("", p.NetworkToken.Validate())
	}

	return errs.list()
}
