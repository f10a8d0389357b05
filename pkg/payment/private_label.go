package payment

import "encoding/json"

// PrivateLabelPayment — оплата картой магазина (private label).
type PrivateLabelPayment struct {
	Installments        int      `json:"installments"`
	Capture             *bool    `json:"capture"`
	StatementDescriptor string   `json:"statement_descriptor,omitempty"`
	Card                *Card    `json:"card,omitempty"`
	CardID              string   `json:"card_id,omitempty"`
	CardToken           string   `json:"card_token,omitempty"`
	Metadata            Metadata `json:"metadata,omitempty"`
}

// NewPrivateLabelPayment — оплата private label картой с немедленным списанием.
func NewPrivateLabelPayment(card *Card, installments int) *PrivateLabelPayment {
	return &PrivateLabelPayment{Card: card, Installments: installments}
}

func (p *PrivateLabelPayment) effectiveInstallments() int {
	if p.Installments == 0 {
		return 1
	}
	return p.Installments
}

// MarshalJSON всегда передаёт installments и capture (по умолчанию true).
func (p PrivateLabelPayment) MarshalJSON() ([]byte, error) {
	type wire PrivateLabelPayment
	w := wire(p)
	w.Installments = p.effectiveInstallments()
	if w.Capture == nil {
		capture := true
		w.Capture = &capture
	}
	return json.Marshal(w)
}

// Validate проверяет карту, рассрочку и бренд private label карты.
func (p *PrivateLabelPayment) Validate() []string {
	var errs errorList

	switch cardSources(p.Card != nil, p.CardID != "", p.CardToken != "") {
	case 0:
		errs.add("Card, card_id, or card_token must be provided")
	case 1:
	default:
		errs.add("Only one of card, card_id, or card_token may be provided")
	}

	if p.effectiveInstallments() < 1 {
		errs.add("Installments must be at least 1")
	}
	if len(p.StatementDescriptor) > MaxStatementDescriptor {
		errs.add("Statement descriptor must not exceed 22 characters")
	}

	if p.Card != nil {
		if p.Card.PrivateLabel && p.Card.Brand == "" {
			errs.add("Private label cards must have brand specified")
		}
		errs.merge("", p.Card.Validate())
	}

	return errs.list()
}
