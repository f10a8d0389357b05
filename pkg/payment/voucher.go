package payment

import "encoding/json"

// VoucherPayment — оплата картой питания (VR, Pluxee, Ticket).
// Карта всегда передаётся с типом voucher, поэтому документ держателя обязателен.
type VoucherPayment struct {
	StatementDescriptor string   `json:"statement_descriptor,omitempty"`
	Card                *Card    `json:"card,omitempty"`
	CardID              string   `json:"card_id,omitempty"`
	CardToken           string   `json:"card_token,omitempty"`
	Metadata            Metadata `json:"metadata,omitempty"`
}

// NewVoucherPayment — оплата новой voucher картой.
func NewVoucherPayment(card *Card) *VoucherPayment {
	return &VoucherPayment{Card: card}
}

// voucherCard возвращает копию карты с типом voucher.
func (p *VoucherPayment) voucherCard() *Card {
	if p.Card == nil {
		return nil
	}
	c := *p.Card
	if c.Type == "" {
		c.Type = CardVoucher
	}
	return &c
}

// MarshalJSON подставляет тип карты voucher, если он не задан.
func (p VoucherPayment) MarshalJSON() ([]byte, error) {
	type wire VoucherPayment
	w := wire(p)
	w.Card = p.voucherCard()
	return json.Marshal(w)
}

// Validate проверяет способ идентификации карты и тип карты.
func (p *VoucherPayment) Validate() []string {
	var errs errorList

	switch cardSources(p.Card != nil, p.CardID != "", p.CardToken != "") {
	case 0:
		errs.add("Either card, card_id, or card_token must be provided")
	case 1:
	default:
		errs.add("Only one of card, card_id, or card_token may be provided")
	}

	if len(p.StatementDescriptor) > MaxStatementDescriptor {
		errs.add("Statement descriptor must not exceed 22 characters")
	}

	if card := p.voucherCard(); card != nil {
		if card.Type != CardVoucher {
			errs.add("Card type must be voucher for voucher payments")
		}
		errs.merge("", card.Validate())
	}

	return errs.list()
}
