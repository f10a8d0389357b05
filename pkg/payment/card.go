package payment

import "encoding/json"

// CardType — тип карты. Voucher требует документ держателя.
type CardType string

const (
	CardCredit  CardType = "credit"
	CardVoucher CardType = "voucher"
)

// Card — общая форма карты для кредитных, дебетовых, voucher и private label платежей.
//
// Карта задаётся одним из трёх способов:
//   - ID сохранённой карты (card_id);
//   - одноразовый токен (token);
//   - полные данные новой карты.
//
// Способ определяет, какие поля попадут в wire-payload (см. MarshalJSON).
type Card struct {
	Number           string         `json:"number,omitempty" validate:"required,between=13 19" label:"Card number"`
	HolderName       string         `json:"holder_name,omitempty" validate:"required,max=64" label:"Holder name"`
	HolderDocument   string         `json:"holder_document,omitempty"`
	ExpMonth         int            `json:"exp_month,omitempty" validate:"required,between=1 12" label:"Expiration month"`
	ExpYear          int            `json:"exp_year,omitempty" validate:"required" label:"Expiration year"`
	CVV              string         `json:"cvv,omitempty" validate:"required,lenin=3 4" label:"CVV"`
	Brand            string         `json:"brand,omitempty"`
	ID               string         `json:"card_id,omitempty"`
	BillingAddress   *Address       `json:"billing_address,omitempty" validate:"-"`
	BillingAddressID string         `json:"billing_address_id,omitempty"`
	Label            string         `json:"label,omitempty"`
	Token            string         `json:"token,omitempty"`
	Metadata         Metadata       `json:"metadata,omitempty"`
	Options          map[string]any `json:"options,omitempty"`
	Type             CardType       `json:"type,omitempty"`
	PrivateLabel     bool           `json:"private_label,omitempty"`
}

// CardFromID — ссылка на сохранённую карту.
func CardFromID(cardID string, options map[string]any) *Card {
	return &Card{ID: cardID, Options: options}
}

// CardFromToken — карта, токенизированная на клиенте.
func CardFromToken(token string, billingAddress *Address) *Card {
	return &Card{Token: token, BillingAddress: billingAddress}
}

// IsReference возвращает true, если карта задана через card_id или token.
func (c *Card) IsReference() bool {
	return c.ID != "" || c.Token != ""
}

// cardByID — payload сохранённой карты.
type cardByID struct {
	ID      string         `json:"card_id"`
	Options map[string]any `json:"options,omitempty"`
}

// cardByToken — payload токенизированной карты.
type cardByToken struct {
	Token            string   `json:"token"`
	BillingAddress   *Address `json:"billing_address,omitempty"`
	BillingAddressID string   `json:"billing_address_id,omitempty"`
	Metadata         Metadata `json:"metadata,omitempty"`
}

// newCard — payload новой карты. type и private_label передаются всегда.
type newCard struct {
	Number           string         `json:"number,omitempty"`
	HolderName       string         `json:"holder_name,omitempty"`
	HolderDocument   string         `json:"holder_document,omitempty"`
	ExpMonth         int            `json:"exp_month,omitempty"`
	ExpYear          int            `json:"exp_year,omitempty"`
	CVV              string         `json:"cvv,omitempty"`
	Brand            string         `json:"brand,omitempty"`
	BillingAddress   *Address       `json:"billing_address,omitempty"`
	BillingAddressID string         `json:"billing_address_id,omitempty"`
	Label            string         `json:"label,omitempty"`
	Metadata         Metadata       `json:"metadata,omitempty"`
	Options          map[string]any `json:"options,omitempty"`
	Type             CardType       `json:"type"`
	PrivateLabel     bool           `json:"private_label"`
}

// MarshalJSON формирует payload в зависимости от способа задания карты.
func (c Card) MarshalJSON() ([]byte, error) {
	switch {
	case c.ID != "":
		return json.Marshal(cardByID{ID: c.ID, Options: c.Options})
	case c.Token != "":
		return json.Marshal(cardByToken{
			Token:            c.Token,
			BillingAddress:   c.BillingAddress,
			BillingAddressID: c.BillingAddressID,
			Metadata:         c.Metadata,
		})
	}

	cardType := c.Type
	if cardType == "" {
		cardType = CardCredit
	}

	return json.Marshal(newCard{
		Number:           c.Number,
		HolderName:       c.HolderName,
		HolderDocument:   c.HolderDocument,
		ExpMonth:         c.ExpMonth,
		ExpYear:          c.ExpYear,
		CVV:              c.CVV,
		Brand:            c.Brand,
		BillingAddress:   c.BillingAddress,
		BillingAddressID: c.BillingAddressID,
		Label:            c.Label,
		Metadata:         c.Metadata,
		Options:          c.Options,
		Type:             cardType,
		PrivateLabel:     c.PrivateLabel,
	})
}

// Validate проверяет данные новой карты. Для card_id и token проверять нечего:
// данные уже хранятся в Pagar.me.
func (c *Card) Validate() []string {
	var errs errorList
	if c.IsReference() {
		return errs.list()
	}

	errs.merge("", checkFields(c))

	// для voucher документ держателя обязателен
	if c.Type == CardVoucher && c.HolderDocument == "" {
		errs.add("Holder document is required for voucher cards")
	}

	if c.PrivateLabel && c.Brand == "" {
		errs.add("Brand is required for private label cards")
	}

	if c.BillingAddress != nil {
		errs.merge("Billing address: ", c.BillingAddress.Validate())
	}

	return errs.list()
}

// IsValid возвращает true, если карта прошла валидацию.
func (c *Card) IsValid() bool {
	return len(c.Validate()) == 0
}
