package payment

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		expected string
	}{
		{
			name:     "сохранённая карта",
			card:     *CardFromID("card_abc123", nil),
			expected: `{"card_id":"card_abc123"}`,
		},
		{
			name:     "токен",
			card:     *CardFromToken("token_xyz", nil),
			expected: `{"token":"token_xyz"}`,
		},
		{
			name: "новая карта получает тип credit и private_label",
			card: Card{Number: "4111111111111111", HolderName: "MARIA", ExpMonth: 1, ExpYear: 2030, CVV: "123"},
			expected: `{"number":"4111111111111111","holder_name":"MARIA","exp_month":1,"exp_year":2030,` +
				`"cvv":"123","type":"credit","private_label":false}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.card)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestCard_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Card)
		expected []string
	}{
		{
			name:     "валидная карта",
			mutate:   func(c *Card) {},
			expected: []string{},
		},
		{
			name: "пустая карта",
			mutate: func(c *Card) {
				*c = Card{}
			},
			expected: []string{
				"Card number is required",
				"Holder name is required",
				"Expiration month is required",
				"Expiration year is required",
				"CVV is required",
			},
		},
		{
			name: "неверные длины и месяц",
			mutate: func(c *Card) {
				c.Number = "4111"
				c.HolderName = strings.Repeat("H", 65)
				c.ExpMonth = 13
				c.CVV = "12"
			},
			expected: []string{
				"Card number must be between 13 and 19 characters",
				"Holder name must be max 64 characters",
				"Expiration month must be between 1 and 12",
				"CVV must be 3 or 4 characters",
			},
		},
		{
			name:     "voucher без документа держателя",
			mutate:   func(c *Card) { c.Type = CardVoucher },
			expected: []string{"Holder document is required for voucher cards"},
		},
		{
			name:     "private label без бренда",
			mutate:   func(c *Card) { c.PrivateLabel = true },
			expected: []string{"Brand is required for private label cards"},
		},
		{
			name:     "ссылка на карту не проверяется",
			mutate:   func(c *Card) { *c = Card{ID: "card_1"} },
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCard()
			tt.mutate(c)
			assert.Equal(t, tt.expected, c.Validate())
		})
	}
}

func TestCardReference(t *testing.T) {
	id, token := CardReference("card_123")
	assert.Equal(t, "card_123", id)
	assert.Empty(t, token)

	id, token = CardReference("tok_123")
	assert.Empty(t, id)
	assert.Equal(t, "tok_123", token)
}

func TestCreditCardPayment_Validate(t *testing.T) {
	tests := []struct {
		name     string
		payment  *CreditCardPayment
		contains []string
		empty    bool
	}{
		{
			name:    "новая карта",
			payment: NewCreditCardPayment(testCard(), 3),
			empty:   true,
		},
		{
			name:    "по card_id",
			payment: NewCreditCardPaymentByReference("card_abc", 1),
			empty:   true,
		},
		{
			name:     "ни одного способа",
			payment:  &CreditCardPayment{Installments: 1},
			contains: []string{"Either card, card_id, card_token, network_token, or payload (Google Pay) must be provided"},
		},
		{
			name:     "несколько способов",
			payment:  &CreditCardPayment{Card: testCard(), CardID: "card_abc"},
			contains: []string{"Only one of card, card_id, card_token, network_token, or payload (Google Pay) may be provided"},
		},
		{
			name:     "отрицательная рассрочка",
			payment:  &CreditCardPayment{CardID: "card_abc", Installments: -1},
			contains: []string{"Installments must be at least 1"},
		},
		{
			name:     "длинный descriptor",
			payment:  &CreditCardPayment{CardID: "card_abc", StatementDescriptor: strings.Repeat("D", 23)},
			contains: []string{"Statement descriptor must not exceed 22 characters (13 for PSP clients)"},
		},
		{
			name: "CVV в последующей рекуррентной транзакции",
			payment: &CreditCardPayment{
				Card:            testCard(),
				RecurrenceCycle: RecurrenceSubsequent,
			},
			contains: []string{"CVV should not be sent for subsequent recurrence transactions"},
		},
		{
			name: "неизвестные перечисления",
			payment: &CreditCardPayment{
				CardID:          "card_abc",
				OperationType:   "capture_later",
				FundingSource:   "cash",
				InitiatedType:   "manual",
				RecurrenceModel: "yearly",
				Channel:         "pos",
			},
			contains: []string{
				"Operation type must be one of: auth_and_capture, auth_only, pre_auth",
				"Funding source must be one of: credit, debit, prepaid",
				"Initiated type must be one of: partial_shipment, related_or_delayed_charge, no_show, retry",
				"Recurrence model must be one of: standing_order, instalment, subscription",
				`Channel must be "payment_link"`,
			},
		},
		{
			name: "расширенный лимит без кода",
			payment: &CreditCardPayment{
				CardID:               "card_abc",
				ExtendedLimitEnabled: boolPtr(true),
			},
			contains: []string{"Extended limit code is required when extended limit is enabled"},
		},
		{
			name: "3DS без данных",
			payment: &CreditCardPayment{
				Card:           testCard(),
				Authentication: &Authentication{Type: AuthenticationThreeDSecure},
			},
			contains: []string{"3D Secure data is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.payment.Validate()
			if tt.empty {
				assert.Empty(t, errs)
				return
			}
			for _, msg := range tt.contains {
				assert.Contains(t, errs, msg)
			}
		})
	}
}

func TestCreditCardPayment_MarshalJSON_Defaults(t *testing.T) {
	data, err := json.Marshal(NewCreditCardPaymentByReference("card_abc", 0))
	require.NoError(t, err)

	assert.JSONEq(t, `{"installments":1,"operation_type":"auth_and_capture","card_id":"card_abc"}`, string(data))
}

func TestDebitCardPayment_Validate(t *testing.T) {
	t.Run("ни одного способа", func(t *testing.T) {
		p := &DebitCardPayment{}
		assert.Equal(t, []string{"Either card, card_id, card_token, or network_token must be provided"}, p.Validate())
	})

	t.Run("аутентификация не проверяется для card_id", func(t *testing.T) {
		p := &DebitCardPayment{CardID: "card_abc", Authentication: &Authentication{Type: "unknown"}}
		assert.Empty(t, p.Validate())
	})

	t.Run("recurrence передаётся всегда", func(t *testing.T) {
		data, err := json.Marshal(&DebitCardPayment{CardID: "card_abc"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"card_id":"card_abc","recurrence":false}`, string(data))
	})
}

func TestVoucherPayment(t *testing.T) {
	t.Run("тип карты voucher требует документ держателя", func(t *testing.T) {
		p := NewVoucherPayment(testCard())
		assert.Equal(t, []string{"Holder document is required for voucher cards"}, p.Validate())
	})

	t.Run("карта с документом валидна и уходит с типом voucher", func(t *testing.T) {
		card := testCard()
		card.HolderDocument = "12345678909"
		p := NewVoucherPayment(card)
		assert.Empty(t, p.Validate())

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var wire map[string]map[string]any
		require.NoError(t, json.Unmarshal(data, &wire))
		assert.Equal(t, "voucher", wire["card"]["type"])
		assert.Empty(t, card.Type, "исходная карта не должна меняться")
	})

	t.Run("кредитная карта отклоняется", func(t *testing.T) {
		card := testCard()
		card.Type = CardCredit
		p := NewVoucherPayment(card)
		assert.Contains(t, p.Validate(), "Card type must be voucher for voucher payments")
	})
}

func TestPrivateLabelPayment(t *testing.T) {
	t.Run("бренд обязателен", func(t *testing.T) {
		card := testCard()
		card.PrivateLabel = true
		p := NewPrivateLabelPayment(card, 1)
		assert.Equal(t, []string{
			"Private label cards must have brand specified",
			"Brand is required for private label cards",
		}, p.Validate())
	})

	t.Run("capture по умолчанию true", func(t *testing.T) {
		data, err := json.Marshal(&PrivateLabelPayment{CardID: "card_abc"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"installments":1,"capture":true,"card_id":"card_abc"}`, string(data))
	})

	t.Run("без карты", func(t *testing.T) {
		p := &PrivateLabelPayment{}
		assert.Equal(t, []string{"Card, card_id, or card_token must be provided"}, p.Validate())
	})
}
