package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFeeRequest() *FeeRequest {
	return &FeeRequest{
		Amount:            7800,
		FeeResponsibility: FeeMerchant,
		CreditCard: &FeeCreditCard{
			Installments:  1,
			CardBrand:     "mastercard",
			CaptureMethod: "ecommerce",
		},
	}
}

func TestFeeRequest_Normalize(t *testing.T) {
	r := &FeeRequest{
		Amount:            100,
		FeeResponsibility: "BUYER",
		CreditCard:        &FeeCreditCard{Installments: 3, CardBrand: "Visa"},
	}
	r.Normalize()

	assert.Equal(t, FeeBuyer, r.FeeResponsibility)
	assert.Equal(t, "visa", r.CreditCard.CardBrand)
	assert.Equal(t, CaptureEcommerce, r.CreditCard.CaptureMethod)

	t.Run("заданный capture_method сохраняется", func(t *testing.T) {
		r := validFeeRequest()
		r.CreditCard.CaptureMethod = "emv_contactless"
		r.Normalize()
		assert.Equal(t, "emv_contactless", r.CreditCard.CaptureMethod)
	})

	t.Run("без credit_card не падает", func(t *testing.T) {
		r := &FeeRequest{Amount: 1, FeeResponsibility: "Merchant"}
		r.Normalize()
		assert.Equal(t, FeeMerchant, r.FeeResponsibility)
		assert.Nil(t, r.CreditCard)
	})
}

func TestFeeRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *FeeRequest)
		expected []string
	}{
		{
			name:     "корректный запрос",
			mutate:   func(r *FeeRequest) {},
			expected: []string{},
		},
		{
			name:     "нулевая сумма",
			mutate:   func(r *FeeRequest) { r.Amount = 0 },
			expected: []string{"amount must be an integer in cents and >= 1"},
		},
		{
			name:     "неизвестная сторона комиссии",
			mutate:   func(r *FeeRequest) { r.FeeResponsibility = "platform" },
			expected: []string{`fee_responsibility must be "buyer" or "merchant"`},
		},
		{
			name:     "без credit_card",
			mutate:   func(r *FeeRequest) { r.CreditCard = nil },
			expected: []string{"credit_card must be an object"},
		},
		{
			name:     "13 платежей",
			mutate:   func(r *FeeRequest) { r.CreditCard.Installments = 13 },
			expected: []string{"credit_card.installments must be an integer between 1 and 12"},
		},
		{
			name:     "ноль платежей",
			mutate:   func(r *FeeRequest) { r.CreditCard.Installments = 0 },
			expected: []string{"credit_card.installments must be an integer between 1 and 12"},
		},
		{
			name:     "неизвестный бренд",
			mutate:   func(r *FeeRequest) { r.CreditCard.CardBrand = "maestro" },
			expected: []string{"credit_card.card_brand is invalid"},
		},
		{
			name:     "неизвестный способ захвата",
			mutate:   func(r *FeeRequest) { r.CreditCard.CaptureMethod = "nfc" },
			expected: []string{"credit_card.capture_method is invalid"},
		},
		{
			name: "все ошибки в порядке полей",
			mutate: func(r *FeeRequest) {
				r.Amount = -5
				r.FeeResponsibility = ""
				r.CreditCard.CardBrand = ""
			},
			expected: []string{
				"amount must be an integer in cents and >= 1",
				`fee_responsibility must be "buyer" or "merchant"`,
				"credit_card.card_brand is invalid",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validFeeRequest()
			tt.mutate(r)
			assert.Equal(t, tt.expected, r.Validate())
		})
	}
}

func TestFeeRequest_Prepare(t *testing.T) {
	t.Run("верхний регистр проходит после нормализации", func(t *testing.T) {
		r, err := ParseFeeRequest([]byte(`{"amount":7800,"fee_responsibility":"MERCHANT","credit_card":{"installments":2,"card_brand":"ELO"}}`))
		require.NoError(t, err)
		require.NoError(t, r.Prepare())

		assert.Equal(t, "elo", r.CreditCard.CardBrand)
		assert.Equal(t, CaptureEcommerce, r.CreditCard.CaptureMethod)
	})

	t.Run("ошибки возвращаются как ValidationError", func(t *testing.T) {
		r := validFeeRequest()
		r.Amount = 0

		err := r.Prepare()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, []string{"amount must be an integer in cents and >= 1"}, ve.Errors)
	})
}

func TestParseFeeRequest_InvalidArgument(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"дробная сумма", `{"amount":78.5}`},
		{"строка вместо числа платежей", `{"amount":1,"credit_card":{"installments":"2"}}`},
		{"битый JSON", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeeRequest([]byte(tt.body))
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}
