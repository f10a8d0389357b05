package decline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCharge(t *testing.T) {
	tests := []struct {
		name        string
		charge      string
		wantReason  string
		wantRetry   bool
		wantFraud   bool
		wantInvalid bool
		wantFunds   bool
		wantHasCode bool
		wantMessage string
	}{
		{
			name: "утерянная карта",
			charge: `{"id":"ch_1","last_transaction":{"acquirer_return_code":"1008",
				"acquirer_message":"Lost card","gateway_response_code":"200"}}`,
			wantReason:  "Cartão reportado como perdido",
			wantInvalid: true,
			wantHasCode: true,
			wantMessage: "Lost card",
		},
		{
			name:        "подозрение на мошенничество",
			charge:      `{"last_transaction":{"acquirer_return_code":"1002"}}`,
			wantReason:  "Transação com suspeita de fraude",
			wantFraud:   true,
			wantHasCode: true,
			wantMessage: DefaultMessage,
		},
		{
			name:        "недостаточно средств",
			charge:      `{"last_transaction":{"acquirer_return_code":"1016","acquirer_message":"Insufficient"}}`,
			wantReason:  "Saldo/limite insuficiente",
			wantRetry:   true,
			wantFunds:   true,
			wantHasCode: true,
			wantMessage: "Insufficient",
		},
		{
			name:        "неизвестный код: сообщение эквайера и без повтора",
			charge:      `{"last_transaction":{"acquirer_return_code":"9876","acquirer_message":"Do not honor"}}`,
			wantReason:  "Do not honor",
			wantMessage: "Do not honor",
		},
		{
			name:        "gateway_response строкой",
			charge:      `{"last_transaction":{"gateway_response":"Refused by gateway"}}`,
			wantReason:  "Refused by gateway",
			wantMessage: "Refused by gateway",
		},
		{
			name:        "gateway_response объектом",
			charge:      `{"last_transaction":{"gateway_response":{"code":"400","errors":[{"message":"Invalid card"}]}}}`,
			wantReason:  "Invalid card",
			wantMessage: "Invalid card",
		},
		{
			name:        "без last_transaction",
			charge:      `{"id":"ch_2"}`,
			wantReason:  DefaultMessage,
			wantMessage: DefaultMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseCharge([]byte(tt.charge))
			require.NoError(t, err)

			assert.Equal(t, tt.wantReason, d.DeclineReason())
			assert.Equal(t, tt.wantRetry, d.CanRetry())
			assert.Equal(t, tt.wantFraud, d.IsFraudRelated())
			assert.Equal(t, tt.wantInvalid, d.IsInvalidCard())
			assert.Equal(t, tt.wantFunds, d.IsInsufficientFunds())
			assert.Equal(t, tt.wantHasCode, d.HasCode())
			assert.Equal(t, tt.wantMessage, d.Error())
			assert.True(t, errors.Is(d, ErrTransactionDeclined))
		})
	}
}

func TestFromOrderResponse(t *testing.T) {
	d, err := ParseOrderResponse([]byte(`{
		"id":"or_1","status":"failed",
		"charges":[
			{"id":"ch_1","last_transaction":{"acquirer_return_code":"1043","gateway_response_code":"402"}},
			{"id":"ch_2","last_transaction":{"acquirer_return_code":"0000"}}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "ch_1", d.ChargeID)
	assert.Equal(t, CodeDeclinedConfirmedFraud, d.Code)
	assert.Equal(t, DeclineInfo{
		AbecsCode:    "1043",
		AbecsMessage: "Fraude confirmada",
		AcquirerCode: "1043",
		GatewayCode:  "402",
		Reason:       "Fraude confirmada",
		Category:     CategoryDeclined,
		CanRetry:     false,
		IsFraud:      true,
	}, d.Info())

	empty := FromOrderResponse(OrderResponse{})
	assert.Equal(t, DefaultMessage, empty.DeclineReason())
	assert.False(t, empty.CanRetry())
	assert.Equal(t, CategoryUnknown, empty.Category())
}

func TestParseCharge_Invalid(t *testing.T) {
	_, err := ParseCharge([]byte(`{"last_transaction":`))
	assert.Error(t, err)
}
