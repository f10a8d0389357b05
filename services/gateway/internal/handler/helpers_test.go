package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"example.com/pagarme-gateway/pkg/payment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func testOrder() *payment.Order {
	addr := payment.BrazilianAddress("100", "Rua Augusta", "Consolação", "01305-000", "São Paulo", "SP", "")
	customer := payment.IndividualCustomer(
		"Maria Silva",
		"maria@example.com",
		"12345678909",
		payment.MobilePhones(payment.BrazilianPhone("11", "987654321")),
		&addr,
	)
	card := &payment.Card{
		Number:     "4111111111111111",
		HolderName: "MARIA SILVA",
		ExpMonth:   12,
		ExpYear:    2030,
		CVV:        "123",
	}

	return payment.NewOrder(
		[]payment.Item{payment.NewItem("Camiseta azul", 2, 2500), payment.NewItem("Boné", 1, 5000)},
		customer,
		payment.CreditCard(payment.NewCreditCardPayment(card, 1)),
	)
}

func orderJSON(t *testing.T, o *payment.Order) []byte {
	t.Helper()
	data, err := json.Marshal(o)
	require.NoError(t, err)
	return data
}

func newTestAssembler(mode payment.Mode) *payment.Assembler {
	return payment.NewAssembler(
		payment.AssemblerConfig{Mode: mode},
		payment.WithClock(func() time.Time { return fixedNow }),
	)
}

// newTestEngine регистрирует handler на одном маршруте.
func newTestEngine(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Handle(method, path, h)
	return r
}
