package payment

import "time"

// fixedNow — фиксированный момент для правил сроков.
var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func testAddress() *Address {
	a := BrazilianAddress("100", "Rua Augusta", "Consolação", "01305-000", "São Paulo", "SP", "apto 12")
	return &a
}

func testCustomer() *Customer {
	return IndividualCustomer(
		"Maria Silva",
		"maria@example.com",
		"12345678909",
		MobilePhones(BrazilianPhone("11", "987654321")),
		testAddress(),
	)
}

func testCard() *Card {
	return &Card{
		Number:     "4111111111111111",
		HolderName: "MARIA SILVA",
		ExpMonth:   12,
		ExpYear:    2030,
		CVV:        "123",
	}
}

func testItems() []Item {
	return []Item{
		NewItem("Camiseta azul", 2, 2500),
		NewItem("Boné", 1, 5000),
	}
}

func testOrder() *Order {
	return NewOrder(testItems(), testCustomer(), CreditCard(NewCreditCardPayment(testCard(), 1)))
}

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }
