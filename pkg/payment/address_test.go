package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrazilianAddress(t *testing.T) {
	a := BrazilianAddress("100", "Rua Augusta", "Consolação", "01305-000", "São Paulo", "SP", "apto 12")

	assert.Equal(t, "100, Rua Augusta, Consolação", a.Line1)
	assert.Equal(t, "apto 12", a.Line2)
	assert.Equal(t, "01305000", a.ZipCode)
	assert.Equal(t, CountryBrazil, a.Country)

	parts := a.ParseLine1()
	assert.Equal(t, Line1Parts{Number: "100", Street: "Rua Augusta", Neighborhood: "Consolação"}, parts)
}

func TestBrazilianAddress_SkipsEmptyParts(t *testing.T) {
	a := BrazilianAddress("", "Rua Augusta", "", "01305000", "São Paulo", "SP", "")
	assert.Equal(t, "Rua Augusta", a.Line1)
}

func TestAddress_Validate(t *testing.T) {
	tests := []struct {
		name     string
		address  Address
		expected []string
	}{
		{
			name:     "валидный адрес",
			address:  *testAddress(),
			expected: []string{},
		},
		{
			name:     "CEP с буквами",
			address:  Address{Line1: "1, Rua", ZipCode: "0130A000", City: "SP"},
			expected: []string{"ZIP code must contain only numbers"},
		},
		{
			name:     "длинный CEP из цифр",
			address:  Address{Line1: "1, Rua", ZipCode: strings.Repeat("1", 17), City: "SP"},
			expected: []string{"ZIP code must be max 16 characters"},
		},
		{
			name:     "длинный нецифровой CEP сообщает только про формат",
			address:  Address{Line1: "1, Rua", ZipCode: strings.Repeat("x", 17), City: "SP"},
			expected: []string{"ZIP code must contain only numbers"},
		},
		{
			name: "превышены длины",
			address: Address{
				Line1:   strings.Repeat("a", 257),
				Line2:   strings.Repeat("b", 129),
				ZipCode: "01305000",
				City:    strings.Repeat("c", 65),
			},
			expected: []string{
				"Line 1 must be max 256 characters",
				"Line 2 must be max 128 characters",
				"City must be max 64 characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.address.Validate())
		})
	}
}

func TestParseBrazilianPhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Phone
	}{
		{"со скобками и дефисом", "(11) 98765-4321", Phone{CountryCode: "55", AreaCode: "11", Number: "987654321"}},
		{"только цифры", "11987654321", Phone{CountryCode: "55", AreaCode: "11", Number: "987654321"}},
		{"с кодом страны", "+55 11 98765-4321", Phone{CountryCode: "55", AreaCode: "11", Number: "987654321"}},
		{"городской номер", "(21) 3456-7890", Phone{CountryCode: "55", AreaCode: "21", Number: "34567890"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseBrazilianPhone(tt.raw))
		})
	}
}

func TestPhones_Validate(t *testing.T) {
	phones := &Phones{
		HomePhone:   &Phone{CountryCode: "55", AreaCode: "1a", Number: "34567890"},
		MobilePhone: &Phone{CountryCode: "55", AreaCode: "11"},
	}

	assert.Equal(t, []string{
		"Home phone: Phone area code must contain only numbers",
		"Mobile phone: Phone number is required",
	}, phones.Validate())

	var empty *Phones
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.Validate())
}

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Customer)
		expected []string
	}{
		{
			name:     "валидный клиент",
			mutate:   func(c *Customer) {},
			expected: []string{},
		},
		{
			name:     "длинное имя",
			mutate:   func(c *Customer) { c.Name = strings.Repeat("n", 65) },
			expected: []string{"Name must be max 64 characters"},
		},
		{
			name:     "длинный CPF",
			mutate:   func(c *Customer) { c.Document = strings.Repeat("1", 17) },
			expected: []string{"Document must be max 16 characters for CPF"},
		},
		{
			name: "паспорт до 50 символов допустим",
			mutate: func(c *Customer) {
				c.DocumentType = DocumentPassport
				c.Document = strings.Repeat("P", 50)
			},
			expected: []string{},
		},
		{
			name: "неизвестные перечисления",
			mutate: func(c *Customer) {
				c.Gender = "other"
				c.Type = "robot"
				c.DocumentType = "RG"
			},
			expected: []string{
				`Type must be "individual" or "company"`,
				`Document type must be "CPF", "CNPJ" or "PASSPORT"`,
				`Gender must be "male" or "female"`,
			},
		},
		{
			name:     "ошибка адреса с префиксом",
			mutate:   func(c *Customer) { c.Address.ZipCode = "abc" },
			expected: []string{"Address: ZIP code must contain only numbers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCustomer()
			tt.mutate(c)
			assert.Equal(t, tt.expected, c.Validate())
		})
	}
}
