package payment

import "strings"

// CountryBrazil — ISO 3166-1 alpha-2 код Бразилии.
const CountryBrazil = "BR"

// Address — адрес клиента, плательщика или субмерчанта.
// Для бразильских адресов Line1 имеет формат "Number, Street, Neighborhood".
type Address struct {
	Line1    string   `json:"line_1" validate:"max=256" label:"Line 1"`
	Line2    string   `json:"line_2,omitempty" validate:"max=128" label:"Line 2"`
	ZipCode  string   `json:"zip_code" validate:"digits,max=16" label:"ZIP code"`
	City     string   `json:"city" validate:"max=64" label:"City"`
	State    string   `json:"state"`
	Country  string   `json:"country"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Line1Parts — разобранные компоненты Line1.
type Line1Parts struct {
	Number       string
	Street       string
	Neighborhood string
}

// BrazilianAddress собирает адрес в формате Pagar.me для Бразилии.
// Пустые компоненты пропускаются, из CEP удаляются все нецифровые символы.
func BrazilianAddress(number, street, neighborhood, zipCode, city, state, complement string) Address {
	parts := make([]string, 0, 3)
	for _, p := range []string{number, street, neighborhood} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return Address{
		Line1:   strings.Join(parts, ", "),
		Line2:   complement,
		ZipCode: FormatCEP(zipCode),
		City:    city,
		State:   state,
		Country: CountryBrazil,
	}
}

// InternationalAddress создаёт адрес без преобразования полей.
func InternationalAddress(line1, zipCode, city, state, country, line2 string) Address {
	return Address{
		Line1:   line1,
		Line2:   line2,
		ZipCode: zipCode,
		City:    city,
		State:   state,
		Country: country,
	}
}

// BillingAddress создаёт платёжный адрес: бразильский формат для BR,
// для остальных стран Line1 собирается из всех трёх компонентов.
func BillingAddress(number, street, neighborhood, zipCode, city, state, country string) Address {
	if country == "" || country == CountryBrazil {
		return BrazilianAddress(number, street, neighborhood, zipCode, city, state, "")
	}
	return InternationalAddress(number+", "+street+", "+neighborhood, zipCode, city, state, country, "")
}

// FormatCEP удаляет из CEP всё, кроме цифр.
func FormatCEP(cep string) string {
	return stripNonDigits(cep)
}

// ParseLine1 разбирает Line1 обратно на номер, улицу и район.
func (a Address) ParseLine1() Line1Parts {
	parts := strings.Split(a.Line1, ",")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return Line1Parts{Number: get(0), Street: get(1), Neighborhood: get(2)}
}

// Validate проверяет ограничения длины и формат CEP.
func (a Address) Validate() []string {
	var errs errorList
	errs.merge("", checkFields(a))
	return errs.list()
}

// IsValid возвращает true, если адрес прошёл валидацию.
func (a Address) IsValid() bool {
	return len(a.Validate()) == 0
}
