package payment

// CountryCodeBrazil — телефонный код Бразилии.
const CountryCodeBrazil = "55"

// Phone — телефон в формате Pagar.me.
type Phone struct {
	CountryCode string `json:"country_code" validate:"omitempty,digits" label:"Phone country code"`
	AreaCode    string `json:"area_code" validate:"omitempty,digits" label:"Phone area code"`
	Number      string `json:"number" validate:"required,digits" label:"Phone number"`
}

// Phones — домашний и мобильный телефоны клиента.
type Phones struct {
	HomePhone   *Phone `json:"home_phone,omitempty"`
	MobilePhone *Phone `json:"mobile_phone,omitempty"`
}

// BrazilianPhone создаёт телефон с кодом страны 55.
func BrazilianPhone(areaCode, number string) Phone {
	return Phone{CountryCode: CountryCodeBrazil, AreaCode: areaCode, Number: number}
}

// ParseBrazilianPhone разбирает номер в произвольной записи:
// "(11) 98765-4321", "11987654321", "+55 11 98765-4321".
func ParseBrazilianPhone(raw string) Phone {
	cleaned := stripNonDigits(raw)

	if len(cleaned) > 11 && cleaned[:2] == CountryCodeBrazil {
		cleaned = cleaned[2:]
	}

	area, number := cleaned, ""
	if len(cleaned) > 2 {
		area, number = cleaned[:2], cleaned[2:]
	}

	return BrazilianPhone(area, number)
}

// MobilePhones — набор только с мобильным телефоном.
func MobilePhones(p Phone) *Phones {
	return &Phones{MobilePhone: &p}
}

// HomePhones — набор только с домашним телефоном.
func HomePhones(p Phone) *Phones {
	return &Phones{HomePhone: &p}
}

// Validate проверяет, что все части телефона состоят из цифр.
func (p Phone) Validate() []string {
	var errs errorList
	errs.merge("", checkFields(p))
	return errs.list()
}

// IsEmpty возвращает true, если не задан ни один телефон.
func (p *Phones) IsEmpty() bool {
	return p == nil || (p.HomePhone == nil && p.MobilePhone == nil)
}

// Validate проверяет каждый заданный телефон.
func (p *Phones) Validate() []string {
	var errs errorList
	if p == nil {
		return errs.list()
	}
	if p.HomePhone != nil {
		errs.merge("Home phone: ", p.HomePhone.Validate())
	}
	if p.MobilePhone != nil {
		errs.merge("Mobile phone: ", p.MobilePhone.Validate())
	}
	return errs.list()
}
