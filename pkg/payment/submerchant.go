package payment

import "encoding/json"

// SubMerchant — данные субмерчанта для платёжного фасилитатора.
type SubMerchant struct {
	MerchantCategoryCode   string       `json:"merchant_category_code" validate:"required" label:"Merchant category code"`
	PaymentFacilitatorCode string       `json:"payment_facilitator_code" validate:"required" label:"Payment facilitator code"`
	Code                   string       `json:"code" validate:"required" label:"Code"`
	Name                   string       `json:"name" validate:"required" label:"Name"`
	Document               string       `json:"document" validate:"required" label:"Document"`
	Type                   CustomerType `json:"type" validate:"omitempty,oneof=individual company" label:"Type"`
	LegalName              string       `json:"legal_name,omitempty"`
	Phone                  *Phone       `json:"phone,omitempty" validate:"-"`
	Address                *Address     `json:"address,omitempty" validate:"-"`
}

// MarshalJSON подставляет тип individual, если он не задан.
func (s SubMerchant) MarshalJSON() ([]byte, error) {
	type wire SubMerchant
	w := wire(s)
	if w.Type == "" {
		w.Type = CustomerIndividual
	}
	return json.Marshal(w)
}

// Validate проверяет обязательные поля и вложенные адрес и телефон.
func (s *SubMerchant) Validate() []string {
	var errs errorList
	errs.merge("", checkFields(s))

	if s.Phone != nil {
		errs.merge("Phone: ", s.Phone.Validate())
	}
	if s.Address != nil {
		errs.merge("Address: ", s.Address.Validate())
	}

	return errs.list()
}

// SubMerchantSettings — субмерчант из конфигурации приложения.
// Заполняется пакетом config и передаётся в Assembler.
type SubMerchantSettings struct {
	Enabled                bool
	MerchantCategoryCode   string
	PaymentFacilitatorCode string
	Code                   string
	Name                   string
	Document               string
	Type                   CustomerType
	LegalName              string
	Phone                  *Phone
	Address                *Address
}

// Resolve возвращает субмерчанта из настроек или nil, если он выключен
// или заполнен не полностью.
func (s SubMerchantSettings) Resolve() *SubMerchant {
	if !s.Enabled {
		return nil
	}
	if s.MerchantCategoryCode == "" || s.PaymentFacilitatorCode == "" ||
		s.Code == "" || s.Name == "" || s.Document == "" {
		return nil
	}

	return &SubMerchant{
		MerchantCategoryCode:   s.MerchantCategoryCode,
		PaymentFacilitatorCode: s.PaymentFacilitatorCode,
		Code:                   s.Code,
		Name:                   s.Name,
		Document:               s.Document,
		Type:                   s.Type,
		LegalName:              s.LegalName,
		Phone:                  s.Phone,
		Address:                s.Address,
	}
}
