package config

import "example.com/pagarme-gateway/pkg/payment"

// SubMerchantConfig — субмерчант по умолчанию для платёжного фасилитатора.
type SubMerchantConfig struct {
	Enabled                bool   `env:"PAGARME_SUBMERCHANT_ENABLED" envDefault:"false"`
	MerchantCategoryCode   string `env:"PAGARME_SUBMERCHANT_MCC"`
	PaymentFacilitatorCode string `env:"PAGARME_SUBMERCHANT_FACILITATOR_CODE"`
	Code                   string `env:"PAGARME_SUBMERCHANT_CODE"`
	Name                   string `env:"PAGARME_SUBMERCHANT_NAME"`
	Document               string `env:"PAGARME_SUBMERCHANT_DOCUMENT"`
	Type                   string `env:"PAGARME_SUBMERCHANT_TYPE" envDefault:"individual"`
	LegalName              string `env:"PAGARME_SUBMERCHANT_LEGAL_NAME"`

	PhoneCountryCode string `env:"PAGARME_SUBMERCHANT_PHONE_COUNTRY_CODE" envDefault:"55"`
	PhoneAreaCode    string `env:"PAGARME_SUBMERCHANT_PHONE_AREA_CODE"`
	PhoneNumber      string `env:"PAGARME_SUBMERCHANT_PHONE_NUMBER"`

	AddressStreet       string `env:"PAGARME_SUBMERCHANT_ADDRESS_STREET"`
	AddressNumber       string `env:"PAGARME_SUBMERCHANT_ADDRESS_NUMBER"`
	AddressNeighborhood string `env:"PAGARME_SUBMERCHANT_ADDRESS_NEIGHBORHOOD"`
	AddressComplement   string `env:"PAGARME_SUBMERCHANT_ADDRESS_COMPLEMENT"`
	AddressZipCode      string `env:"PAGARME_SUBMERCHANT_ADDRESS_ZIP_CODE"`
	AddressCity         string `env:"PAGARME_SUBMERCHANT_ADDRESS_CITY"`
	AddressState        string `env:"PAGARME_SUBMERCHANT_ADDRESS_STATE"`
}

// Settings переводит переменные окружения в настройки сборщика.
// Телефон и адрес добавляются, только если заданы номер и CEP соответственно.
func (c SubMerchantConfig) Settings() payment.SubMerchantSettings {
	s := payment.SubMerchantSettings{
		Enabled:                c.Enabled,
		MerchantCategoryCode:   c.MerchantCategoryCode,
		PaymentFacilitatorCode: c.PaymentFacilitatorCode,
		Code:                   c.Code,
		Name:                   c.Name,
		Document:               c.Document,
		Type:                   payment.CustomerType(c.Type),
		LegalName:              c.LegalName,
	}

	if c.PhoneNumber != "" {
		s.Phone = &payment.Phone{
			CountryCode: c.PhoneCountryCode,
			AreaCode:    c.PhoneAreaCode,
			Number:      c.PhoneNumber,
		}
	}

	if c.AddressZipCode != "" {
		a := payment.BrazilianAddress(
			c.AddressNumber,
			c.AddressStreet,
			c.AddressNeighborhood,
			c.AddressZipCode,
			c.AddressCity,
			c.AddressState,
			c.AddressComplement,
		)
		s.Address = &a
	}

	return s
}
