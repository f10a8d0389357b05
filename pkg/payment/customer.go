package payment

import (
	"fmt"
	"strings"
)

// CustomerType — тип клиента.
type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerCompany    CustomerType = "company"
)

// DocumentType — тип документа клиента.
type DocumentType string

const (
	DocumentCPF      DocumentType = "CPF"
	DocumentCNPJ     DocumentType = "CNPJ"
	DocumentPassport DocumentType = "PASSPORT"
)

// Gender — пол клиента (необязательное поле).
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Customer — покупатель. Может передаваться в заказе целиком
// или как ссылка на уже созданного клиента (см. Order.CustomerID).
type Customer struct {
	Name                string       `json:"name" validate:"max=64" label:"Name"`
	Email               string       `json:"email" validate:"max=64" label:"Email"`
	Type                CustomerType `json:"type,omitempty" validate:"omitempty,oneof=individual company" label:"Type"`
	Document            string       `json:"document,omitempty"`
	DocumentType        DocumentType `json:"document_type,omitempty" validate:"omitempty,oneof=CPF CNPJ PASSPORT" label:"Document type"`
	Phones              *Phones      `json:"phones,omitempty" validate:"-"`
	Code                string       `json:"code,omitempty" validate:"max=52" label:"Code"`
	Address             *Address     `json:"address,omitempty" validate:"-"`
	Metadata            Metadata     `json:"metadata,omitempty"`
	Gender              Gender       `json:"gender,omitempty" validate:"omitempty,oneof=male female" label:"Gender"`
	Birthdate           string       `json:"birthdate,omitempty"` // mm/dd/yyyy
	FacebookID          int64        `json:"fb_id,omitempty"`
	FacebookAccessToken string       `json:"fb_access_token,omitempty"`
}

// IndividualCustomer — физическое лицо с CPF.
func IndividualCustomer(name, email, cpf string, phones *Phones, address *Address) *Customer {
	return &Customer{
		Name:         name,
		Email:        email,
		Type:         CustomerIndividual,
		Document:     cpf,
		DocumentType: DocumentCPF,
		Phones:       phones,
		Address:      address,
	}
}

// CompanyCustomer — юридическое лицо с CNPJ.
func CompanyCustomer(name, email, cnpj string, phones *Phones, address *Address) *Customer {
	return &Customer{
		Name:         name,
		Email:        email,
		Type:         CustomerCompany,
		Document:     cnpj,
		DocumentType: DocumentCNPJ,
		Phones:       phones,
		Address:      address,
	}
}

// maxDocumentLength — предел длины документа зависит от его типа.
func maxDocumentLength(t DocumentType) int {
	if t == DocumentPassport {
		return 50
	}
	return 16
}

// Validate проверяет ограничения длины и допустимые значения перечислений.
func (c *Customer) Validate() []string {
	var errs errorList
	errs.merge("", checkFields(c))

	// лимит длины документа зависит от его типа
	if c.Document != "" && c.DocumentType != "" {
		if limit := maxDocumentLength(c.DocumentType); len(c.Document) > limit {
			errs.addf("Document must be max %d characters for %s", limit, c.DocumentType)
		}
	}

	errs.merge("", c.Phones.Validate())
	if c.Address != nil {
		errs.merge("Address: ", c.Address.Validate())
	}

	return errs.list()
}

// IsValid возвращает true, если клиент прошёл валидацию.
func (c *Customer) IsValid() bool {
	return len(c.Validate()) == 0
}

// antifraudErrors — поля клиента, без которых антифрод не запускается.
func (c *Customer) antifraudErrors() []string {
	var errs errorList
	required := []struct {
		field string
		empty bool
	}{
		{"name", strings.TrimSpace(c.Name) == ""},
		{"email", strings.TrimSpace(c.Email) == ""},
		{"document", c.Document == ""},
		{"type", c.Type == ""},
		{"phones", c.Phones.IsEmpty()},
	}
	for _, r := range required {
		if r.empty {
			errs.add(fmt.Sprintf("Antifraud: Customer %s is required", r.field))
		}
	}
	return errs.list()
}
