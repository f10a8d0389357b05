package payment

// CashPayment — оплата наличными. Confirm передаётся всегда.
type CashPayment struct {
	Description string   `json:"description,omitempty"`
	Confirm     bool     `json:"confirm"`
	Metadata    Metadata `json:"metadata,omitempty"`
}

// Validate проверяет длину описания.
func (p *CashPayment) Validate() []string {
	var errs errorList
	if len(p.Description) > 256 {
		errs.add("Description must not exceed 256 characters")
	}
	return errs.list()
}

// SafetyPayPayment — оплата через SafetyPay. Дополнительных данных не требует.
type SafetyPayPayment struct {
	Metadata Metadata `json:"metadata,omitempty"`
}

// Validate — SafetyPay всегда валиден.
func (p *SafetyPayPayment) Validate() []string {
	return []string{}
}
