package payment

import (
	"encoding/json"
	"strings"
	"time"
)

// Method — способ оплаты, выбирающий заполненную часть Payment.
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodPix          Method = "pix"
	MethodBoleto       Method = "boleto"
	MethodVoucher      Method = "voucher"
	MethodCash         Method = "cash"
	MethodSafetyPay    Method = "safetypay"
	MethodPrivateLabel Method = "private_label"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheckout     Method = "checkout"
)

// supportedMethods — порядок совпадает с сообщением об ошибке.
var supportedMethods = []struct {
	Method Method
	Name   string
}{
	{MethodCreditCard, "Credit Card"},
	{MethodDebitCard, "Debit Card"},
	{MethodPix, "PIX"},
	{MethodBoleto, "Boleto (Bank Slip)"},
	{MethodVoucher, "Voucher (VR, Pluxee, Ticket)"},
	{MethodCash, "Cash"},
	{MethodSafetyPay, "SafetyPay"},
	{MethodPrivateLabel, "Private Label Card"},
	{MethodBankTransfer, "Bank Transfer"},
	{MethodCheckout, "Checkout"},
}

// SupportedMethods возвращает способы оплаты и их названия.
func SupportedMethods() map[Method]string {
	out := make(map[Method]string, len(supportedMethods))
	for _, m := range supportedMethods {
		out[m.Method] = m.Name
	}
	return out
}

// IsValid возвращает true для известных способов оплаты.
func (m Method) IsValid() bool {
	for _, s := range supportedMethods {
		if s.Method == m {
			return true
		}
	}
	return false
}

// Payment — один платёж заказа (tagged union по Method).
// Заполняется только часть, соответствующая Method; остальные игнорируются
// при сериализации.
type Payment struct {
	Method       Method               `json:"payment_method"`
	Amount       *int64               `json:"amount,omitempty"`
	Metadata     Metadata             `json:"metadata,omitempty"`
	Customer     *Customer            `json:"customer,omitempty"` // multi-buyer
	CreditCard   *CreditCardPayment   `json:"credit_card,omitempty"`
	DebitCard    *DebitCardPayment    `json:"debit_card,omitempty"`
	Pix          *PixPayment          `json:"pix,omitempty"`
	Boleto       *BoletoPayment       `json:"boleto,omitempty"`
	Voucher      *VoucherPayment      `json:"voucher,omitempty"`
	Cash         *CashPayment         `json:"cash,omitempty"`
	SafetyPay    *SafetyPayPayment    `json:"safetypay,omitempty"`
	PrivateLabel *PrivateLabelPayment `json:"private_label,omitempty"`
}

// =============================================================================
// Конструкторы
// =============================================================================

// CreditCard — платёж кредитной картой.
func CreditCard(p *CreditCardPayment) Payment {
	return Payment{Method: MethodCreditCard, CreditCard: p}
}

// DebitCard — платёж дебетовой картой.
func DebitCard(p *DebitCardPayment) Payment {
	return Payment{Method: MethodDebitCard, DebitCard: p}
}

// Pix — платёж через PIX.
func Pix(p *PixPayment) Payment {
	return Payment{Method: MethodPix, Pix: p}
}

// Boleto — платёж банковским бланком.
func Boleto(p *BoletoPayment) Payment {
	return Payment{Method: MethodBoleto, Boleto: p}
}

// Voucher — платёж картой питания.
func Voucher(p *VoucherPayment) Payment {
	return Payment{Method: MethodVoucher, Voucher: p}
}

// Cash — платёж наличными.
func Cash(p *CashPayment) Payment {
	return Payment{Method: MethodCash, Cash: p}
}

// SafetyPay — платёж через SafetyPay.
func SafetyPay(p *SafetyPayPayment) Payment {
	if p == nil {
		p = &SafetyPayPayment{}
	}
	return Payment{Method: MethodSafetyPay, SafetyPay: p}
}

// PrivateLabel — платёж private label картой.
func PrivateLabel(p *PrivateLabelPayment) Payment {
	return Payment{Method: MethodPrivateLabel, PrivateLabel: p}
}

// WithAmount возвращает копию платежа с суммой (для нескольких платежей в заказе).
func (p Payment) WithAmount(amount int64) Payment {
	p.Amount = &amount
	return p
}

// WithCustomer возвращает копию платежа с отдельным плательщиком.
func (p Payment) WithCustomer(c *Customer) Payment {
	p.Customer = c
	return p
}

// AmountValue возвращает сумму платежа или 0, если она не задана.
func (p Payment) AmountValue() int64 {
	if p.Amount == nil {
		return 0
	}
	return *p.Amount
}

// =============================================================================
// Сериализация и валидация
// =============================================================================

// MarshalJSON передаёт только часть, соответствующую Method.
// Для safetypay всегда передаётся объект, даже пустой.
func (p Payment) MarshalJSON() ([]byte, error) {
	type wire Payment
	w := wire{Method: p.Method, Amount: p.Amount, Metadata: p.Metadata, Customer: p.Customer}

	switch p.Method {
	case MethodCreditCard:
		w.CreditCard = p.CreditCard
	case MethodDebitCard:
		w.DebitCard = p.DebitCard
	case MethodPix:
		w.Pix = p.Pix
	case MethodBoleto:
		w.Boleto = p.Boleto
	case MethodVoucher:
		w.Voucher = p.Voucher
	case MethodCash:
		w.Cash = p.Cash
	case MethodSafetyPay:
		w.SafetyPay = p.SafetyPay
		if w.SafetyPay == nil {
			w.SafetyPay = &SafetyPayPayment{}
		}
	case MethodPrivateLabel:
		w.PrivateLabel = p.PrivateLabel
	}

	return json.Marshal(w)
}

// variant возвращает заполненную часть для Method.
// ok=false, если данные для способа оплаты не переданы.
func (p *Payment) variant() (v Validator, ok bool) {
	switch p.Method {
	case MethodCreditCard:
		return p.CreditCard, p.CreditCard != nil
	case MethodDebitCard:
		return p.DebitCard, p.DebitCard != nil
	case MethodPix:
		return p.Pix, p.Pix != nil
	case MethodBoleto:
		return p.Boleto, p.Boleto != nil
	case MethodVoucher:
		return p.Voucher, p.Voucher != nil
	case MethodCash:
		return p.Cash, p.Cash != nil
	case MethodSafetyPay:
		// Данные SafetyPay необязательны, Validate безопасен для nil.
		return p.SafetyPay, true
	case MethodPrivateLabel:
		return p.PrivateLabel, p.PrivateLabel != nil
	}
	return nil, false
}

// Validate проверяет способ оплаты, наличие и корректность его данных,
// плательщика и сумму.
func (p *Payment) Validate() []string {
	return p.ValidateAt(time.Now())
}

// ValidateAt — Validate с заданным текущим моментом для правил сроков PIX.
func (p *Payment) ValidateAt(now time.Time) []string {
	var errs errorList

	if !p.Method.IsValid() {
		names := make([]string, 0, len(supportedMethods))
		for _, m := range supportedMethods {
			names = append(names, string(m.Method))
		}
		errs.add("Invalid payment method. Valid methods: " + strings.Join(names, ", "))
	}

	v, ok := p.variant()
	if !ok {
		errs.addf("Payment data for %s is required", p.Method)
	} else if p.Method == MethodPix {
		errs.merge("", p.Pix.ValidateAt(now))
	} else {
		errs.merge("", v.Validate())
	}

	if p.Customer != nil {
		errs.merge("", p.Customer.Validate())
	}

	if p.Amount != nil && *p.Amount <= 0 {
		errs.add("Amount must be greater than 0")
	}

	return errs.list()
}

// IsValid возвращает true, если платёж прошёл валидацию.
func (p *Payment) IsValid() bool {
	return len(p.Validate()) == 0
}
