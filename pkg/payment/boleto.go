package payment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BoletoTimeLayout — формат due_at (всегда UTC).
const BoletoTimeLayout = "2006-01-02T15:04:05Z"

// Тип документа boleto.
const (
	BoletoTypeDM  = "DM"  // Duplicata Mercantil
	BoletoTypeBDP = "BDP" // Boleto de Proposta
)

// supportedBanks — банки-эмитенты boleto в порядке кодов.
var supportedBanks = []struct {
	Code string
	Name string
}{
	{"001", "Banco do Brasil"},
	{"033", "Santander"},
	{"104", "Caixa Econômica Federal"},
	{"197", "Stone"},
	{"237", "Bradesco"},
	{"341", "Itaú"},
	{"745", "Citibank"},
}

// SupportedBanks возвращает коды банков и их названия.
func SupportedBanks() map[string]string {
	out := make(map[string]string, len(supportedBanks))
	for _, b := range supportedBanks {
		out[b.Code] = b.Name
	}
	return out
}

func bankCodes() []string {
	codes := make([]string, 0, len(supportedBanks))
	for _, b := range supportedBanks {
		codes = append(codes, b.Code)
	}
	return codes
}

// =============================================================================
// Interest / Fine
// =============================================================================

// PenaltyType — способ начисления процентов или штрафа.
type PenaltyType string

const (
	PenaltyFlat       PenaltyType = "flat"       // сумма в центах
	PenaltyPercentage PenaltyType = "percentage" // процент от суммы
)

// Penalty — проценты (interest) или штраф (fine) за просрочку boleto.
type Penalty struct {
	Days   int             `json:"days"`
	Type   PenaltyType     `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// FlatPenalty — фиксированная сумма в центах.
func FlatPenalty(days int, cents int64) *Penalty {
	return &Penalty{Days: days, Type: PenaltyFlat, Amount: decimal.NewFromInt(cents)}
}

// PercentagePenalty — процент от суммы boleto.
func PercentagePenalty(days int, percent decimal.Decimal) *Penalty {
	return &Penalty{Days: days, Type: PenaltyPercentage, Amount: percent}
}

// MarshalJSON передаёт amount числом, а не строкой.
func (p Penalty) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Days   int         `json:"days"`
		Type   PenaltyType `json:"type"`
		Amount json.Number `json:"amount"`
	}{p.Days, p.Type, json.Number(p.Amount.String())})
}

// Validate проверяет срок и границы суммы в зависимости от типа.
func (p *Penalty) Validate() []string {
	var errs errorList

	if p.Days < 1 {
		errs.add("Days must be at least 1")
	}

	switch p.Type {
	case PenaltyFlat:
		if p.Amount.LessThan(decimal.NewFromInt(1)) {
			errs.add("Flat amount must be at least 1 cent")
		}
	case PenaltyPercentage:
		if !p.Amount.IsPositive() {
			errs.add("Percentage must be greater than 0")
		}
		if p.Amount.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			errs.add("Percentage must be less than 100")
		}
	default:
		errs.add(`Type must be "flat" or "percentage"`)
	}

	return errs.list()
}

// =============================================================================
// BoletoPayment
// =============================================================================

// BoletoPayment — оплата банковским бланком.
type BoletoPayment struct {
	Bank                string
	Instructions        string
	DueAt               *time.Time
	NossoNumero         string
	Type                string
	DocumentNumber      string
	StatementDescriptor string
	Interest            *Penalty
	Fine                *Penalty
	BillingAddress      *Address
	Metadata            Metadata
}

// NewBoletoPayment — boleto с датой оплаты и инструкциями для кассира.
func NewBoletoPayment(dueAt time.Time, instructions string) *BoletoPayment {
	return &BoletoPayment{DueAt: &dueAt, Instructions: instructions}
}

type boletoWire struct {
	Bank                string   `json:"bank,omitempty"`
	Instructions        string   `json:"instructions,omitempty"`
	DueAt               string   `json:"due_at,omitempty"`
	NossoNumero         string   `json:"nosso_numero,omitempty"`
	Type                string   `json:"type,omitempty"`
	DocumentNumber      string   `json:"document_number,omitempty"`
	StatementDescriptor string   `json:"statement_descriptor,omitempty"`
	Interest            *Penalty `json:"interest,omitempty"`
	Fine                *Penalty `json:"fine,omitempty"`
	BillingAddress      *Address `json:"billing_address,omitempty"`
	Metadata            Metadata `json:"metadata,omitempty"`
}

func (p BoletoPayment) wire() boletoWire {
	w := boletoWire{
		Bank:                p.Bank,
		Instructions:        p.Instructions,
		NossoNumero:         p.NossoNumero,
		Type:                p.Type,
		DocumentNumber:      p.DocumentNumber,
		StatementDescriptor: p.StatementDescriptor,
		Interest:            p.Interest,
		Fine:                p.Fine,
		BillingAddress:      p.BillingAddress,
		Metadata:            p.Metadata,
	}
	if p.DueAt != nil {
		w.DueAt = p.DueAt.UTC().Format(BoletoTimeLayout)
	}
	return w
}

// MarshalJSON передаёт due_at в UTC.
func (p BoletoPayment) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// UnmarshalJSON разбирает due_at в формате API или RFC 3339.
func (p *BoletoPayment) UnmarshalJSON(data []byte) error {
	var w boletoWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: boleto: %v", ErrInvalidArgument, err)
	}

	*p = BoletoPayment{
		Bank:                w.Bank,
		Instructions:        w.Instructions,
		NossoNumero:         w.NossoNumero,
		Type:                w.Type,
		DocumentNumber:      w.DocumentNumber,
		StatementDescriptor: w.StatementDescriptor,
		Interest:            w.Interest,
		Fine:                w.Fine,
		BillingAddress:      w.BillingAddress,
		Metadata:            w.Metadata,
	}

	if w.DueAt != "" {
		t, err := parseTime(w.DueAt, BoletoTimeLayout)
		if err != nil {
			return fmt.Errorf("%w: boleto due_at %q", ErrInvalidArgument, w.DueAt)
		}
		p.DueAt = &t
	}
	return nil
}

// Validate проверяет банк, тип документа, ограничения длины, проценты и штраф.
func (p *BoletoPayment) Validate() []string {
	var errs errorList

	if p.Bank != "" && !oneOf(p.Bank, bankCodes()) {
		errs.add("Invalid bank code. Valid codes: " + strings.Join(bankCodes(), ", "))
	}
	if len(p.Instructions) > 256 {
		errs.add("Instructions must not exceed 256 characters")
	}
	if p.Type != "" && p.Type != BoletoTypeDM && p.Type != BoletoTypeBDP {
		errs.add("Type must be DM (Duplicata Mercantil) or BDP (Boleto de Proposta)")
	}
	if len(p.DocumentNumber) > 16 {
		errs.add("Document number must not exceed 16 characters")
	}
	if len(p.StatementDescriptor) > MaxStatementDescriptorPSP {
		errs.add("Statement descriptor must not exceed 13 characters")
	}

	if p.Interest != nil {
		errs.merge("Interest: ", p.Interest.Validate())
	}
	if p.Fine != nil {
		errs.merge("Fine: ", p.Fine.Validate())
	}
	if p.BillingAddress != nil {
		errs.merge("Billing address: ", p.BillingAddress.Validate())
	}

	return errs.list()
}
