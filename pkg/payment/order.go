package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MaxOrderCode — предел длины кода заказа.
const MaxOrderCode = 52

// Location — геопозиция покупателя для антифрода.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Device — устройство покупателя для антифрода.
type Device struct {
	Platform string `json:"platform"`
}

// Shipping — данные доставки.
type Shipping struct {
	Amount                int64    `json:"amount,omitempty"`
	Description           string   `json:"description,omitempty"`
	RecipientName         string   `json:"recipient_name,omitempty"`
	RecipientPhone        string   `json:"recipient_phone,omitempty"`
	Address               *Address `json:"address,omitempty"`
	MaxDeliveryDate       string   `json:"max_delivery_date,omitempty"`
	EstimatedDeliveryDate string   `json:"estimated_delivery_date,omitempty"`
	Type                  string   `json:"type,omitempty"`
}

// Order — заказ: позиции, покупатель, один или несколько платежей
// и необязательный контекст антифрода, доставки и субмерчанта.
//
// Покупатель задаётся либо целиком (Customer), либо ссылкой (CustomerID).
// Если задано и то и другое, в payload уходит ссылка.
type Order struct {
	Items            []Item
	Customer         *Customer
	CustomerID       string
	Payments         []Payment
	Code             string
	Closed           *bool
	AntifraudEnabled *bool
	IP               string
	SessionID        string
	Location         *Location
	Device           *Device
	Shipping         *Shipping
	Metadata         Metadata
	SubMerchant      *SubMerchant

	// NoSubMerchant явно отключает субмерчанта из конфигурации.
	NoSubMerchant bool
}

// NewOrder создаёт закрытый заказ с одним платежом.
func NewOrder(items []Item, customer *Customer, p Payment) *Order {
	closed := true
	return &Order{Items: items, Customer: customer, Payments: []Payment{p}, Closed: &closed}
}

// NewOpenOrder создаёт открытый заказ: платежи можно будет добавлять позже.
func NewOpenOrder(items []Item, customer *Customer, payments ...Payment) *Order {
	closed := false
	return &Order{Items: items, Customer: customer, Payments: payments, Closed: &closed}
}

// AddItem добавляет позицию.
func (o *Order) AddItem(i Item) *Order {
	o.Items = append(o.Items, i)
	return o
}

// AddPayment добавляет платёж.
func (o *Order) AddPayment(p Payment) *Order {
	o.Payments = append(o.Payments, p)
	return o
}

// WithAntifraud включает или выключает антифрод для заказа.
func (o *Order) WithAntifraud(enabled bool) *Order {
	o.AntifraudEnabled = &enabled
	return o
}

// WithSubMerchant задаёт субмерчанта явно.
func (o *Order) WithSubMerchant(s *SubMerchant) *Order {
	o.SubMerchant = s
	o.NoSubMerchant = false
	return o
}

// WithoutSubMerchant запрещает подстановку субмерчанта из конфигурации.
func (o *Order) WithoutSubMerchant() *Order {
	o.SubMerchant = nil
	o.NoSubMerchant = true
	return o
}

// TotalAmount — сумма всех платежей заказа. Платежи без суммы считаются нулём.
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, p := range o.Payments {
		total += p.AmountValue()
	}
	return total
}

// =============================================================================
// Валидация
// =============================================================================

// Validate проверяет позиции, покупателя, платежи и код заказа.
// Ошибки вложенных сущностей получают префикс с индексом.
func (o *Order) Validate() []string {
	return o.ValidateAt(time.Now())
}

// ValidateAt — Validate с заданным текущим моментом.
func (o *Order) ValidateAt(now time.Time) []string {
	var errs errorList

	if len(o.Items) == 0 {
		errs.add("Order must have at least one item")
	}
	for i := range o.Items {
		errs.merge(fmt.Sprintf("Item %d: ", i), o.Items[i].Validate())
	}

	switch {
	case o.CustomerID != "":
	case o.Customer == nil:
		errs.add("Customer ID cannot be empty")
	default:
		errs.merge("Customer: ", o.Customer.Validate())
	}

	if len(o.Payments) == 0 {
		errs.add("Order must have at least one payment")
	}
	for i := range o.Payments {
		errs.merge(fmt.Sprintf("Payment %d: ", i), o.Payments[i].ValidateAt(now))
	}

	if len(o.Code) > MaxOrderCode {
		errs.add("Order code must not exceed 52 characters")
	}

	if o.SubMerchant != nil {
		errs.merge("Submerchant: ", o.SubMerchant.Validate())
	}
	if o.Shipping != nil && o.Shipping.Address != nil {
		errs.merge("Shipping address: ", o.Shipping.Address.Validate())
	}

	return errs.list()
}

// IsValid возвращает true, если заказ прошёл валидацию.
func (o *Order) IsValid() bool {
	return len(o.Validate()) == 0
}

// ValidateAntifraud проверяет, достаточно ли данных для антифрода:
// полный покупатель, хотя бы одна позиция и хотя бы один адрес.
//
// Адресом считается адрес покупателя, платёжный адрес кредитной карты
// или наличие любого boleto платежа, даже без адреса.
func (o *Order) ValidateAntifraud() []string {
	var errs errorList

	if o.Customer != nil && o.CustomerID == "" {
		errs.merge("", o.Customer.antifraudErrors())
	}

	if len(o.Items) == 0 {
		errs.add("Antifraud: At least one item is required")
	}

	if !o.hasAntifraudAddress() {
		errs.add("Antifraud: At least one address is required (customer.address, credit_card.billing_address, or boleto.billing_address)")
	}

	return errs.list()
}

// IsAntifraudReady возвращает true, если антифрод можно запускать.
func (o *Order) IsAntifraudReady() bool {
	return len(o.ValidateAntifraud()) == 0
}

// hasAntifraudAddress ищет адрес у клиента или в данных платежа выбранного
// способа. Boleto засчитывается всегда: адрес плательщика берётся из заказа.
func (o *Order) hasAntifraudAddress() bool {
	if o.Customer != nil && o.Customer.Address != nil {
		return true
	}
	for _, p := range o.Payments {
		switch p.Method {
		case MethodCreditCard:
			if p.CreditCard != nil && p.CreditCard.hasBillingAddress() {
				return true
			}
		case MethodBoleto:
			if p.Boleto != nil {
				return true
			}
		}
	}
	return false
}

// =============================================================================
// Сериализация
// =============================================================================

type customerRef struct {
	ID string `json:"id"`
}

type orderWire struct {
	Items            []Item       `json:"items"`
	Customer         any          `json:"customer,omitempty"`
	Payments         []Payment    `json:"payments"`
	Code             string       `json:"code,omitempty"`
	Closed           *bool        `json:"closed,omitempty"`
	AntifraudEnabled *bool        `json:"antifraud_enabled,omitempty"`
	IP               string       `json:"ip,omitempty"`
	SessionID        string       `json:"session_id,omitempty"`
	Location         *Location    `json:"location,omitempty"`
	Device           *Device      `json:"device,omitempty"`
	Metadata         Metadata     `json:"metadata,omitempty"`
	Shipping         *Shipping    `json:"shipping,omitempty"`
	SubMerchant      *SubMerchant `json:"submerchant,omitempty"`
}

// MarshalJSON формирует payload заказа. Покупатель-ссылка передаётся как {"id": ...}.
// Субмерчант из конфигурации сюда не подставляется: это делает Assembler.
func (o Order) MarshalJSON() ([]byte, error) {
	w := orderWire{
		Items:            o.Items,
		Payments:         o.Payments,
		Code:             o.Code,
		Closed:           o.Closed,
		AntifraudEnabled: o.AntifraudEnabled,
		IP:               o.IP,
		SessionID:        o.SessionID,
		Location:         o.Location,
		Device:           o.Device,
		Metadata:         o.Metadata,
		Shipping:         o.Shipping,
	}
	if w.Items == nil {
		w.Items = []Item{}
	}
	if w.Payments == nil {
		w.Payments = []Payment{}
	}

	switch {
	case o.CustomerID != "":
		w.Customer = customerRef{ID: o.CustomerID}
	case o.Customer != nil:
		w.Customer = o.Customer
	}

	if !o.NoSubMerchant {
		w.SubMerchant = o.SubMerchant
	}

	return json.Marshal(w)
}

// UnmarshalJSON принимает покупателя объектом, строкой-ID, объектом {"id": ...}
// или отдельным полем customer_id.
func (o *Order) UnmarshalJSON(data []byte) error {
	var w struct {
		orderWire
		Customer   json.RawMessage `json:"customer"`
		CustomerID string          `json:"customer_id"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: order: %v", ErrInvalidArgument, err)
	}

	*o = Order{
		Items:            w.Items,
		Payments:         w.Payments,
		Code:             w.Code,
		Closed:           w.Closed,
		AntifraudEnabled: w.AntifraudEnabled,
		IP:               w.IP,
		SessionID:        w.SessionID,
		Location:         w.Location,
		Device:           w.Device,
		Metadata:         w.Metadata,
		Shipping:         w.Shipping,
		SubMerchant:      w.SubMerchant,
		CustomerID:       w.CustomerID,
	}

	if o.CustomerID != "" {
		return nil
	}
	return o.decodeCustomer(w.Customer)
}

func (o *Order) decodeCustomer(raw json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &o.CustomerID); err != nil {
			return fmt.Errorf("%w: customer: %v", ErrInvalidArgument, err)
		}
		return nil
	}

	var ref customerRef
	var c Customer
	if err := json.Unmarshal(raw, &ref); err != nil {
		return fmt.Errorf("%w: customer: %v", ErrInvalidArgument, err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return fmt.Errorf("%w: customer: %v", ErrInvalidArgument, err)
	}

	if ref.ID != "" && c.Name == "" && c.Email == "" {
		o.CustomerID = ref.ID
		return nil
	}
	o.Customer = &c
	return nil
}

// ParseOrder разбирает JSON заказа. Структурно битые данные возвращают
// ошибку, обёрнутую в ErrInvalidArgument; бизнес-правила проверяет Validate.
func ParseOrder(data []byte) (*Order, error) {
	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		if isInvalidArgument(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return &o, nil
}
