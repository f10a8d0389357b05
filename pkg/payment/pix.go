package payment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PixTimeLayout — формат expires_at без часового пояса (всегда UTC).
const PixTimeLayout = "2006-01-02T15:04:05"

// PixMaxExpiration — максимальный срок жизни QR-кода.
const PixMaxExpiration = 10 // лет

// AdditionalInformation — пара имя/значение, показываемая плательщику.
type AdditionalInformation struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PixPayment — оплата через PIX. Срок действия задаётся ровно одним способом:
// ExpiresIn (секунды) или ExpiresAt (момент времени).
type PixPayment struct {
	ExpiresIn             *int64
	ExpiresAt             *time.Time
	AdditionalInformation []AdditionalInformation
}

// NewPixPayment — QR-код, действующий указанное число секунд.
func NewPixPayment(expiresIn int64) *PixPayment {
	return &PixPayment{ExpiresIn: &expiresIn}
}

// NewPixPaymentUntil — QR-код, действующий до указанного момента.
func NewPixPaymentUntil(expiresAt time.Time) *PixPayment {
	return &PixPayment{ExpiresAt: &expiresAt}
}

type pixWire struct {
	ExpiresIn             string                  `json:"expires_in,omitempty"`
	ExpiresAt             string                  `json:"expires_at,omitempty"`
	AdditionalInformation []AdditionalInformation `json:"additional_information,omitempty"`
}

// MarshalJSON передаёт expires_in строкой, как того требует API.
func (p PixPayment) MarshalJSON() ([]byte, error) {
	var w pixWire
	if p.ExpiresIn != nil {
		w.ExpiresIn = strconv.FormatInt(*p.ExpiresIn, 10)
	}
	if p.ExpiresAt != nil {
		w.ExpiresAt = p.ExpiresAt.UTC().Format(PixTimeLayout)
	}
	w.AdditionalInformation = p.AdditionalInformation
	return json.Marshal(w)
}

// UnmarshalJSON принимает expires_in числом или строкой,
// expires_at — в формате API или RFC 3339.
func (p *PixPayment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ExpiresIn             json.Number             `json:"expires_in"`
		ExpiresAt             string                  `json:"expires_at"`
		AdditionalInformation []AdditionalInformation `json:"additional_information"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: pix: %v", ErrInvalidArgument, err)
	}

	*p = PixPayment{AdditionalInformation: raw.AdditionalInformation}

	if raw.ExpiresIn != "" {
		n, err := raw.ExpiresIn.Int64()
		if err != nil {
			return fmt.Errorf("%w: pix expires_in %q", ErrInvalidArgument, raw.ExpiresIn)
		}
		p.ExpiresIn = &n
	}
	if raw.ExpiresAt != "" {
		t, err := parseTime(raw.ExpiresAt, PixTimeLayout)
		if err != nil {
			return fmt.Errorf("%w: pix expires_at %q", ErrInvalidArgument, raw.ExpiresAt)
		}
		p.ExpiresAt = &t
	}
	return nil
}

// Validate проверяет срок действия относительно текущего времени.
func (p *PixPayment) Validate() []string {
	return p.ValidateAt(time.Now())
}

// ValidateAt проверяет срок действия относительно момента now.
// Ровно 10 лет от now — допустимо, позже — нет.
func (p *PixPayment) ValidateAt(now time.Time) []string {
	var errs errorList

	switch {
	case p.ExpiresIn == nil && p.ExpiresAt == nil:
		errs.add("Either expires_in or expires_at must be provided")
	case p.ExpiresIn != nil && p.ExpiresAt != nil:
		errs.add("Only one of expires_in or expires_at may be provided")
	}

	if p.ExpiresIn != nil && *p.ExpiresIn <= 0 {
		errs.add("Expires in must be greater than 0")
	}

	if p.ExpiresAt != nil {
		if !p.ExpiresAt.After(now) {
			errs.add("Expiration date must be in the future")
		}
		if p.ExpiresAt.After(now.AddDate(PixMaxExpiration, 0, 0)) {
			errs.add("Maximum expiration is 10 years")
		}
	}

	for i, info := range p.AdditionalInformation {
		if info.Name == "" {
			errs.addf("Additional information %d: name is required", i)
		}
	}

	return errs.list()
}

// parseTime разбирает время в формате API, затем в RFC 3339.
func parseTime(value, layout string) (time.Time, error) {
	if t, err := time.Parse(layout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
