package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"example.com/pagarme-gateway/pkg/logger"
)

// Mode — режим работы с Pagar.me.
type Mode string

const (
	// ModePSP — Pagar.me как платёжный сервис-провайдер: антифрод обязателен.
	ModePSP Mode = "psp"

	// ModeGateway — Pagar.me как шлюз к собственному эквайрингу мерчанта.
	ModeGateway Mode = "gateway"
)

// IsValid возвращает true для известных режимов.
func (m Mode) IsValid() bool {
	return m == ModePSP || m == ModeGateway
}

// AssemblerConfig — настройки сборки заказа.
type AssemblerConfig struct {
	Mode             Mode
	AntifraudEnabled bool
	SubMerchant      SubMerchantSettings
}

// Assembler проверяет заказ по правилам режима и формирует wire-payload.
// Безопасен для конкурентного использования: состояние не меняется после создания.
type Assembler struct {
	cfg AssemblerConfig
	now func() time.Time
}

// AssemblerOption — функциональная опция Assembler.
type AssemblerOption func(*Assembler)

// WithClock подменяет источник текущего времени (для тестов сроков PIX).
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		a.now = now
	}
}

// NewAssembler создаёт сборщик. Неизвестный режим трактуется как gateway.
func NewAssembler(cfg AssemblerConfig, opts ...AssemblerOption) *Assembler {
	if !cfg.Mode.IsValid() {
		cfg.Mode = ModeGateway
	}
	a := &Assembler{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Mode возвращает режим сборщика.
func (a *Assembler) Mode() Mode {
	return a.cfg.Mode
}

// Prepare возвращает копию заказа с подставленным субмерчантом и список ошибок.
// Исходный заказ не изменяется.
//
// Субмерчант выбирается так: явно заданный в заказе, затем явный отказ
// (WithoutSubMerchant), затем субмерчант из конфигурации.
func (a *Assembler) Prepare(o *Order) (*Order, []string) {
	prepared := *o
	if prepared.SubMerchant == nil && !prepared.NoSubMerchant {
		prepared.SubMerchant = a.cfg.SubMerchant.Resolve()
	}

	var errs errorList
	errs.merge("", prepared.ValidateAt(a.now()))

	if a.antifraudRequired(&prepared) {
		errs.merge("", prepared.ValidateAntifraud())
	}

	if a.cfg.Mode == ModePSP {
		for i, p := range prepared.Payments {
			if p.Method != MethodCreditCard || p.CreditCard == nil {
				continue
			}
			if len(p.CreditCard.StatementDescriptor) > MaxStatementDescriptorPSP {
				errs.addf("Payment %d: Statement descriptor must not exceed %d characters in PSP mode", i, MaxStatementDescriptorPSP)
			}
		}
	}

	return &prepared, errs.list()
}

// Assemble проверяет заказ и возвращает JSON для POST /orders.
// При ошибках валидации возвращает *ValidationError.
func (a *Assembler) Assemble(ctx context.Context, o *Order) ([]byte, error) {
	log := logger.FromContext(ctx)

	prepared, errs := a.Prepare(o)
	if len(errs) > 0 {
		log.Debug().
			Str("mode", string(a.cfg.Mode)).
			Strs("errors", errs).
			Msg("Заказ не прошёл валидацию")
		return nil, &ValidationError{Errors: errs}
	}

	payload, err := json.Marshal(prepared)
	if err != nil {
		return nil, fmt.Errorf("сериализация заказа: %w", err)
	}

	log.Debug().
		Str("mode", string(a.cfg.Mode)).
		Int("items", len(prepared.Items)).
		Int("payments", len(prepared.Payments)).
		Int64("total_amount", prepared.TotalAmount()).
		Bool("submerchant", prepared.SubMerchant != nil).
		Msg("Заказ собран")

	return payload, nil
}

func (a *Assembler) antifraudRequired(o *Order) bool {
	if a.cfg.Mode == ModePSP || a.cfg.AntifraudEnabled {
		return true
	}
	return o.AntifraudEnabled != nil && *o.AntifraudEnabled
}
