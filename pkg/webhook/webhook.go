// Package webhook проверяет входящие уведомления Pagar.me до того,
// как им поверит бизнес-обработчик.
//
// Проверки независимы и не прерывают друг друга: результат содержит
// все причины отказа сразу.
//
//  1. IP allow-list (точные адреса и CIDR диапазоны IPv4).
//  2. Структура payload: id с префиксом hook_, type с точкой, created_at, data.
//  3. HMAC подпись тела запроса (по умолчанию выключена: Pagar.me её не присылает).
package webhook

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"example.com/pagarme-gateway/pkg/logger"
)

// Ошибки конфигурации валидатора.
var (
	ErrSecretNotConfigured  = errors.New("Webhook secret key is not configured")
	ErrUnsupportedAlgorithm = errors.New("неподдерживаемый алгоритм HMAC")
)

// Значения по умолчанию.
const (
	DefaultAlgorithm  = "sha256"
	DefaultHeaderName = "X-Hub-Signature-256"
)

// Причины отказа.
const (
	ReasonIPNotWhitelisted = "IP not whitelisted: "
	ReasonInvalidStructure = "Invalid payload structure"
	ReasonInvalidJSON      = "Invalid JSON payload"
	ReasonInvalidSignature = "Invalid HMAC signature"
)

// Коды причин отказа. Фиксированный набор для меток метрик: текст причины
// содержит IP отправителя.
const (
	CodeIPNotWhitelisted = "ip_not_whitelisted"
	CodeInvalidStructure = "invalid_structure"
	CodeInvalidJSON      = "invalid_json"
	CodeInvalidSignature = "invalid_signature"
	CodeMissingSignature = "missing_signature"
)

// Config — настройки валидатора. Передаётся явно, валидатор не читает
// глобальную конфигурацию.
type Config struct {
	// AllowedIPs — точные IP и CIDR диапазоны. Пустой список пропускает любой IP
	// с предупреждением в логе.
	AllowedIPs []string
	ValidateIP bool

	ValidateSignature bool
	Secret            string
	Algorithm         string // sha1, sha256, sha512
	HeaderName        string
}

// Request — данные входящего запроса, нужные для проверки.
type Request struct {
	IP     string
	Body   []byte
	Header http.Header
}

// Result — итог проверки: Valid=true только при пустом списке причин.
// Codes идут в том же порядке, что и Reasons.
type Result struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons"`
	Codes   []string `json:"-"`
}

// Validator проверяет webhooks. Безопасен для конкурентного использования.
type Validator struct {
	cfg Config
	mac macFunc
	log zerolog.Logger
}

// Option — функциональная опция Validator.
type Option func(*Validator)

// WithLogger задаёт логгер для предупреждений.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) {
		v.log = l
	}
}

// NewValidator создаёт валидатор. Если проверка подписи включена,
// секрет обязателен.
func NewValidator(cfg Config, opts ...Option) (*Validator, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultHeaderName
	}

	mac, err := macFor(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if cfg.ValidateSignature && cfg.Secret == "" {
		return nil, ErrSecretNotConfigured
	}

	v := &Validator{cfg: cfg, mac: mac, log: logger.Logger()}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// ValidateWebhook выполняет все включённые проверки и собирает причины отказа.
func (v *Validator) ValidateWebhook(r Request) Result {
	res := Result{Reasons: []string{}, Codes: []string{}}
	reject := func(reason, code string) {
		res.Reasons = append(res.Reasons, reason)
		res.Codes = append(res.Codes, code)
	}

	if v.cfg.ValidateIP && !v.ValidateByIP(r.IP) {
		reject(ReasonIPNotWhitelisted+r.IP, CodeIPNotWhitelisted)
	}

	switch ok, err := v.ValidatePayload(r.Body); {
	case err != nil:
		reject(ReasonInvalidJSON, CodeInvalidJSON)
	case !ok:
		reject(ReasonInvalidStructure, CodeInvalidStructure)
	}

	if v.cfg.ValidateSignature {
		signature := v.extractSignature(r.Header)
		if signature == "" {
			reject(ReasonInvalidSignature, CodeMissingSignature)
		} else if ok, err := v.Validate(r.Body, signature); err != nil || !ok {
			reject(ReasonInvalidSignature, CodeInvalidSignature)
		}
	}

	res.Valid = len(res.Reasons) == 0
	return res
}
