package config

import (
	"strings"

	"example.com/pagarme-gateway/pkg/webhook"
)

// WebhookConfig — проверка входящих webhooks Pagar.me.
type WebhookConfig struct {
	Enabled         bool `env:"PAGARME_WEBHOOK_VALIDATION_ENABLED" envDefault:"true"`
	ValidateInLocal bool `env:"PAGARME_WEBHOOK_VALIDATE_IN_LOCAL" envDefault:"false"`

	// Пустой список пропускает любой IP (с предупреждением в логе).
	ValidateIP bool     `env:"PAGARME_WEBHOOK_VALIDATE_IP" envDefault:"true"`
	AllowedIPs []string `env:"PAGARME_WEBHOOK_ALLOWED_IPS" envSeparator:","`

	// Pagar.me не подписывает webhooks: HMAC нужен только для своих прокси.
	ValidateSignature  bool   `env:"PAGARME_WEBHOOK_VALIDATE_SIGNATURE" envDefault:"false"`
	Secret             string `env:"PAGARME_WEBHOOK_SECRET"`
	SignatureAlgorithm string `env:"PAGARME_WEBHOOK_SIGNATURE_ALGORITHM" envDefault:"sha256"`
	SignatureHeader    string `env:"PAGARME_WEBHOOK_SIGNATURE_HEADER" envDefault:"X-Hub-Signature-256"`
}

// WebhookValidatorConfig — настройки валидатора. Без отдельного секрета
// используется секретный ключ Pagar.me.
func (c *Config) WebhookValidatorConfig() webhook.Config {
	secret := c.Webhook.Secret
	if secret == "" {
		secret = c.Pagarme.SecretKey
	}

	allowed := make([]string, 0, len(c.Webhook.AllowedIPs))
	for _, ip := range c.Webhook.AllowedIPs {
		if ip = strings.TrimSpace(ip); ip != "" {
			allowed = append(allowed, ip)
		}
	}

	return webhook.Config{
		AllowedIPs:        allowed,
		ValidateIP:        c.Webhook.ValidateIP,
		ValidateSignature: c.Webhook.ValidateSignature,
		Secret:            secret,
		Algorithm:         c.Webhook.SignatureAlgorithm,
		HeaderName:        c.Webhook.SignatureHeader,
	}
}

// SkipWebhookValidation возвращает true, если проверка выключена
// или окружение локальное без явного PAGARME_WEBHOOK_VALIDATE_IN_LOCAL.
func (c *Config) SkipWebhookValidation() bool {
	if !c.Webhook.Enabled {
		return true
	}
	return c.IsLocal() && !c.Webhook.ValidateInLocal
}
