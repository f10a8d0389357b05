// Package config загружает конфигурацию из переменных окружения.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"example.com/pagarme-gateway/pkg/payment"
)

// Config — полная конфигурация приложения.
type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	Pagarme     PagarmeConfig
	Webhook     WebhookConfig
	Antifraud   AntifraudConfig
	SubMerchant SubMerchantConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	Jaeger      JaegerConfig
	Metrics     MetricsConfig
}

// AppConfig — общие настройки приложения.
type AppConfig struct {
	Name      string `env:"APP_NAME" envDefault:"pagarme-gateway"`
	Env       string `env:"APP_ENV" envDefault:"development"` // local, development, staging, production
	Debug     bool   `env:"APP_DEBUG" envDefault:"false"`     // причины отказа webhook в ответе
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// PagarmeConfig — доступ к API Pagar.me.
type PagarmeConfig struct {
	SecretKey  string `env:"PAGARME_SECRET_KEY"`
	PublicKey  string `env:"PAGARME_PUBLIC_KEY"`
	APIURL     string `env:"PAGARME_API_URL" envDefault:"https://api.pagar.me/core/v5"`
	ClientMode string `env:"PAGARME_CLIENT_MODE" envDefault:"gateway"` // psp | gateway
}

// AntifraudConfig — антифрод в режиме gateway (в режиме psp он включён всегда).
type AntifraudConfig struct {
	Enabled bool `env:"PAGARME_ANTIFRAUD_ENABLED" envDefault:"false"`
}

// RedisConfig — подключение к Redis (rate limiter).
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Addr возвращает адрес Redis сервера.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig — ограничение частоты запросов к /api/v1 по IP.
type RateLimitConfig struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// JaegerConfig — трассировка через OTLP.
type JaegerConfig struct {
	Enabled  bool   `env:"JAEGER_ENABLED" envDefault:"true"`
	Host     string `env:"JAEGER_HOST" envDefault:"localhost"`
	OTLPPort int    `env:"JAEGER_OTLP_PORT" envDefault:"4317"` // OTLP gRPC порт
}

// OTLPEndpoint возвращает OTLP gRPC endpoint для Jaeger.
func (c JaegerConfig) OTLPEndpoint() string {
	return fmt.Sprintf("%s:%d", c.Host, c.OTLPPort)
}

// MetricsConfig — отдельный HTTP сервер для /metrics, /healthz и /readyz.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	Port    int  `env:"METRICS_PORT" envDefault:"9090"`
}

// Addr возвращает адрес для Metrics HTTP сервера.
func (c MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load загружает конфигурацию из окружения, предварительно прочитав .env, если он есть.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return parse()
}

// LoadFromFile загружает конфигурацию из указанного .env файла.
func LoadFromFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("ошибка загрузки .env файла %s: %w", path, err)
	}
	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые env не может проверить сам.
func (c *Config) Validate() error {
	if !payment.Mode(c.Pagarme.ClientMode).IsValid() {
		return fmt.Errorf("PAGARME_CLIENT_MODE: ожидается psp или gateway, получено %q", c.Pagarme.ClientMode)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQUESTS и RATE_LIMIT_WINDOW должны быть положительными")
	}
	return nil
}

// IsLocal возвращает true для локального окружения разработчика.
func (c *Config) IsLocal() bool {
	return c.App.Env == "local"
}

// IsDevelopment возвращает true, если приложение запущено в development режиме.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction возвращает true, если приложение запущено в production режиме.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DebugResponses сообщает, можно ли отдавать клиенту отладочные детали
// (причины отказа webhook). В production всегда false.
func (c *Config) DebugResponses() bool {
	return c.App.Debug && !c.IsProduction()
}

// AssemblerConfig — настройки сборщика заказов.
func (c *Config) AssemblerConfig() payment.AssemblerConfig {
	return payment.AssemblerConfig{
		Mode:             payment.Mode(c.Pagarme.ClientMode),
		AntifraudEnabled: c.Antifraud.Enabled,
		SubMerchant:      c.SubMerchant.Settings(),
	}
}
