package webhook

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{"id":"hook_abc","type":"charge.pending","created_at":"2025-01-01T00:00:00Z","data":{}}`

func newTestValidator(t *testing.T, cfg Config) *Validator {
	t.Helper()

	v, err := NewValidator(cfg, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return v
}

func TestNewValidator(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		v := newTestValidator(t, Config{})
		assert.Equal(t, DefaultAlgorithm, v.cfg.Algorithm)
		assert.Equal(t, DefaultHeaderName, v.cfg.HeaderName)
	})

	t.Run("подпись без секрета", func(t *testing.T) {
		_, err := NewValidator(Config{ValidateSignature: true})
		assert.ErrorIs(t, err, ErrSecretNotConfigured)
		assert.EqualError(t, ErrSecretNotConfigured, "Webhook secret key is not configured")
	})

	t.Run("неизвестный алгоритм", func(t *testing.T) {
		_, err := NewValidator(Config{Algorithm: "md5"})
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestValidateByIP(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		ip       string
		expected bool
	}{
		{"внутри CIDR", []string{"192.168.1.0/24"}, "192.168.1.50", true},
		{"вне CIDR", []string{"192.168.1.0/24"}, "192.168.2.50", false},
		{"точное совпадение", []string{"10.0.0.1"}, "10.0.0.1", true},
		{"другой адрес без CIDR", []string{"10.0.0.1"}, "10.0.0.2", false},
		{"вторая запись списка", []string{"10.0.0.1", "172.16.0.0/12"}, "172.31.255.255", true},
		{"маска /32", []string{"52.186.34.80/32"}, "52.186.34.80", true},
		{"маска /0 покрывает всё", []string{"0.0.0.0/0"}, "8.8.8.8", true},
		{"IPv4-mapped IPv6", []string{"192.168.1.0/24"}, "::ffff:192.168.1.7", true},
		{"некорректный IP", []string{"192.168.1.0/24"}, "not-an-ip", false},
		{"некорректная маска", []string{"192.168.1.0/33"}, "192.168.1.1", false},
		{"IPv6 вне IPv4 диапазона", []string{"192.168.1.0/24"}, "2001:db8::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t, Config{AllowedIPs: tt.allowed})
			assert.Equal(t, tt.expected, v.ValidateByIP(tt.ip))
		})
	}
}

func TestValidateByIP_EmptyListIsPermissive(t *testing.T) {
	var buf bytes.Buffer
	v, err := NewValidator(Config{}, WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	assert.True(t, v.ValidateByIP("203.0.113.9"))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "203.0.113.9")
}

func TestValidatePayloadStructure(t *testing.T) {
	tests := []struct {
		name     string
		payload  map[string]any
		expected bool
	}{
		{
			name:     "валидный payload",
			payload:  map[string]any{"id": "hook_1", "type": "order.paid", "created_at": "2025-01-01", "data": map[string]any{}},
			expected: true,
		},
		{
			name:     "нет type",
			payload:  map[string]any{"id": "hook_1", "created_at": "2025-01-01", "data": map[string]any{}},
			expected: false,
		},
		{
			name:     "data равно null",
			payload:  map[string]any{"id": "hook_1", "type": "order.paid", "created_at": "2025-01-01", "data": nil},
			expected: false,
		},
		{
			name:     "id без префикса hook_",
			payload:  map[string]any{"id": "evt_1", "type": "order.paid", "created_at": "2025-01-01", "data": map[string]any{}},
			expected: false,
		},
		{
			name:     "type без точки",
			payload:  map[string]any{"id": "hook_1", "type": "orderpaid", "created_at": "2025-01-01", "data": map[string]any{}},
			expected: false,
		},
		{
			name: "account без name",
			payload: map[string]any{
				"id": "hook_1", "type": "order.paid", "created_at": "2025-01-01", "data": map[string]any{},
				"account": map[string]any{"id": "acc_1"},
			},
			expected: false,
		},
		{
			name: "полный account",
			payload: map[string]any{
				"id": "hook_1", "type": "order.paid", "created_at": "2025-01-01", "data": map[string]any{},
				"account": map[string]any{"id": "acc_1", "name": "Loja"},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidatePayloadStructure(tt.payload))
		})
	}
}

func TestValidateWebhook(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		request  Request
		expected Result
	}{
		{
			name:     "все проверки выключены, валидный payload",
			cfg:      Config{},
			request:  Request{IP: "1.2.3.4", Body: []byte(validPayload)},
			expected: Result{Valid: true, Reasons: []string{}, Codes: []string{}},
		},
		{
			name:     "нет type",
			cfg:      Config{},
			request:  Request{Body: []byte(`{"id":"hook_abc","created_at":"2025-01-01T00:00:00Z","data":{}}`)},
			expected: Result{Valid: false, Reasons: []string{"Invalid payload structure"}, Codes: []string{CodeInvalidStructure}},
		},
		{
			name:     "невалидный JSON",
			cfg:      Config{},
			request:  Request{Body: []byte(`{"id":`)},
			expected: Result{Valid: false, Reasons: []string{"Invalid JSON payload"}, Codes: []string{CodeInvalidJSON}},
		},
		{
			name:     "JSON массив",
			cfg:      Config{},
			request:  Request{Body: []byte(`[]`)},
			expected: Result{Valid: false, Reasons: []string{"Invalid payload structure"}, Codes: []string{CodeInvalidStructure}},
		},
		{
			name: "все проверки проваливаются без остановки",
			cfg: Config{
				ValidateIP:        true,
				AllowedIPs:        []string{"192.168.1.0/24"},
				ValidateSignature: true,
				Secret:            "whsec_test_secret",
			},
			request: Request{IP: "10.0.0.1", Body: []byte(`{}`), Header: http.Header{}},
			expected: Result{
				Valid: false,
				Reasons: []string{
					"IP not whitelisted: 10.0.0.1",
					"Invalid payload structure",
					"Invalid HMAC signature",
				},
				Codes: []string{CodeIPNotWhitelisted, CodeInvalidStructure, CodeMissingSignature},
			},
		},
		{
			name: "неверная подпись",
			cfg:  Config{ValidateSignature: true, Secret: "whsec_test_secret"},
			request: Request{
				Body:   []byte(validPayload),
				Header: http.Header{"X-Hub-Signature-256": []string{"sha256=deadbeef"}},
			},
			expected: Result{
				Valid:   false,
				Reasons: []string{"Invalid HMAC signature"},
				Codes:   []string{CodeInvalidSignature},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t, tt.cfg)
			assert.Equal(t, tt.expected, v.ValidateWebhook(tt.request))
		})
	}
}

func TestValidateWebhook_ValidSignature(t *testing.T) {
	v := newTestValidator(t, Config{
		ValidateIP:        true,
		AllowedIPs:        []string{"192.168.1.0/24"},
		ValidateSignature: true,
		Secret:            "whsec_test_secret",
	})

	header := http.Header{}
	header.Set(DefaultHeaderName, v.GenerateSignature([]byte(validPayload)))

	result := v.ValidateWebhook(Request{IP: "192.168.1.50", Body: []byte(validPayload), Header: header})
	assert.Equal(t, Result{Valid: true, Reasons: []string{}, Codes: []string{}}, result)
}

func TestEventTypeLabel(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		expected  string
	}{
		{"заказ оплачен", "order.paid", "order.paid"},
		{"антифрод", "charge.antifraud_reproved", "charge.antifraud_reproved"},
		{"неизвестный тип", "order.hacked_1234", EventTypeOther},
		{"пустой тип", "", EventTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EventTypeLabel(tt.eventType))
		})
	}
}
