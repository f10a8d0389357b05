package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"net/http"
)

// fallbackHeaders — заголовки, в которых ищется подпись после настроенного.
var fallbackHeaders = []string{
	"X-Signature",
	"X-Pagarme-Signature",
	"X-Hub-Signature",
	"X-Webhook-Signature",
}

type macFunc func() hash.Hash

func macFor(algorithm string) (macFunc, error) {
	switch algorithm {
	case "sha1":
		return sha1.New, nil
	case "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, algorithm)
}

// GenerateSignature возвращает подпись тела в формате "{algorithm}=hex".
func (v *Validator) GenerateSignature(payload []byte) string {
	m := hmac.New(v.mac, []byte(v.cfg.Secret))
	m.Write(payload)
	return v.cfg.Algorithm + "=" + hex.EncodeToString(m.Sum(nil))
}

// Validate сравнивает подпись с ожидаемой за постоянное время.
// Пустая подпись невалидна; без секрета возвращается ErrSecretNotConfigured.
func (v *Validator) Validate(payload []byte, signature string) (bool, error) {
	if v.cfg.Secret == "" {
		return false, ErrSecretNotConfigured
	}
	if signature == "" {
		return false, nil
	}
	expected := v.GenerateSignature(payload)
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}

// ValidateRequest извлекает подпись из заголовков и проверяет тело запроса.
func (v *Validator) ValidateRequest(r Request) (bool, error) {
	return v.Validate(r.Body, v.extractSignature(r.Header))
}

func (v *Validator) extractSignature(h http.Header) string {
	if s := h.Get(v.cfg.HeaderName); s != "" {
		return s
	}
	for _, name := range fallbackHeaders {
		if s := h.Get(name); s != "" {
			return s
		}
	}
	return ""
}

// minMaskedSecretLen — с какой длины в маске видны края секрета.
const minMaskedSecretLen = 16

// SecretMasked возвращает секрет в виде "abcd****wxyz" для логов.
// Короткий секрет целиком заменяется на "****".
func (v *Validator) SecretMasked() string {
	s := v.cfg.Secret
	switch {
	case s == "":
		return "[NOT SET]"
	case len(s) < minMaskedSecretLen:
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
