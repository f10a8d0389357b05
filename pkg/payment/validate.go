package payment

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	digitsOnly = regexp.MustCompile(`^\d+$`)
	nonDigits  = regexp.MustCompile(`\D`)
)

// Допустимые значения перечислимых полей, общие для нескольких вариантов оплаты.
var (
	validInitiatedTypes   = []string{"partial_shipment", "related_or_delayed_charge", "no_show", "retry"}
	validRecurrenceModels = []string{"standing_order", "instalment", "subscription"}
	validFundingSources   = []string{"credit", "debit", "prepaid"}
	validOperationTypes   = []string{string(OperationAuthAndCapture), string(OperationAuthOnly), string(OperationPreAuth)}
)

// Metadata — произвольные пары ключ/значение, передаваемые в Pagar.me как есть.
type Metadata map[string]string

// errorList накапливает сообщения в порядке проверок.
type errorList []string

func (l *errorList) add(msg string) {
	*l = append(*l, msg)
}

func (l *errorList) addf(format string, args ...any) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

// merge добавляет ошибки вложенной сущности, при необходимости с префиксом.
func (l *errorList) merge(prefix string, errs []string) {
	for _, e := range errs {
		*l = append(*l, prefix+e)
	}
}

func (l errorList) list() []string {
	if len(l) == 0 {
		return []string{}
	}
	return l
}

func oneOf(value string, allowed []string) bool {
	return slices.Contains(allowed, value)
}

// stripNonDigits оставляет в строке только цифры.
func stripNonDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// validateEnum проверяет необязательное перечислимое поле.
func (l *errorList) validateEnum(value string, allowed []string, label string) {
	if value != "" && !oneOf(value, allowed) {
		l.addf("%s must be one of: %s", label, strings.Join(allowed, ", "))
	}
}

// validateChannel — единственный поддерживаемый канал payment_link.
func (l *errorList) validateChannel(channel string) {
	if channel != "" && channel != "payment_link" {
		l.add(`Channel must be "payment_link"`)
	}
}

// cardSources считает заданные способы идентификации карты.
func cardSources(present ...bool) int {
	n := 0
	for _, p := range present {
		if p {
			n++
		}
	}
	return n
}

// CardReference раскладывает строковую ссылку на карту:
// значения с префиксом card_ — это card_id, остальные — card_token.
func CardReference(ref string) (cardID, cardToken string) {
	if strings.HasPrefix(ref, "card_") {
		return ref, ""
	}
	return "", ref
}
