package decline

import (
	"slices"
	"strings"
)

// Category — группа кода по первой цифре.
type Category string

const (
	CategoryApproved      Category = "approved"
	CategoryDeclined      Category = "declined"
	CategoryInternalError Category = "internal_error"
	CategorySystemError   Category = "system_error"
	CategoryUnknown       Category = "unknown"
)

// CategoryOf возвращает категорию по первой цифре кода.
// Работает и для кодов, которых нет в таблице.
func CategoryOf(raw string) Category {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryUnknown
	}
	switch raw[0] {
	case '0':
		return CategoryApproved
	case '1':
		return CategoryDeclined
	case '5':
		return CategoryInternalError
	case '9':
		return CategorySystemError
	}
	return CategoryUnknown
}

// Classify ищет код в таблице ABECS.
// ok=false для неизвестных кодов: вызывающий использует сырые сообщения.
func Classify(raw string) (Code, bool) {
	c := Code(strings.TrimSpace(raw))
	if _, ok := messages[c]; !ok {
		return "", false
	}
	return c, true
}

// CanRetry сообщает, допустим ли повтор транзакции с этим кодом.
// Неизвестные коды считаются допускающими повтор.
func CanRetry(raw string) bool {
	_, denied := nonRetryable[Code(strings.TrimSpace(raw))]
	return !denied
}

// IsFraudRelated сообщает, связан ли код с мошенничеством.
func IsFraudRelated(raw string) bool {
	_, ok := fraudRelated[Code(strings.TrimSpace(raw))]
	return ok
}

// Codes возвращает все известные коды в порядке возрастания.
func Codes() []Code {
	out := make([]Code, 0, len(messages))
	for c := range messages {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// =============================================================================
// Методы Code
// =============================================================================

func (c Code) String() string {
	return string(c)
}

// Known возвращает true, если код есть в таблице.
func (c Code) Known() bool {
	_, ok := messages[c]
	return ok
}

// Message возвращает сообщение для покупателя или пустую строку для неизвестного кода.
func (c Code) Message() string {
	return messages[c]
}

// Category возвращает категорию кода.
func (c Code) Category() Category {
	return CategoryOf(string(c))
}

// CanRetry — см. пакетную функцию CanRetry.
func (c Code) CanRetry() bool {
	_, denied := nonRetryable[c]
	return !denied
}

// IsFraudRelated — см. пакетную функцию IsFraudRelated.
func (c Code) IsFraudRelated() bool {
	_, ok := fraudRelated[c]
	return ok
}

// IsInvalidCard — отказ из-за карты (утеряна, украдена, просрочена, заблокирована).
func (c Code) IsInvalidCard() bool {
	_, ok := invalidCard[c]
	return ok
}

func (c Code) IsApproved() bool { return c.Category() == CategoryApproved }

func (c Code) IsDeclined() bool { return c.Category() == CategoryDeclined }

func (c Code) IsInternalError() bool { return c.Category() == CategoryInternalError }

func (c Code) IsSystemError() bool { return c.Category() == CategorySystemError }

// Info — описание кода для API и логов.
type Info struct {
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Category Category `json:"category"`
	CanRetry bool     `json:"can_retry"`
	IsFraud  bool     `json:"is_fraud"`
	Known    bool     `json:"known"`
}

// Describe возвращает описание кода. Для неизвестного кода Message пустой,
// категория определяется по первой цифре.
func Describe(raw string) Info {
	c := Code(strings.TrimSpace(raw))
	return Info{
		Code:     c,
		Message:  c.Message(),
		Category: c.Category(),
		CanRetry: c.CanRetry(),
		IsFraud:  c.IsFraudRelated(),
		Known:    c.Known(),
	}
}
