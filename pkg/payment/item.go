package payment

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MaxItemCode — предел длины кода товара в Pagar.me.
const MaxItemCode = 52

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Item — позиция заказа. Amount — цена за единицу в центах.
type Item struct {
	Amount      int64  `json:"amount" validate:"gt=0" label:"Amount"`
	Description string `json:"description" validate:"notblank" label:"Description"`
	Quantity    int    `json:"quantity" validate:"gte=1" label:"Quantity"`
	Code        string `json:"code,omitempty" validate:"lte=52" label:"Code"`
	Category    string `json:"category,omitempty"`
}

// NewItem создаёт позицию; пустой code будет выведен из описания.
func NewItem(description string, quantity int, amount int64) Item {
	return Item{Description: description, Quantity: quantity, Amount: amount}
}

// ResolvedCode возвращает заданный code или детерминированно выводит его:
// item-<slug описания>-<первые 10 hex sha1(description|amount|quantity)>,
// обрезанный до 52 символов.
func (i Item) ResolvedCode() string {
	if i.Code != "" {
		return i.Code
	}

	base := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(i.Description), "-"), "-")
	if base == "" {
		base = "item"
	}

	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%d|%d", i.Description, i.Amount, i.Quantity)))
	code := "item-" + base + "-" + hex.EncodeToString(sum[:])[:10]

	if len(code) > MaxItemCode {
		code = code[:MaxItemCode]
	}
	return code
}

// Total — стоимость позиции.
func (i Item) Total() int64 {
	return i.Amount * int64(i.Quantity)
}

// MarshalJSON всегда передаёт code.
func (i Item) MarshalJSON() ([]byte, error) {
	type wire Item
	w := wire(i)
	w.Code = i.ResolvedCode()
	return json.Marshal(w)
}

// Validate проверяет сумму, количество, описание и длину кода.
func (i *Item) Validate() []string {
	var errs errorList
	errs.merge("", checkFields(i))
	return errs.list()
}
