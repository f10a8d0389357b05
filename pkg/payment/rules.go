package payment

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldRules проверяет ограничения отдельных полей по тегам validate.
// Тег label задаёт имя поля в сообщении об ошибке. Правила, зависящие от
// нескольких полей, остаются в методах Validate.
var fieldRules = newFieldRules()

func newFieldRules() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("label")
	})

	custom := map[string]validator.Func{
		"digits": func(fl validator.FieldLevel) bool {
			return digitsOnly.MatchString(fl.Field().String())
		},
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"between": validateBetween,
		"lenin":   validateLenIn,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("payment: регистрация правила %s: %v", tag, err))
		}
	}
	return v
}

// checkFields возвращает сообщения об ошибках полей в порядке объявления полей.
func checkFields(s any) []string {
	err := fieldRules.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

// fieldMessage переводит тег правила в сообщение для API.
func fieldMessage(fe validator.FieldError) string {
	label, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be max %s characters", label, param)
	case "lte":
		return fmt.Sprintf("%s must not exceed %s characters", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "digits":
		return label + " must contain only numbers"
	case "between":
		lo, hi, _ := strings.Cut(param, " ")
		msg := fmt.Sprintf("%s must be between %s and %s", label, lo, hi)
		if fe.Kind() == reflect.String {
			msg += " characters"
		}
		return msg
	case "lenin":
		return fmt.Sprintf("%s must be %s characters", label, orList(strings.Fields(param), false))
	case "oneof":
		return fmt.Sprintf("%s must be %s", label, orList(strings.Fields(param), true))
	}
	return label + " is invalid"
}

// orList собирает `"a", "b" or "c"`.
func orList(values []string, quote bool) string {
	if quote {
		for i, v := range values {
			values[i] = strconv.Quote(v)
		}
	}
	if len(values) < 2 {
		return strings.Join(values, "")
	}
	return strings.Join(values[:len(values)-1], ", ") + " or " + values[len(values)-1]
}

// validateBetween: between=lo hi, длина строки или значение целого числа.
func validateBetween(fl validator.FieldLevel) bool {
	lo, hi, ok := parseRange(fl.Param())
	if !ok {
		return false
	}

	var n int64
	switch f := fl.Field(); f.Kind() {
	case reflect.String:
		n = int64(len(f.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = f.Int()
	default:
		return false
	}
	return n >= lo && n <= hi
}

// validateLenIn: lenin=3 4, длина строки равна одному из значений.
func validateLenIn(fl validator.FieldLevel) bool {
	n := strconv.Itoa(len(fl.Field().String()))
	for _, allowed := range strings.Fields(fl.Param()) {
		if n == allowed {
			return true
		}
	}
	return false
}

func parseRange(param string) (lo, hi int64, ok bool) {
	a, b, found := strings.Cut(param, " ")
	if !found {
		return 0, 0, false
	}
	lo, errLo := strconv.ParseInt(a, 10, 64)
	hi, errHi := strconv.ParseInt(b, 10, 64)
	return lo, hi, errLo == nil && errHi == nil
}
