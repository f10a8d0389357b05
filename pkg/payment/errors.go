// Package payment содержит модель исходящих запросов Pagar.me:
// value objects (адрес, телефон, клиент, карта), варианты платежей,
// заказ и сборщик wire-payload с проверками antifraud и submerchant.
package payment

import (
	"errors"
	"strings"
)

// Ошибки пакета payment.
var (
	// ErrInvalidArgument — данные невозможно представить в модели (битый JSON, неверный тип поля).
	ErrInvalidArgument = errors.New("некорректные входные данные платежа")

	// ErrValidation — модель собрана, но не прошла локальную валидацию.
	ErrValidation = errors.New("платёж не прошёл валидацию")
)

// ValidationError — накопленный список ошибок валидации.
// Сообщения идут в порядке проверок и предназначены для показа пользователю.
type ValidationError struct {
	Errors []string
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Errors, "; ")
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validator — любая сущность, умеющая вернуть список ошибок валидации.
type Validator interface {
	Validate() []string
}

// Check оборачивает результат Validate в *ValidationError.
// Возвращает nil, если ошибок нет.
func Check(v Validator) error {
	if errs := v.Validate(); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func isInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
