package handler

import (
	"context"

	"example.com/pagarme-gateway/pkg/payment"
	"example.com/pagarme-gateway/pkg/webhook"
)

// OrderAssembler — проверка и сборка заказа (реализуется *payment.Assembler).
// Позволяет подменить сборщик в тестах.
type OrderAssembler interface {
	// Mode возвращает режим клиента: psp или gateway.
	Mode() payment.Mode

	// Prepare проверяет заказ и возвращает его с подставленным субмерчантом.
	Prepare(o *payment.Order) (*payment.Order, []string)

	// Assemble проверяет заказ и возвращает JSON для POST /orders.
	Assemble(ctx context.Context, o *payment.Order) ([]byte, error)
}

// EventHandler получает webhook, прошедший проверку.
// Ошибка превращается в 500, и Pagar.me повторит доставку.
type EventHandler interface {
	HandleEvent(ctx context.Context, e *webhook.Event) error
}

// EventHandlerFunc позволяет использовать функцию как EventHandler.
type EventHandlerFunc func(ctx context.Context, e *webhook.Event) error

// HandleEvent вызывает f(ctx, e).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, e *webhook.Event) error {
	return f(ctx, e)
}
