package webhook

// EventTypeOther — метка для типов событий, которых нет в списке Pagar.me.
const EventTypeOther = "other"

// eventTypes — события, на которые можно подписать webhook в Pagar.me.
var eventTypes = map[string]struct{}{
	"customer.created": {}, "customer.updated": {},
	"card.created": {}, "card.updated": {}, "card.deleted": {}, "card.expired": {},
	"address.created": {}, "address.updated": {}, "address.deleted": {},
	"order.paid": {}, "order.payment_failed": {}, "order.created": {},
	"order.canceled": {}, "order.closed": {}, "order.updated": {},
	"order_item.created": {}, "order_item.updated": {}, "order_item.deleted": {},
	"charge.created": {}, "charge.updated": {}, "charge.paid": {},
	"charge.payment_failed": {}, "charge.refunded": {}, "charge.pending": {},
	"charge.processing": {}, "charge.underpaid": {}, "charge.overpaid": {},
	"charge.partial_canceled": {}, "charge.chargedback": {},
	"charge.antifraud_approved": {}, "charge.antifraud_reproved": {},
	"charge.antifraud_manual": {}, "charge.antifraud_pending": {},
	"subscription.created": {}, "subscription.canceled": {},
	"invoice.created": {}, "invoice.updated": {}, "invoice.paid": {},
	"invoice.payment_failed": {}, "invoice.canceled": {},
}

// IsKnownEventType сообщает, есть ли тип в списке событий Pagar.me.
func IsKnownEventType(t string) bool {
	_, ok := eventTypes[t]
	return ok
}

// EventTypeLabel возвращает тип события или EventTypeOther для неизвестных.
// Тип приходит из тела запроса, поэтому в метки метрик попадает только он.
func EventTypeLabel(t string) string {
	if IsKnownEventType(t) {
		return t
	}
	return EventTypeOther
}
