package domain

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusReturned   OrderStatus = "returned"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusReturned:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the forward-only fulfilment table allows
// moving to newStatus. Only consulted when strict transitions are enabled.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	if s == newStatus {
		return true
	}
	switch s {
	case OrderStatusPlaced:
		return newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusProcessing
	case OrderStatusConfirmed:
		return newStatus == OrderStatusProcessing ||
			newStatus == OrderStatusShipped
	case OrderStatusProcessing:
		return newStatus == OrderStatusShipped
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered:
		return newStatus == OrderStatusReturned
	case OrderStatusReturned:
		return false // Terminal state
	default:
		return false
	}
}

// PaymentStatus represents the payment state recorded on an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// PrincipalKind distinguishes the two credential stores
type PrincipalKind string

const (
	PrincipalCustomer PrincipalKind = "customer"
	PrincipalAdmin    PrincipalKind = "admin"
)
