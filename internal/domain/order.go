package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPacked    OrderStatus = "packed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// forward is the sequential fulfillment path. No skipping: admin advances
// one step at a time.
var forward = map[OrderStatus]OrderStatus{
	OrderStatusPending: OrderStatusPaid,
	OrderStatusPaid:    OrderStatusPacked,
	OrderStatusPacked:  OrderStatusShipped,
	OrderStatusShipped: OrderStatusDelivered,
}

// CanTransitionTo reports whether from → to is a legal lifecycle move.
// Cancellation is only reachable before fulfillment physically starts;
// once packed, cancellation is a separate compensating process.
func CanTransitionTo(from, to OrderStatus) bool {
	if to == OrderStatusCancelled {
		return from == OrderStatusPending || from == OrderStatusPaid
	}
	return forward[from] == to
}

const (
	PaymentMethodCard  = "card"
	PaymentMethodBKash = "bkash"
)

// OrderItem is a frozen copy of CartLine pricing at order-creation time.
// It never tracks live price changes.
type OrderItem struct {
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Order struct {
	ID             uuid.UUID   `json:"id"`
	UserID         string      `json:"user_id"`
	TotalCents     int64       `json:"total_cents"`
	Currency       string      `json:"currency"`
	Status         OrderStatus `json:"status"`
	PaymentMethod  string      `json:"payment_method"`
	ExternalTxnID  string      `json:"external_txn_id,omitempty"`
	IdempotencyKey string      `json:"-"`
	Items          []OrderItem `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// PaymentConfirmation is the event the payment collaborator delivers after a
// charge settles. It may be redelivered on network retries.
type PaymentConfirmation struct {
	OrderID       string `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
	ExternalTxnID string `json:"txn_id"`
	Status        string `json:"status"`
}

const (
	ConfirmationSuccess = "success"
	ConfirmationFailed  = "failed"
)
