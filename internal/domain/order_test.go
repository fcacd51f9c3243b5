package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to paid", OrderStatusPending, OrderStatusPaid, true},
		{"paid to packed", OrderStatusPaid, OrderStatusPacked, true},
		{"packed to shipped", OrderStatusPacked, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"paid to cancelled", OrderStatusPaid, OrderStatusCancelled, true},
		{"no skipping pending to packed", OrderStatusPending, OrderStatusPacked, false},
		{"no skipping paid to shipped", OrderStatusPaid, OrderStatusShipped, false},
		{"no skipping pending to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"no cancel once packed", OrderStatusPacked, OrderStatusCancelled, false},
		{"no cancel once shipped", OrderStatusShipped, OrderStatusCancelled, false},
		{"no backwards paid to pending", OrderStatusPaid, OrderStatusPending, false},
		{"no backwards shipped to packed", OrderStatusShipped, OrderStatusPacked, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPaid, false},
		{"no self transition", OrderStatusPaid, OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransitionTo(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusPaid.IsTerminal())
	assert.False(t, OrderStatusPacked.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}
