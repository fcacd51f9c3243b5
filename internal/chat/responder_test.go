package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReply(t *testing.T) {
	r := DefaultResponder()

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"product question", "Do you have any hoodies to buy?", "catalog"},
		{"sizing question", "Does the hoodie fit true to size?", "size guide"},
		{"shipping question", "How long is delivery to Dhaka?", "free shipping"},
		{"return question", "Can I get a refund?", "30-day return"},
		{"payment question", "Do you take bkash?", "bKash"},
		{"greeting", "hello there", "Welcome to La Valecia"},
		{"help request", "I need support", "here to help"},
		{"case insensitive", "SHIPPING COST?", "free shipping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := r.Reply(tt.message)
			assert.True(t, strings.Contains(reply, tt.contains), "reply %q should contain %q", reply, tt.contains)
		})
	}

	t.Run("first matching rule wins", func(t *testing.T) {
		// "buy" (product rule) appears before "shipping" in the table
		reply := r.Reply("I want to buy something with free shipping")
		assert.Contains(t, reply, "catalog")
	})

	t.Run("fallback", func(t *testing.T) {
		reply := r.Reply("qwerty")
		assert.Contains(t, reply, "customer service assistant")
	})
}
