// Package chat is the storefront's mock assistant: an ordered rule table of
// keyword predicates evaluated first-match, not a chain of conditionals.
package chat

import "strings"

type Rule struct {
	Keywords []string
	Response string
}

type Responder struct {
	rules    []Rule
	fallback string
}

func NewResponder(rules []Rule, fallback string) *Responder {
	return &Responder{rules: rules, fallback: fallback}
}

// Reply returns the response of the first rule with any keyword present in
// the message, or the fallback. Matching is case-insensitive substring.
func (r *Responder) Reply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Response
			}
		}
	}
	return r.fallback
}

// DefaultResponder carries the storefront's shipped rule table. Order
// matters: earlier rules win when a message hits several.
func DefaultResponder() *Responder {
	return NewResponder([]Rule{
		{
			Keywords: []string{"product", "item", "buy"},
			Response: "I'd be happy to help you find products! You can browse our catalog at /catalog or search for specific items like 'Drop Shoulder hoodies' or 'Wintery jackets'. What are you looking for?",
		},
		{
			Keywords: []string{"size", "fit", "measurement"},
			Response: "For sizing information, please check our size guide at /size-guide. Our Drop Shoulder collection typically runs oversized, while our Wintery collection has a regular fit.",
		},
		{
			Keywords: []string{"shipping", "delivery", "ship"},
			Response: "We offer free shipping on orders over ৳500! Standard delivery takes 3-5 business days within Bangladesh.",
		},
		{
			Keywords: []string{"return", "exchange", "refund"},
			Response: "We have a 30-day return policy! Items must be in original condition with tags attached.",
		},
		{
			Keywords: []string{"payment", "pay", "card", "bkash"},
			Response: "We accept both credit/debit cards and bKash payments. All payments are processed securely. You can choose your preferred payment method at checkout.",
		},
		{
			Keywords: []string{"hello", "hi", "hey"},
			Response: "Hello! Welcome to La Valecia! I'm here to help you with any questions about our premium apparel, sizing, shipping, or anything else.",
		},
		{
			Keywords: []string{"help", "support"},
			Response: "I'm here to help! I can assist you with product information, sizing, shipping, returns, and general questions about La Valecia.",
		},
	}, "Thanks for your message! I'm a customer service assistant for La Valecia. I can help you with product information, sizing, shipping, returns, and general questions.")
}
