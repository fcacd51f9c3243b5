package pricing

import (
	"strings"

	"github.com/nasif952/La-valecia/internal/domain"
)

// Config carries the shipping constants so callers never hardcode them.
type Config struct {
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64
}

// Subtotal is the exact integer sum of per-line products.
func Subtotal(cart *domain.Cart) int64 {
	var sum int64
	for _, line := range cart.Lines {
		sum += line.UnitPriceCents * int64(line.Quantity)
	}
	return sum
}

// LookupCoupon resolves a code case-insensitively against the configured
// table. Unknown codes fail with ErrInvalidCoupon; the caller decides whether
// that is a user error or fatal.
func LookupCoupon(code string, table []domain.Coupon) (domain.Coupon, error) {
	for _, c := range table {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return domain.Coupon{}, domain.ErrInvalidCoupon
}

// Discount applies a basis-point fraction to the subtotal, rounding half up.
// (subtotal*bps + 5000) / 10000 is round-half-up in pure integer arithmetic.
func Discount(subtotalCents int64, discountBps int) int64 {
	if discountBps <= 0 {
		return 0
	}
	return (subtotalCents*int64(discountBps) + 5000) / 10000
}

// Shipping is free at or above the threshold, a flat fee below it.
func Shipping(subtotalCents int64, cfg Config) int64 {
	if subtotalCents >= cfg.FreeShippingThresholdCents {
		return 0
	}
	return cfg.FlatShippingFeeCents
}

// Breakdown recomputes every quantity from scratch; carts are small and
// correctness beats caching. The total clamps at zero should a discount ever
// exceed the subtotal.
func Breakdown(cart *domain.Cart, discountBps int, cfg Config) domain.PriceBreakdown {
	subtotal := Subtotal(cart)
	discount := Discount(subtotal, discountBps)
	if discount > subtotal {
		discount = subtotal
	}
	shipping := Shipping(subtotal, cfg)

	return domain.PriceBreakdown{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		ShippingCents: shipping,
		TotalCents:    subtotal - discount + shipping,
	}
}
