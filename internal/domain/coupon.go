package domain

// Coupon maps a case-insensitive code to a discount expressed in basis points
// of the subtotal (1000 = 10%). Basis points keep the whole pricing pipeline
// in integer arithmetic.
type Coupon struct {
	Code        string `yaml:"code"`
	DiscountBps int    `yaml:"discount_bps"`
}

// PriceBreakdown is derived from a cart and an optional coupon; it is never
// stored independently of the state that produced it.
type PriceBreakdown struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	DiscountCents int64 `json:"discount_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`
}
