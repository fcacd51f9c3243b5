package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product+variant entry in a cart. StockCeiling is the variant
// stock known at the time the line was touched; Quantity never exceeds it.
type CartLine struct {
	ID             string `json:"id" bson:"id"`
	ProductID      string `json:"product_id" bson:"product_id"`
	VariantID      string `json:"variant_id" bson:"variant_id"`
	UnitPriceCents int64  `json:"unit_price_cents" bson:"unit_price_cents"`
	Quantity       int    `json:"quantity" bson:"quantity"`
	StockCeiling   int    `json:"stock_ceiling" bson:"stock_ceiling"`
}

type Cart struct {
	UserID    string     `json:"user_id" bson:"user_id"`
	Lines     []CartLine `json:"lines" bson:"lines"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Lines:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddLine adds qty units of a variant. If a line for (productID, variantID)
// already exists its quantity is increased and its price and stock ceiling
// refreshed from the caller's live lookup; anything above the ceiling is
// silently dropped, matching the ambient add-to-cart behavior. A ceiling of
// zero leaves the cart untouched for a new line and drops an existing one:
// a line never carries a quantity below one.
func (c *Cart) AddLine(productID, variantID string, unitPriceCents int64, stockCeiling, qty int) error {
	if qty < 1 || stockCeiling < 0 || unitPriceCents < 0 || productID == "" || variantID == "" {
		return ErrValidation
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == productID && c.Lines[i].VariantID == variantID {
			if stockCeiling == 0 {
				c.RemoveLine(c.Lines[i].ID)
				return nil
			}
			c.Lines[i].UnitPriceCents = unitPriceCents
			c.Lines[i].StockCeiling = stockCeiling
			c.Lines[i].Quantity = capQuantity(c.Lines[i].Quantity+qty, stockCeiling)
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	if stockCeiling == 0 {
		return nil
	}

	c.Lines = append(c.Lines, CartLine{
		ID:             uuid.NewString(),
		ProductID:      productID,
		VariantID:      variantID,
		UnitPriceCents: unitPriceCents,
		Quantity:       capQuantity(qty, stockCeiling),
		StockCeiling:   stockCeiling,
	})
	c.UpdatedAt = time.Now()
	return nil
}

// SetQuantity is the explicit-edit path: a quantity of zero or less removes
// the line, and a quantity above the stock ceiling is rejected outright with
// the line left unchanged. This deliberately differs from AddLine's silent cap.
func (c *Cart) SetQuantity(lineID string, qty int) error {
	if qty <= 0 {
		c.RemoveLine(lineID)
		return nil
	}

	for i := range c.Lines {
		if c.Lines[i].ID != lineID {
			continue
		}
		if qty > c.Lines[i].StockCeiling {
			return ErrInsufficientStock
		}
		c.Lines[i].Quantity = qty
		c.UpdatedAt = time.Now()
		return nil
	}
	return ErrLineNotFound
}

// RemoveLine is idempotent; removing an absent line is a no-op.
func (c *Cart) RemoveLine(lineID string) {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
	c.UpdatedAt = time.Now()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func capQuantity(qty, ceiling int) int {
	if qty > ceiling {
		return ceiling
	}
	return qty
}
