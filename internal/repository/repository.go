package repository

import (
	"context"
	"errors"

	"github.com/nasif952/La-valecia/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrCartCorrupt  = errors.New("stored cart document is corrupt")
)

// CartRepository defines the interface for durable cart snapshots.
// Consumers define this interface, not the MongoDB implementation.
// Every mutation writes the full snapshot; there are no partial updates.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}
