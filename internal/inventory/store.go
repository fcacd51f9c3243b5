package inventory

import (
	"errors"

	"github.com/nasif952/La-valecia/internal/domain"
)

// Common errors returned by the store
var (
	ErrVariantNotFound   = errors.New("variant not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store is the inventory collaborator boundary. Cart operations consult
// Ceiling; order creation deducts stock with DecrementAll; cancellation
// sends "restore N units to variant V" instructions through Restore.
type Store interface {
	// Ceiling returns the current stock for a variant, used as the cart's
	// per-line quantity ceiling.
	Ceiling(variantID string) (int, error)

	// DecrementAll deducts stock for every item or none: the whole batch is
	// validated before any deduction happens.
	DecrementAll(items []domain.OrderItem) error

	// Restore returns qty units of a variant to the available pool.
	Restore(variantID string, qty int) error

	// SetStock sets the stock level for a variant (used for initialization)
	SetStock(variantID string, qty int) error
}
