// Package lifecycle applies order status transitions. All functions are
// synchronous, in-memory transformations over the order supplied by the
// caller; persistence belongs to the caller.
package lifecycle

import (
	"fmt"
	"log"
	"time"

	"github.com/nasif952/La-valecia/internal/domain"
)

// StockRestorer receives the restore instructions cancellation emits.
type StockRestorer interface {
	Restore(variantID string, qty int) error
}

// Advance moves an order one step along the fulfillment path. Illegal moves
// fail with ErrInvalidTransition and never mutate the order. Paid is not
// reachable here: without a transaction id an advanced-to-paid order would
// reject the real confirmation as a conflict, so payment goes through
// MarkPaid and cancellation through Cancel.
func Advance(o *domain.Order, next domain.OrderStatus) error {
	if next == domain.OrderStatusCancelled || next == domain.OrderStatusPaid {
		return domain.ErrInvalidTransition
	}
	if !domain.CanTransitionTo(o.Status, next) {
		return domain.ErrInvalidTransition
	}
	o.Status = next
	o.UpdatedAt = time.Now()
	return nil
}

// MarkPaid applies a payment confirmation. Redelivery of the same
// transaction id is a no-op; a different transaction id on an already-paid
// order is flagged as a conflict for manual review, never overwritten.
func MarkPaid(o *domain.Order, externalTxnID string) error {
	if o.ExternalTxnID != "" && o.ExternalTxnID == externalTxnID {
		return nil
	}
	if o.Status == domain.OrderStatusPaid {
		return domain.ErrTxnConflict
	}
	if !domain.CanTransitionTo(o.Status, domain.OrderStatusPaid) {
		return domain.ErrInvalidTransition
	}
	o.Status = domain.OrderStatusPaid
	o.ExternalTxnID = externalTxnID
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel terminates an order and frees the stock decremented at creation
// time, one restore instruction per order item. The transition guard makes
// the restore exactly-once: a cancelled order cannot be cancelled again.
func Cancel(o *domain.Order, restorer StockRestorer) error {
	if !domain.CanTransitionTo(o.Status, domain.OrderStatusCancelled) {
		return domain.ErrInvalidTransition
	}
	o.Status = domain.OrderStatusCancelled
	o.UpdatedAt = time.Now()

	var firstErr error
	for _, item := range o.Items {
		if err := restorer.Restore(item.VariantID, item.Quantity); err != nil {
			log.Printf("failed to restore %d units of variant %s: %v", item.Quantity, item.VariantID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("restore stock for variant %s: %w", item.VariantID, err)
			}
		}
	}
	return firstErr
}
