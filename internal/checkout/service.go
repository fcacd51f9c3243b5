package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nasif952/La-valecia/internal/config"
	"github.com/nasif952/La-valecia/internal/domain"
	"github.com/nasif952/La-valecia/internal/inventory"
	"github.com/nasif952/La-valecia/internal/lifecycle"
	"github.com/nasif952/La-valecia/internal/orders"
	"github.com/nasif952/La-valecia/internal/payment"
	"github.com/nasif952/La-valecia/internal/pricing"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// CartStore is the slice of the cart service checkout needs.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

type CheckoutRequest struct {
	UserID         string
	CouponCode     string
	PaymentMethod  string
	IdempotencyKey string
}

// Service turns a cart snapshot into an order: freeze line pricing, deduct
// stock, persist the pending order, attempt the charge and clear the cart.
type Service struct {
	carts     CartStore
	orders    orders.OrderRepository
	stock     inventory.Store
	providers map[string]payment.Provider
	cfg       *config.Config
}

func NewService(carts CartStore, repo orders.OrderRepository, stock inventory.Store, providers map[string]payment.Provider, cfg *config.Config) *Service {
	return &Service{
		carts:     carts,
		orders:    repo,
		stock:     stock,
		providers: providers,
		cfg:       cfg,
	}
}

func (s *Service) Checkout(ctx context.Context, request *CheckoutRequest) (*domain.Order, error) {
	if request.UserID == "" || request.IdempotencyKey == "" {
		return nil, domain.ErrValidation
	}
	provider, ok := s.providers[request.PaymentMethod]
	if !ok {
		return nil, fmt.Errorf("payment method %q: %w", request.PaymentMethod, domain.ErrValidation)
	}

	// check order by idempotency key from repository
	existing, err := s.orders.GetOrderByIdempotencyKey(ctx, request.IdempotencyKey)
	if err != nil && !errors.Is(err, orders.ErrOrderNotFound) {
		return nil, fmt.Errorf("failed to check idempotency: %w", err)
	}
	if existing != nil {
		// This checkout already exists! Return the stored result.
		log.Printf("Duplicate checkout detected idempotency_key = %v with order_id = %v and status = %v", request.IdempotencyKey, existing.ID, existing.Status)
		return existing, nil
	}

	userCart, err := s.carts.GetCart(ctx, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if userCart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	discountBps := 0
	if request.CouponCode != "" {
		coupon, errCoupon := pricing.LookupCoupon(request.CouponCode, s.cfg.Coupons)
		if errCoupon != nil {
			return nil, errCoupon
		}
		discountBps = coupon.DiscountBps
	}

	breakdown := pricing.Breakdown(userCart, discountBps, s.cfg.PricingConfig())
	items := freezeItems(userCart)

	if errStock := s.stock.DecrementAll(items); errStock != nil {
		return nil, errStock
	}

	now := time.Now()
	order := &domain.Order{
		ID:             uuid.New(),
		UserID:         request.UserID,
		TotalCents:     breakdown.TotalCents,
		Currency:       s.cfg.Pricing.Currency,
		Status:         domain.OrderStatusPending,
		PaymentMethod:  request.PaymentMethod,
		IdempotencyKey: request.IdempotencyKey,
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if errCreate := s.orders.CreateOrder(ctx, order); errCreate != nil {
		// A concurrent request with the same key won the race; hand the
		// decremented stock back and return the stored order.
		if errors.Is(errCreate, orders.ErrDuplicateOrder) {
			s.restoreAll(items)
			return s.orders.GetOrderByIdempotencyKey(ctx, request.IdempotencyKey)
		}
		s.restoreAll(items)
		return nil, fmt.Errorf("failed to create order: %w", errCreate)
	}

	s.chargeAndApply(ctx, provider, order)

	if errClear := s.carts.ClearCart(ctx, request.UserID); errClear != nil {
		log.Printf("failed to clear cart after checkout for user %s: %v", request.UserID, errClear)
	}

	return order, nil
}

// ApplyConfirmation drives pending → paid from a confirmation event. The
// collaborator may redeliver events; lifecycle.MarkPaid keeps the transition
// idempotent and flags txn id conflicts.
func (s *Service) ApplyConfirmation(ctx context.Context, conf *domain.PaymentConfirmation) error {
	if conf.Status != domain.ConfirmationSuccess {
		log.Printf("ignoring unsuccessful payment confirmation for order %s: %s", conf.OrderID, conf.Status)
		return nil
	}

	orderID, err := uuid.Parse(conf.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", conf.OrderID, domain.ErrValidation)
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	if errPaid := lifecycle.MarkPaid(order, conf.ExternalTxnID); errPaid != nil {
		return errPaid
	}
	return s.orders.UpdateOrder(ctx, order)
}

// Advance is the administrative one-step fulfillment move.
func (s *Service) Advance(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Advance(order, next); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel terminates the order and restores its stock.
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Cancel(order, s.stock); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) chargeAndApply(ctx context.Context, provider payment.Provider, order *domain.Order) {
	conf, err := provider.Charge(ctx, order.ID, order.TotalCents)
	if err != nil {
		// Leave the order pending; the confirmation consumer picks it up
		// when the provider delivers the event later.
		log.Printf("charge failed for order %s: %v", order.ID, err)
		return
	}
	if conf.Status != domain.ConfirmationSuccess {
		log.Printf("charge refused for order %s", order.ID)
		return
	}
	if err := lifecycle.MarkPaid(order, conf.ExternalTxnID); err != nil {
		log.Printf("failed to mark order %s paid: %v", order.ID, err)
		return
	}
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		log.Printf("failed to persist paid order %s: %v", order.ID, err)
	}
}

func (s *Service) restoreAll(items []domain.OrderItem) {
	for _, item := range items {
		if err := s.stock.Restore(item.VariantID, item.Quantity); err != nil {
			log.Printf("failed to restore %d units of variant %s: %v", item.Quantity, item.VariantID, err)
		}
	}
}

// freezeItems copies cart line pricing into order items so later catalog
// price changes never touch the order.
func freezeItems(c *domain.Cart) []domain.OrderItem {
	items := make([]domain.OrderItem, len(c.Lines))
	for i, line := range c.Lines {
		items[i] = domain.OrderItem{
			ProductID:      line.ProductID,
			VariantID:      line.VariantID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		}
	}
	return items
}
