package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nasif952/La-valecia/internal/checkout"
	"github.com/nasif952/La-valecia/internal/domain"
)

// CheckoutService is what the checkout and admin handlers need.
type CheckoutService interface {
	Checkout(ctx context.Context, request *checkout.CheckoutRequest) (*domain.Order, error)
	Advance(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
}

type CheckoutHandler struct {
	service CheckoutService
	timeout time.Duration
}

func NewCheckoutHandler(service CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	PaymentMethod string `json:"payment_method"`
	CouponCode    string `json:"coupon_code,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	idempotencyKey := r.Header.Get("Idempotency-Key")
	if idempotencyKey == "" {
		respondError(w, http.StatusBadRequest, "missing_idempotency_key", "Idempotency-Key header is required")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentMethod != domain.PaymentMethodCard && req.PaymentMethod != domain.PaymentMethodBKash {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", "payment_method must be card or bkash")
		return
	}

	order, err := h.service.Checkout(ctx, &checkout.CheckoutRequest{
		UserID:         userID,
		CouponCode:     req.CouponCode,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("checkout completed request_id=%s order_id=%s status=%s", getRequestID(r.Context()), order.ID, order.Status)
	respondJSON(w, http.StatusCreated, order)
}

type AdvanceRequestDTO struct {
	Status string `json:"status"`
}

// AdvanceStatus is the admin dashboard's one-step fulfillment move.
func (h *CheckoutHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req AdvanceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.service.Advance(ctx, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *CheckoutHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.Cancel(ctx, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
