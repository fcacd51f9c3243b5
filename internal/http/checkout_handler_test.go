package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasif952/La-valecia/internal/checkout"
	"github.com/nasif952/La-valecia/internal/domain"
	"github.com/nasif952/La-valecia/internal/orders"
)

type mockCheckoutService struct {
	lastRequest *checkout.CheckoutRequest
	order       *domain.Order
	err         error
}

func (m *mockCheckoutService) Checkout(_ context.Context, request *checkout.CheckoutRequest) (*domain.Order, error) {
	m.lastRequest = request
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *mockCheckoutService) Advance(_ context.Context, orderID uuid.UUID, next domain.OrderStatus) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.order.Status = next
	return m.order, nil
}

func (m *mockCheckoutService) Cancel(_ context.Context, orderID uuid.UUID) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.order.Status = domain.OrderStatusCancelled
	return m.order, nil
}

func newTestCheckoutHandler(svc *mockCheckoutService) *CheckoutHandler {
	return NewCheckoutHandler(svc, 5*time.Second)
}

func TestCheckoutHandler(t *testing.T) {
	paidOrder := &domain.Order{
		ID:         uuid.New(),
		UserID:     "user-1",
		TotalCents: 17030,
		Currency:   "BDT",
		Status:     domain.OrderStatusPaid,
	}

	t.Run("successful checkout", func(t *testing.T) {
		svc := &mockCheckoutService{order: paidOrder}
		h := newTestCheckoutHandler(svc)

		body, _ := json.Marshal(CheckoutRequestDTO{PaymentMethod: "card", CouponCode: "welcome10"})
		req := authedRequest(http.MethodPost, "/api/v1/checkout", body)
		req.Header.Set("Idempotency-Key", "key-1")

		w := httptest.NewRecorder()
		h.Checkout(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.lastRequest)
		assert.Equal(t, "user-1", svc.lastRequest.UserID)
		assert.Equal(t, "welcome10", svc.lastRequest.CouponCode)
		assert.Equal(t, "key-1", svc.lastRequest.IdempotencyKey)

		var got domain.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, paidOrder.ID, got.ID)
	})

	t.Run("missing idempotency key", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{order: paidOrder})

		body, _ := json.Marshal(CheckoutRequestDTO{PaymentMethod: "card"})
		w := httptest.NewRecorder()
		h.Checkout(w, authedRequest(http.MethodPost, "/api/v1/checkout", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "missing_idempotency_key", resp.Code)
	})

	t.Run("unsupported payment method", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{order: paidOrder})

		body, _ := json.Marshal(CheckoutRequestDTO{PaymentMethod: "paypal"})
		req := authedRequest(http.MethodPost, "/api/v1/checkout", body)
		req.Header.Set("Idempotency-Key", "key-1")

		w := httptest.NewRecorder()
		h.Checkout(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty cart maps to bad request", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{err: checkout.ErrEmptyCart})

		body, _ := json.Marshal(CheckoutRequestDTO{PaymentMethod: "bkash"})
		req := authedRequest(http.MethodPost, "/api/v1/checkout", body)
		req.Header.Set("Idempotency-Key", "key-1")

		w := httptest.NewRecorder()
		h.Checkout(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "empty_cart", resp.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{order: paidOrder})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)

		w := httptest.NewRecorder()
		h.Checkout(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdvanceStatusHandler(t *testing.T) {
	order := &domain.Order{ID: uuid.New(), UserID: "user-1", Status: domain.OrderStatusPaid}

	t.Run("advances", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{order: order})

		body := []byte(`{"status":"packed"}`)
		req := withURLParam(authedRequest(http.MethodPost, "/", body), "order_id", order.ID.String())

		w := httptest.NewRecorder()
		h.AdvanceStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid transition maps to conflict", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{err: domain.ErrInvalidTransition})

		body := []byte(`{"status":"delivered"}`)
		req := withURLParam(authedRequest(http.MethodPost, "/", body), "order_id", order.ID.String())

		w := httptest.NewRecorder()
		h.AdvanceStatus(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed order id", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{order: order})

		req := withURLParam(authedRequest(http.MethodPost, "/", []byte(`{"status":"packed"}`)), "order_id", "nope")

		w := httptest.NewRecorder()
		h.AdvanceStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelOrderHandler(t *testing.T) {
	t.Run("cancels", func(t *testing.T) {
		order := &domain.Order{ID: uuid.New(), UserID: "user-1", Status: domain.OrderStatusPaid}
		h := newTestCheckoutHandler(&mockCheckoutService{order: order})

		req := withURLParam(authedRequest(http.MethodPost, "/", nil), "order_id", order.ID.String())

		w := httptest.NewRecorder()
		h.CancelOrder(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got domain.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, domain.OrderStatusCancelled, got.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		h := newTestCheckoutHandler(&mockCheckoutService{err: orders.ErrOrderNotFound})

		req := withURLParam(authedRequest(http.MethodPost, "/", nil), "order_id", uuid.NewString())

		w := httptest.NewRecorder()
		h.CancelOrder(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
