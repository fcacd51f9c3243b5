package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nasif952/La-valecia/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// Breaker shields checkout from a flapping provider: repeated transport
// failures open the circuit and fail fast until the provider recovers.
// Refused charges are still successful calls and do not trip it.
type Breaker struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker[*domain.PaymentConfirmation]
}

func NewBreaker(name string, provider Provider) *Breaker {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Breaker{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker[*domain.PaymentConfirmation](settings),
	}
}

func (b *Breaker) Charge(ctx context.Context, orderID uuid.UUID, amountCents int64) (*domain.PaymentConfirmation, error) {
	return b.cb.Execute(func() (*domain.PaymentConfirmation, error) {
		return b.provider.Charge(ctx, orderID, amountCents)
	})
}
