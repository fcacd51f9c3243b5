package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/nasif952/La-valecia/internal/domain"
)

// Provider is a mock payment collaborator: it produces confirmation events
// without ever calling a real payment network.
type Provider interface {
	Charge(ctx context.Context, orderID uuid.UUID, amountCents int64) (*domain.PaymentConfirmation, error)
}

// Outcome decides whether a mock charge settles, so tests can pin results.
type Outcome interface {
	Approve() bool
}

type AlwaysApprove struct{}

func (AlwaysApprove) Approve() bool { return true }

// RandomOutcome settles 95% of charges, refusing the rest.
type RandomOutcome struct{}

func (RandomOutcome) Approve() bool {
	return rand.Intn(101) < 95
}

// CardProvider mimics a Stripe-like card processor.
type CardProvider struct {
	outcome Outcome
}

func NewCardProvider(o Outcome) *CardProvider {
	return &CardProvider{outcome: o}
}

func (p *CardProvider) Charge(_ context.Context, orderID uuid.UUID, amountCents int64) (*domain.PaymentConfirmation, error) {
	if amountCents <= 0 {
		return nil, domain.ErrValidation
	}

	status := domain.ConfirmationSuccess
	if !p.outcome.Approve() {
		status = domain.ConfirmationFailed
	}
	return &domain.PaymentConfirmation{
		OrderID:       orderID.String(),
		PaymentMethod: domain.PaymentMethodCard,
		ExternalTxnID: fmt.Sprintf("pi_mock_%d", time.Now().UnixNano()),
		Status:        status,
	}, nil
}

// BKashProvider mimics the bKash mobile wallet.
type BKashProvider struct {
	outcome Outcome
}

func NewBKashProvider(o Outcome) *BKashProvider {
	return &BKashProvider{outcome: o}
}

func (p *BKashProvider) Charge(_ context.Context, orderID uuid.UUID, amountCents int64) (*domain.PaymentConfirmation, error) {
	if amountCents <= 0 {
		return nil, domain.ErrValidation
	}

	status := domain.ConfirmationSuccess
	if !p.outcome.Approve() {
		status = domain.ConfirmationFailed
	}
	return &domain.PaymentConfirmation{
		OrderID:       orderID.String(),
		PaymentMethod: domain.PaymentMethodBKash,
		ExternalTxnID: fmt.Sprintf("BKASH_%d", time.Now().UnixNano()),
		Status:        status,
	}, nil
}
