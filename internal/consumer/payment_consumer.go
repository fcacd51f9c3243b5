package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nasif952/La-valecia/internal/domain"
	"github.com/segmentio/kafka-go"
)

// ConfirmationApplier drives pending → paid; implemented by checkout.Service.
type ConfirmationApplier interface {
	ApplyConfirmation(ctx context.Context, conf *domain.PaymentConfirmation) error
}

// Consumer reads payment confirmation events off Kafka. The payment
// collaborator may redeliver events on retry; the lifecycle keeps the paid
// transition idempotent, so redelivery here is harmless.
type Consumer struct {
	applier ConfirmationApplier
	reader  *kafka.Reader
}

func NewConsumer(applier ConfirmationApplier, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "payment-confirmations",
		GroupID:  "storefront",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{applier, reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	err := c.reader.Close()
	if err != nil {
		fmt.Printf("error closing kafka reader: %v\n", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Printf("error reading message: %v\n", err)
		return
	}

	c.apply(ctx, m.Value)
}

func (c *Consumer) apply(ctx context.Context, payload []byte) {
	var conf domain.PaymentConfirmation
	if err := json.Unmarshal(payload, &conf); err != nil {
		fmt.Printf("error parsing message: %v\n", err)
		return
	}

	if err := c.applier.ApplyConfirmation(ctx, &conf); err != nil {
		if errors.Is(err, domain.ErrTxnConflict) {
			// Manual-review case: a different txn id landed on a paid order.
			fmt.Printf("txn conflict on order %s: txn %s flagged for review\n", conf.OrderID, conf.ExternalTxnID)
			return
		}
		fmt.Printf("failed to apply confirmation for order %s: %v\n", conf.OrderID, err)
		return
	}

	fmt.Printf("order %s confirmed paid with txn %s\n", conf.OrderID, conf.ExternalTxnID)
}
