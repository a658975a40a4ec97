package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// BoostPaidEvent is published to the boost.paid topic when a callback
// confirms a payment.
type BoostPaidEvent struct {
	BoostID              int64           `json:"boost_id"`
	IdentificationNumber string          `json:"identification_number"`
	Fee                  decimal.Decimal `json:"fee"`
	Reference            string          `json:"reference"`
	PaidAt               time.Time       `json:"paid_at"`
}

// Publisher wraps a Kafka writer. A nil Publisher is a no-op so the service
// can run without brokers configured.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers string) *Publisher {
	if brokers == "" {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    "boost.paid",
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) PublishBoostPaid(ctx context.Context, event BoostPaidEvent) error {
	if p == nil {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BoostID, 10)),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
