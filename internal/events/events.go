package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// Event mirrors one resolved order for the downstream audit stream.
type Event struct {
	SchemaVersion int       `json:"schema_version"`
	ID            string    `json:"id"`
	OrderID       int64     `json:"order_id"`
	Reference     string    `json:"reference"`
	AccountID     int64     `json:"account_id"`
	Kind          string    `json:"kind"`
	Status        string    `json:"status"`
	Diamonds      int64     `json:"diamonds"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits order events best-effort: a failed publish is logged and
// never affects the transaction that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchMaxBytes(1<<20),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{
		client: client,
		topic:  topic,
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	event.SchemaVersion = 1
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("can't encode order event", zap.Error(err))
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.AccountID, 10)),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			zap.L().Error("order event publish failed",
				zap.Int64("orderID", event.OrderID),
				zap.Error(err))
		}
	})
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}
