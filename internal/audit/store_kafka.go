package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"smarthire/internal/platform/kafka/producer"
)

// KafkaStore publishes audit events to a Kafka topic. It is write-only;
// reads go through whatever consumes the topic downstream.
type KafkaStore struct {
	producer *producer.Producer
	topic    string
}

func NewKafkaStore(p *producer.Producer, topic string) *KafkaStore {
	if topic == "" {
		topic = "smarthire.audit"
	}
	return &KafkaStore{producer: p, topic: topic}
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.UserID),
		Value: value,
		Headers: map[string]string{
			"action": event.Action,
		},
	})
}

// ListByUser is unsupported on the Kafka sink.
func (s *KafkaStore) ListByUser(context.Context, string) ([]Event, error) {
	return nil, ErrNotFound
}
