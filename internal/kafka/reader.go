package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageView is the JSON shape returned to clients.
type MessageView struct {
	Offset    int64           `json:"offset"`
	Partition int             `json:"partition"`
	Time      time.Time       `json:"time"`
	Key       string          `json:"key,omitempty"`
	Value     json.RawMessage `json:"value"`
}

// Poll reads up to limit messages from the start of partition 0, stopping
// early when ctx expires. Messages read before a failure are returned with the error.
func Poll(ctx context.Context, brokers []string, topic string, limit int) ([]MessageView, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1e3,  // 1KB
		MaxBytes:  10e6, // 10MB
		MaxWait:   200 * time.Millisecond,
	})
	defer r.Close()

	_ = r.SetOffset(kafka.FirstOffset)

	messages := make([]MessageView, 0, limit)
	for i := 0; i < limit; i++ {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return messages, err
		}
		messages = append(messages, view(m))
	}
	return messages, nil
}

func view(m kafka.Message) MessageView {
	v := MessageView{
		Offset:    m.Offset,
		Partition: m.Partition,
		Time:      m.Time,
	}
	if len(m.Key) > 0 {
		v.Key = string(m.Key)
	}
	// Preserve JSON if it is JSON
	if json.Valid(m.Value) {
		v.Value = json.RawMessage(m.Value)
	} else {
		b, _ := json.Marshal(string(m.Value))
		v.Value = json.RawMessage(b)
	}
	return v
}
