package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"customercore/pkg/platform/audit/outbox"
)

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamSender publishes outbox entries to a Redis stream, trimming it
// approximately to maxLen.
type StreamSender struct {
	client streamAdder
	stream string
	maxLen int64
}

func NewStreamSender(client streamAdder, stream string, maxLen int64) *StreamSender {
	return &StreamSender{client: client, stream: stream, maxLen: maxLen}
}

func (s *StreamSender) Send(ctx context.Context, entry outbox.Entry) error {
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":         entry.ID.String(),
			"subject":    entry.AggregateID,
			"event_type": entry.EventType,
			"payload":    string(entry.Payload),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}
