// Package outbox relays audit events written to the transactional outbox to an
// external broker. Delivery is at-least-once: an entry is marked published only
// after the sender acknowledged it, so a crash between the two republishes it.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Entry is one outbox row awaiting publication.
type Entry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// Source is the outbox table as seen by the relay.
type Source interface {
	FetchUnpublished(ctx context.Context, limit int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Sender delivers a single entry to a broker.
type Sender interface {
	Send(ctx context.Context, entry Entry) error
}

type Relay struct {
	source    Source
	sender    Sender
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func NewRelay(source Source, sender Sender, logger *slog.Logger, opts ...Option) *Relay {
	r := &Relay{
		source:    source,
		sender:    sender,
		logger:    logger,
		interval:  time.Second,
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls the outbox until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
			r.logger.ErrorContext(ctx, "outbox flush failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Flush publishes one batch and returns how many entries were delivered.
// It stops at the first send failure so ordering is preserved.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	entries, err := r.source.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	sent := make([]uuid.UUID, 0, len(entries))
	var sendErr error
	for _, entry := range entries {
		if err := r.sender.Send(ctx, entry); err != nil {
			sendErr = err
			r.logger.WarnContext(ctx, "outbox send failed",
				"outbox_id", entry.ID,
				"event_type", entry.EventType,
				"error", err,
			)
			break
		}
		sent = append(sent, entry.ID)
	}
	if len(sent) > 0 {
		if err := r.source.MarkPublished(ctx, sent, time.Now()); err != nil {
			return 0, err
		}
	}
	return len(sent), sendErr
}
