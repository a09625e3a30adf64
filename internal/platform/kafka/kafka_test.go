package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"customercore/internal/platform/config"
	"customercore/pkg/platform/audit/outbox"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	var results kgo.ProduceResults
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestSender_KeysBySubject(t *testing.T) {
	p := &fakeProducer{}
	sender := NewSender(p, "customercore.events")
	entry := outbox.Entry{
		ID:          uuid.New(),
		AggregateID: "client-9",
		EventType:   "task_executed",
		Payload:     []byte(`{}`),
		CreatedAt:   time.Unix(100, 0),
	}

	require.NoError(t, sender.Send(context.Background(), entry))
	require.Len(t, p.records, 1)

	rec := p.records[0]
	assert.Equal(t, "customercore.events", rec.Topic)
	assert.Equal(t, []byte("client-9"), rec.Key)
	assert.Equal(t, "event_type", rec.Headers[0].Key)
	assert.Equal(t, []byte("task_executed"), rec.Headers[0].Value)
}

func TestSender_PropagatesProduceError(t *testing.T) {
	p := &fakeProducer{err: errors.New("not leader")}
	err := NewSender(p, "t").Send(context.Background(), outbox.Entry{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not leader")
}

func TestNewClient_DisabledWithoutBrokers(t *testing.T) {
	client, err := NewClient(context.Background(), config.KafkaConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
