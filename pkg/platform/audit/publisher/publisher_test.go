package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	audit "customercore/pkg/platform/audit"
	"customercore/pkg/platform/audit/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	event := audit.Event{
		Subject: "client-1",
		ActorID: "alice",
		Action:  string(audit.EventCustomerCreated),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), "client-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventCustomerCreated), events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	event := audit.Event{
		Subject: "client-2",
		Action:  string(audit.EventCustomerTransitioned),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	// Close drains the buffer.
	pub.Close()

	events, err := pub.List(context.Background(), "client-2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategoryLifecycle, events[0].Category)
}

func TestPublisher_KeepsExplicitTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		Subject:   "catalog-a",
		Action:    string(audit.EventCatalogCreated),
		Timestamp: ts,
	}))

	events, err := pub.List(context.Background(), "catalog-a")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, ts.Equal(events[0].Timestamp))
	assert.Equal(t, audit.CategorySchema, events[0].Category)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error { return errors.New("disk full") }
func (failingStore) ListBySubject(context.Context, string) ([]audit.Event, error) {
	return nil, nil
}

func TestPublisher_SyncModeReturnsStoreError(t *testing.T) {
	pub := NewPublisher(failingStore{})
	err := pub.Emit(context.Background(), audit.Event{Subject: "x", Action: string(audit.EventCustomerUpdated)})
	assert.Error(t, err)
}

type blockingStore struct {
	release chan struct{}
	memory  *memory.InMemoryStore
}

func (b *blockingStore) Append(ctx context.Context, e audit.Event) error {
	<-b.release
	return b.memory.Append(ctx, e)
}

func (b *blockingStore) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	return b.memory.ListBySubject(ctx, subject)
}

func TestPublisher_AsyncBufferFull(t *testing.T) {
	store := &blockingStore{release: make(chan struct{}), memory: memory.NewInMemoryStore()}
	pub := NewPublisher(store, WithAsyncBuffer(1))

	ev := audit.Event{Subject: "client-3", Action: string(audit.EventCustomerUpdated)}
	// The drain goroutine takes the first event and blocks on the store; the
	// second fills the buffer.
	require.NoError(t, pub.Emit(context.Background(), ev))
	require.Eventually(t, func() bool {
		return len(pub.buffer) == 0
	}, time.Second, time.Millisecond)
	require.NoError(t, pub.Emit(context.Background(), ev))

	err := pub.Emit(context.Background(), ev)
	assert.ErrorIs(t, err, ErrBufferFull)

	close(store.release)
	pub.Close()

	events, err := pub.List(context.Background(), "client-3")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestPublisher_ConcurrentEmit(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1000))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Emit(context.Background(), audit.Event{
				Subject: "client-4",
				Action:  string(audit.EventTaskExecuted),
			})
		}()
	}
	wg.Wait()
	pub.Close()

	events, err := pub.List(context.Background(), "client-4")
	require.NoError(t, err)
	assert.Len(t, events, 50)
}
