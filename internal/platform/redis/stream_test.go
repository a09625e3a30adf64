package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customercore/pkg/platform/audit/outbox"
)

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	cmd := redis.NewStringCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal("1-0")
	}
	return cmd
}

func TestStreamSender_Send(t *testing.T) {
	fake := &fakeStream{}
	sender := NewStreamSender(fake, "customercore.events", 1000)
	entry := outbox.Entry{
		ID:          uuid.New(),
		AggregateID: "client-1",
		EventType:   "customer_transitioned",
		Payload:     []byte(`{"Action":"customer_transitioned"}`),
	}

	require.NoError(t, sender.Send(context.Background(), entry))
	require.Len(t, fake.args, 1)

	args := fake.args[0]
	assert.Equal(t, "customercore.events", args.Stream)
	assert.Equal(t, int64(1000), args.MaxLen)
	assert.True(t, args.Approx)
	values := args.Values.(map[string]any)
	assert.Equal(t, "client-1", values["subject"])
	assert.Equal(t, entry.ID.String(), values["id"])
}

func TestStreamSender_Error(t *testing.T) {
	fake := &fakeStream{err: errors.New("connection refused")}
	sender := NewStreamSender(fake, "s", 0)

	err := sender.Send(context.Background(), outbox.Entry{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Zero(t, fake.args[0].MaxLen)
}
