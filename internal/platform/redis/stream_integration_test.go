//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"customercore/internal/platform/config"
	platformredis "customercore/internal/platform/redis"
	"customercore/pkg/platform/audit/outbox"
	"customercore/pkg/testutil/containers"
)

type StreamSenderSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	client *platformredis.Client
}

func TestStreamSenderSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StreamSenderSuite))
}

func (s *StreamSenderSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	client, err := platformredis.New(context.Background(), config.RedisConfig{URL: s.redis.URL, PoolSize: 4})
	s.Require().NoError(err)
	s.client = client
}

func (s *StreamSenderSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *StreamSenderSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func entry(subject, eventType string) outbox.Entry {
	return outbox.Entry{
		ID:          uuid.New(),
		AggregateID: subject,
		EventType:   eventType,
		Payload:     []byte(fmt.Sprintf(`{"Subject":%q,"Action":%q}`, subject, eventType)),
		CreatedAt:   time.Now().UTC(),
	}
}

// TestHealth verifies the wrapped client reports a reachable server.
func (s *StreamSenderSuite) TestHealth() {
	s.NoError(s.client.Health(context.Background()))
}

// TestSendAppendsEntry verifies each entry becomes one stream message.
func (s *StreamSenderSuite) TestSendAppendsEntry() {
	ctx := context.Background()
	sender := platformredis.NewStreamSender(s.client, "customer-events", 0)
	first, second := entry("c-1", "customer_created"), entry("c-1", "customer_transitioned")

	s.Require().NoError(sender.Send(ctx, first))
	s.Require().NoError(sender.Send(ctx, second))

	messages, err := s.client.XRange(ctx, "customer-events", "-", "+").Result()
	s.Require().NoError(err)
	s.Require().Len(messages, 2)
	s.Equal(first.ID.String(), messages[0].Values["id"])
	s.Equal("c-1", messages[0].Values["subject"])
	s.Equal("customer_created", messages[0].Values["event_type"])
	s.Equal(string(first.Payload), messages[0].Values["payload"])
	s.Equal("customer_transitioned", messages[1].Values["event_type"])
}

// TestMaxLenTrims verifies the stream is trimmed once it grows well past maxLen.
// Trimming is approximate, so only whole stream nodes are dropped.
func (s *StreamSenderSuite) TestMaxLenTrims() {
	ctx := context.Background()
	const sent = 500
	sender := platformredis.NewStreamSender(s.client, "trimmed", 10)
	for i := range sent {
		s.Require().NoError(sender.Send(ctx, entry(fmt.Sprintf("c-%d", i), "customer_updated")))
	}

	length, err := s.client.XLen(ctx, "trimmed").Result()
	s.Require().NoError(err)
	s.Less(length, int64(sent))
	s.GreaterOrEqual(length, int64(10))

	last, err := s.client.XRevRangeN(ctx, "trimmed", "+", "-", 1).Result()
	s.Require().NoError(err)
	s.Require().Len(last, 1)
	s.Equal(fmt.Sprintf("c-%d", sent-1), last[0].Values["subject"])
}

// TestUnlimitedStreamKeepsEverything verifies a zero maxLen never trims.
func (s *StreamSenderSuite) TestUnlimitedStreamKeepsEverything() {
	ctx := context.Background()
	sender := platformredis.NewStreamSender(s.client, "untrimmed", 0)
	for i := range 150 {
		s.Require().NoError(sender.Send(ctx, entry(fmt.Sprintf("c-%d", i), "customer_updated")))
	}

	length, err := s.client.XLen(ctx, "untrimmed").Result()
	s.Require().NoError(err)
	s.Equal(int64(150), length)
}
