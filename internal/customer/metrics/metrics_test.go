package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementTransition("ACTIVATE", "ACTIVE")
	m.IncrementTransition("ACTIVATE", "ACTIVE")
	m.IncrementBlocked("ACTIVATE")
	m.IncrementInvalid("REOPEN", "ACTIVE")
	m.IncrementValueRejected("")
	m.ObserveTransition(time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.Transitions.WithLabelValues("ACTIVATE", "ACTIVE")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.BlockedTransitions.WithLabelValues("ACTIVATE")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.InvalidCommands.WithLabelValues("REOPEN", "ACTIVE")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ValueRejections.WithLabelValues("unknown")), 0)
}
